package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultLockKeyPrefix = "catalog:ingest:lock:"
	defaultLockTTL       = 10 * time.Minute
	releaseTimeout       = 5 * time.Second
)

// releaseScript deletes the key only while it still holds our token,
// so a lock that expired and was taken by another instance survives.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisIngestionLock serializes ingestion across instances with SETNX.
// The TTL bounds how long a crashed holder can block a platform.
type RedisIngestionLock struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisIngestionLock connects to Redis and verifies the connection
func NewRedisIngestionLock(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisIngestionLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisIngestionLockWithClient(client, "", ttl, logger), nil
}

// NewRedisIngestionLockWithClient creates a lock with an existing Redis client
func NewRedisIngestionLockWithClient(client *redis.Client, keyPrefix string, ttl time.Duration, logger *zap.Logger) *RedisIngestionLock {
	if keyPrefix == "" {
		keyPrefix = defaultLockKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisIngestionLock{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		logger:    logger,
	}
}

// TryLock sets the platform key if absent. The returned release func
// removes it with a compare-and-delete.
func (l *RedisIngestionLock) TryLock(ctx context.Context, platform catalog.PlatformTag) (func(), error) {
	key := l.key(platform)
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire ingestion lock: %w", err)
	}
	if !acquired {
		return nil, integration.ErrIngestionInProgress
	}

	return func() {
		// The caller's context may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn("failed to release ingestion lock",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}, nil
}

func (l *RedisIngestionLock) key(platform catalog.PlatformTag) string {
	return l.keyPrefix + string(platform)
}

// Close closes the Redis client
func (l *RedisIngestionLock) Close() error {
	return l.client.Close()
}

var _ integration.IngestionLock = (*RedisIngestionLock)(nil)
