package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryIngestionLock(t *testing.T) {
	ctx := context.Background()
	lock := NewInMemoryIngestionLock()

	release, err := lock.TryLock(ctx, catalog.PlatformShopify)
	require.NoError(t, err)
	assert.True(t, lock.IsLocked(catalog.PlatformShopify))

	_, err = lock.TryLock(ctx, catalog.PlatformShopify)
	assert.ErrorIs(t, err, integration.ErrIngestionInProgress)

	otherRelease, err := lock.TryLock(ctx, catalog.PlatformVTEX)
	require.NoError(t, err, "platforms lock independently")
	otherRelease()

	release()
	release()
	assert.False(t, lock.IsLocked(catalog.PlatformShopify))

	again, err := lock.TryLock(ctx, catalog.PlatformShopify)
	require.NoError(t, err)
	again()
}

func TestInMemoryIngestionLock_Concurrent(t *testing.T) {
	lock := NewInMemoryIngestionLock()
	start := make(chan struct{})

	var acquired atomic.Int32
	var busy atomic.Int32
	var wg sync.WaitGroup
	releases := make(chan func(), 16)

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			release, err := lock.TryLock(context.Background(), catalog.PlatformVTEX)
			if err != nil {
				busy.Add(1)
				return
			}
			acquired.Add(1)
			releases <- release
		}()
	}
	close(start)
	wg.Wait()
	close(releases)

	assert.Equal(t, int32(1), acquired.Load())
	assert.Equal(t, int32(15), busy.Load())
	for release := range releases {
		release()
	}
}

func TestRedisIngestionLock_Defaults(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	lock := NewRedisIngestionLockWithClient(client, "", 0, nil)
	assert.Equal(t, defaultLockTTL, lock.ttl)
	assert.Equal(t, "catalog:ingest:lock:shopify", lock.key(catalog.PlatformShopify))
}

func TestRedisIngestionLock_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	lock := NewRedisIngestionLockWithClient(client, "test:", time.Minute, zap.NewNop())
	defer lock.Close()

	_, err := lock.TryLock(context.Background(), catalog.PlatformVTEX)
	require.Error(t, err)
	assert.NotErrorIs(t, err, integration.ErrIngestionInProgress)
}

func TestNewRedisIngestionLock_Unreachable(t *testing.T) {
	_, err := NewRedisIngestionLock(RedisConfig{Addr: "127.0.0.1:1"}, time.Minute, zap.NewNop())
	assert.Error(t, err)
}
