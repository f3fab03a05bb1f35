package cache

import (
	"context"
	"sync"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
)

// InMemoryIngestionLock keeps one lock per platform in process memory.
// It only serializes ingestions inside a single instance.
type InMemoryIngestionLock struct {
	mu   sync.Mutex
	held map[catalog.PlatformTag]struct{}
}

// NewInMemoryIngestionLock creates an empty in-memory lock set
func NewInMemoryIngestionLock() *InMemoryIngestionLock {
	return &InMemoryIngestionLock{held: make(map[catalog.PlatformTag]struct{})}
}

// TryLock acquires the platform lock or returns integration.ErrIngestionInProgress
func (l *InMemoryIngestionLock) TryLock(_ context.Context, platform catalog.PlatformTag) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[platform]; busy {
		return nil, integration.ErrIngestionInProgress
	}
	l.held[platform] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, platform)
			l.mu.Unlock()
		})
	}, nil
}

// IsLocked reports whether the platform lock is currently held
func (l *InMemoryIngestionLock) IsLocked(platform catalog.PlatformTag) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, busy := l.held[platform]
	return busy
}

var _ integration.IngestionLock = (*InMemoryIngestionLock)(nil)
