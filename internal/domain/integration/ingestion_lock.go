package integration

import (
	"context"
	"errors"

	"github.com/catalogsync/backend/internal/domain/catalog"
)

// ErrIngestionInProgress is returned when another ingestion holds the platform lock
var ErrIngestionInProgress = errors.New("integration: ingestion already in progress")

// IngestionLock serializes ingestion runs per platform.
// TryLock never waits: it either returns a release func or ErrIngestionInProgress.
type IngestionLock interface {
	TryLock(ctx context.Context, platform catalog.PlatformTag) (release func(), err error)
}
