package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appcatalog "github.com/catalogsync/backend/internal/application/catalog"
	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var (
	ErrInvalidSpec    = errors.New("scheduler: invalid cron spec")
	ErrNoPlatforms    = errors.New("scheduler: no platforms to ingest")
	ErrAlreadyRunning = errors.New("scheduler: already running")
)

// DefaultSpec runs ingestion hourly
const DefaultSpec = "@every 1h"

// specParser accepts standard five-field specs, six-field specs with a
// leading seconds field, and descriptors such as "@hourly" or "@every 30m".
var specParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Ingester runs one ingestion. Implemented by the catalog IngestionService.
type Ingester interface {
	Ingest(ctx context.Context, prefix string) (*appcatalog.IngestResult, error)
}

// IngestionSchedulerConfig holds scheduled ingestion settings
type IngestionSchedulerConfig struct {
	// Spec is a five-field cron spec, a six-field spec starting with seconds,
	// or a descriptor like "@every 30m"
	Spec       string
	Platforms  []catalog.PlatformTag
	JobTimeout time.Duration
}

// IngestionScheduler triggers ingestion for each configured platform on a cron schedule.
// Platforms are ingested one after another within a tick; overlapping ticks are skipped.
type IngestionScheduler struct {
	config   IngestionSchedulerConfig
	ingester Ingester
	logger   *zap.Logger
	cron     *cron.Cron

	mu      sync.Mutex
	running bool
	entryID cron.EntryID
	cancel  context.CancelFunc
}

// NewIngestionScheduler validates the cron spec and builds a stopped scheduler
func NewIngestionScheduler(config IngestionSchedulerConfig, ingester Ingester, logger *zap.Logger) (*IngestionScheduler, error) {
	if config.Spec == "" {
		config.Spec = DefaultSpec
	}
	if len(config.Platforms) == 0 {
		return nil, ErrNoPlatforms
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scheduler")

	cl := newCronLogger(logger)
	c := cron.New(
		cron.WithParser(specParser),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &IngestionScheduler{
		config:   config,
		ingester: ingester,
		logger:   logger,
		cron:     c,
	}
	return s, nil
}

// Start registers the job and starts the cron loop. Jobs run with a context
// derived from ctx that is cancelled by Stop.
func (s *IngestionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	jobCtx, cancel := context.WithCancel(ctx)
	entryID, err := s.cron.AddFunc(s.config.Spec, func() { s.RunOnce(jobCtx) })
	if err != nil {
		cancel()
		return fmt.Errorf("%w %q: %v", ErrInvalidSpec, s.config.Spec, err)
	}

	s.entryID = entryID
	s.cancel = cancel
	s.running = true
	s.cron.Start()

	s.logger.Info("Ingestion scheduler started",
		zap.String("spec", s.config.Spec),
		zap.Stringers("platforms", s.config.Platforms),
	)
	return nil
}

// Stop cancels in-flight jobs and waits for them until ctx expires
func (s *IngestionScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	cancel := s.cancel
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info("Ingestion scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the cron loop is active
func (s *IngestionScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunOnce ingests every configured platform in order. Failures are logged
// and do not stop the remaining platforms.
func (s *IngestionScheduler) RunOnce(ctx context.Context) {
	for _, platform := range s.config.Platforms {
		if ctx.Err() != nil {
			return
		}
		s.runPlatform(ctx, platform)
	}
}

func (s *IngestionScheduler) runPlatform(ctx context.Context, platform catalog.PlatformTag) {
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.ingester.Ingest(ctx, platform.String())
	switch {
	case err == nil:
		s.logger.Info("Scheduled ingestion completed",
			zap.String("platform", platform.String()),
			zap.Int("count", result.Result.Count),
			zap.Duration("elapsed", time.Since(start)),
		)
	case errors.Is(err, integration.ErrIngestionInProgress):
		s.logger.Info("Scheduled ingestion skipped, another run holds the lock",
			zap.String("platform", platform.String()),
		)
	default:
		s.logger.Error("Scheduled ingestion failed",
			zap.String("platform", platform.String()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
	}
}

// ParsePlatforms converts configured names to tags, rejecting unknown ones
func ParsePlatforms(names []string) ([]catalog.PlatformTag, error) {
	tags := make([]catalog.PlatformTag, 0, len(names))
	for _, name := range names {
		tag, err := catalog.ParsePlatformTag(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
