package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/domain/shared"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// IngestionService runs a full fetch-and-reconcile cycle for one platform
type IngestionService struct {
	registry   *integration.Registry
	reconciler Reconciler
	lock       integration.IngestionLock
	recorder   IngestionRecorder
	logger     *zap.Logger
}

// Ingestion outcomes reported to an IngestionRecorder
const (
	OutcomeSuccess     = "success"
	OutcomeUnsupported = "unsupported"
	OutcomeBusy        = "busy"
	OutcomeUpstream    = "upstream_error"
	OutcomeFailed      = "failed"
)

// IngestionRecorder observes finished ingestion runs
type IngestionRecorder interface {
	RecordIngestion(ctx context.Context, platform, outcome string, fetched int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordIngestion(context.Context, string, string, int, time.Duration) {}

// IngestionOption configures an IngestionService
type IngestionOption func(*IngestionService)

// WithRecorder reports every run to r
func WithRecorder(r IngestionRecorder) IngestionOption {
	return func(s *IngestionService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(
	registry *integration.Registry,
	reconciler Reconciler,
	lock integration.IngestionLock,
	log *zap.Logger,
	opts ...IngestionOption,
) *IngestionService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &IngestionService{
		registry:   registry,
		reconciler: reconciler,
		lock:       lock,
		recorder:   nopRecorder{},
		logger:     log.Named("ingestion"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest fetches every product of the platform named by prefix and stores the
// missing ones. Only one ingestion per platform runs at a time.
func (s *IngestionService) Ingest(ctx context.Context, prefix string) (result *IngestResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.Ingest", attribute.String("catalog.platform", prefix))
	defer func() { telemetry.EndSpan(span, err) }()

	start := time.Now()
	platform, fetched := "unknown", 0
	defer func() {
		s.recorder.RecordIngestion(ctx, platform, outcomeOf(err), fetched, time.Since(start))
	}()

	tag, err := catalog.ParsePlatformTag(prefix)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeUnsupportedPlatform, "Unsupported platform: "+prefix, err)
	}
	platform = tag.String()

	client, err := s.registry.Get(tag)
	if err != nil {
		if errors.Is(err, integration.ErrPlatformNotConfigured) {
			return nil, shared.WrapDomainError(shared.CodeUnsupportedPlatform, "Platform is not configured: "+tag.String(), err)
		}
		return nil, shared.WrapDomainError(shared.CodeUnsupportedPlatform, "Unsupported platform: "+prefix, err)
	}

	release, err := s.lock.TryLock(ctx, tag)
	if err != nil {
		if errors.Is(err, integration.ErrIngestionInProgress) {
			return nil, shared.WrapDomainError(shared.CodeIngestionInProgress, "Ingestion already in progress for "+tag.String(), err)
		}
		return nil, err
	}
	defer release()

	ctx, log := logger.WithPlatform(ctx, logger.Ctx(ctx).With(zap.String("component", "ingestion")), tag.String())

	var raws []catalog.RawProduct
	telemetry.WithIngestionLabels(ctx, tag.String(), telemetry.OperationIngest, func(ctx context.Context) {
		raws, err = s.fetchAndReconcile(ctx, client, tag, log)
	})
	fetched = len(raws)
	if err != nil {
		return nil, err
	}

	result = NewIngestResult(raws)
	span.SetAttributes(attribute.Int("catalog.count", result.Result.Count))
	s.logger.Info("ingestion completed",
		zap.String("platform", tag.String()),
		zap.Int("count", result.Result.Count),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// fetchAndReconcile returns the fetched payloads even when reconciliation fails
func (s *IngestionService) fetchAndReconcile(ctx context.Context, client integration.PlatformClient, tag catalog.PlatformTag, log *zap.Logger) ([]catalog.RawProduct, error) {
	raws, err := client.FetchProducts(ctx)
	if err != nil {
		log.Error("platform fetch failed", zap.Error(err))
		return nil, shared.WrapDomainError(shared.CodeUpstreamError, "Failed to fetch products from "+tag.DisplayName(), err)
	}
	if err := s.reconciler.Reconcile(ctx, raws, tag); err != nil {
		return raws, err
	}
	return raws, nil
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case shared.CodeUnsupportedPlatform:
			return OutcomeUnsupported
		case shared.CodeIngestionInProgress:
			return OutcomeBusy
		case shared.CodeUpstreamError:
			return OutcomeUpstream
		}
	}
	return OutcomeFailed
}

// Platforms lists the platforms that can be ingested
func (s *IngestionService) Platforms() []catalog.PlatformTag {
	return s.registry.Platforms()
}
