package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Reconciler persists raw platform products. Implemented by ReconciliationService.
type Reconciler interface {
	Reconcile(ctx context.Context, raws []catalog.RawProduct, tag catalog.PlatformTag) error
}

// ReconcileStats counts what one Reconcile call did
type ReconcileStats struct {
	RootsInserted    int
	RootsSkipped     int
	ChildrenInserted int
	ChildrenSkipped  int
	Orphans          int
}

// ReconciliationService writes roots and variants that are not yet stored.
// Existing rows are never updated. Products and variants are processed one
// at a time in input order because a variant's parent lookup depends on the
// preceding root insert having committed.
type ReconciliationService struct {
	store  catalog.ProductStore
	logger *zap.Logger
	now    func() time.Time
}

// ReconciliationOption configures a ReconciliationService
type ReconciliationOption func(*ReconciliationService)

// WithClock overrides the timestamp source for created_at and update_at
func WithClock(now func() time.Time) ReconciliationOption {
	return func(s *ReconciliationService) {
		s.now = now
	}
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(store catalog.ProductStore, logger *zap.Logger, opts ...ReconciliationOption) *ReconciliationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReconciliationService{
		store:  store,
		logger: logger.Named("reconciliation"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reconcile stores every product in raws that is missing from its scope.
// Any storage failure aborts the call and is returned; rows already written stay.
// An unsupported tag is rejected before any storage access.
func (s *ReconciliationService) Reconcile(ctx context.Context, raws []catalog.RawProduct, tag catalog.PlatformTag) error {
	_, err := s.ReconcileWithStats(ctx, raws, tag)
	return err
}

// ReconcileWithStats is Reconcile returning insert and skip counts
func (s *ReconciliationService) ReconcileWithStats(ctx context.Context, raws []catalog.RawProduct, tag catalog.PlatformTag) (stats ReconcileStats, err error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.Reconcile",
		attribute.String("catalog.platform", string(tag)),
		attribute.Int("catalog.products", len(raws)),
	)
	defer func() {
		span.SetAttributes(
			attribute.Int("catalog.roots_inserted", stats.RootsInserted),
			attribute.Int("catalog.children_inserted", stats.ChildrenInserted),
		)
		telemetry.EndSpan(span, err)
	}()

	adapter, err := catalog.AdapterFor(tag)
	if err != nil {
		return stats, err
	}

	telemetry.WithIngestionLabels(ctx, tag.String(), telemetry.OperationReconcile, func(ctx context.Context) {
		err = s.reconcileAll(ctx, adapter, raws, &stats)
	})
	if err != nil {
		return stats, err
	}

	s.logger.Info("reconciliation finished",
		zap.String("platform", tag.String()),
		zap.Int("products", len(raws)),
		zap.Int("roots_inserted", stats.RootsInserted),
		zap.Int("roots_skipped", stats.RootsSkipped),
		zap.Int("children_inserted", stats.ChildrenInserted),
		zap.Int("children_skipped", stats.ChildrenSkipped),
		zap.Int("orphans", stats.Orphans),
	)
	return stats, nil
}

func (s *ReconciliationService) reconcileAll(ctx context.Context, adapter catalog.RowAdapter, raws []catalog.RawProduct, stats *ReconcileStats) error {
	for i, raw := range raws {
		if err := s.reconcileProduct(ctx, adapter, raw, stats); err != nil {
			s.logger.Error("reconciliation aborted",
				zap.String("platform", adapter.Platform().String()),
				zap.Int("index", i),
				zap.String("external_id", catalog.RootExternalID(raw)),
				zap.Error(err),
			)
			return fmt.Errorf("reconcile product %d: %w", i, err)
		}
	}
	return nil
}

func (s *ReconciliationService) reconcileProduct(ctx context.Context, adapter catalog.RowAdapter, raw catalog.RawProduct, stats *ReconcileStats) error {
	rootID := catalog.RootExternalID(raw)

	exists, err := s.exists(ctx, rootID, true)
	if err != nil {
		return err
	}
	if exists {
		stats.RootsSkipped++
	} else {
		inserted, err := s.insert(ctx, adapter.RootRow(raw, s.now()))
		if err != nil {
			return err
		}
		if inserted {
			stats.RootsInserted++
		} else {
			stats.RootsSkipped++
		}
	}

	children := catalog.ChildPayloads(raw)
	if len(children) == 0 {
		return nil
	}

	// Read the root back whether or not it was just inserted.
	var parentID *uuid.UUID
	inheritedImage := ""
	root, err := s.store.FindByExternalID(ctx, rootID, true)
	switch {
	case err == nil:
		id := root.ProductID
		parentID = &id
		inheritedImage = root.Image
	case errors.Is(err, catalog.ErrProductNotFound):
		s.logger.Warn("root not found after insert, storing variants without parent",
			zap.String("external_id", rootID),
		)
	default:
		return err
	}

	for _, child := range children {
		childID := catalog.VariantExternalID(child)

		exists, err := s.exists(ctx, childID, false)
		if err != nil {
			return err
		}
		if exists {
			stats.ChildrenSkipped++
			continue
		}

		inserted, err := s.insert(ctx, adapter.ChildRow(child, parentID, inheritedImage, s.now()))
		if err != nil {
			return err
		}
		switch {
		case !inserted:
			stats.ChildrenSkipped++
		case parentID == nil:
			stats.Orphans++
			stats.ChildrenInserted++
		default:
			stats.ChildrenInserted++
		}
	}
	return nil
}

func (s *ReconciliationService) exists(ctx context.Context, externalID string, isRoot bool) (bool, error) {
	_, err := s.store.FindByExternalID(ctx, externalID, isRoot)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, catalog.ErrProductNotFound):
		return false, nil
	default:
		return false, err
	}
}

// insert reports false when a concurrent ingestion stored the row first
func (s *ReconciliationService) insert(ctx context.Context, record *catalog.ProductRecord) (bool, error) {
	err := s.store.Insert(ctx, record)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, catalog.ErrProductAlreadyExists):
		s.logger.Debug("row already stored",
			zap.String("external_id", record.ExternalID),
			zap.Bool("init", record.Init),
		)
		return false, nil
	default:
		return false, err
	}
}

var _ Reconciler = (*ReconciliationService)(nil)
