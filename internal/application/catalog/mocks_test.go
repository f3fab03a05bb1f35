package catalog

import (
	"context"
	"sync"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/stretchr/testify/mock"
)

// MockProductStore is a mock implementation of catalog.ProductStore
type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) FindByExternalID(ctx context.Context, externalID string, isRoot bool) (*catalog.ProductRecord, error) {
	args := m.Called(ctx, externalID, isRoot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductRecord), args.Error(1)
}

func (m *MockProductStore) Insert(ctx context.Context, record *catalog.ProductRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockProductRepository adds the read-side queries to MockProductStore
type MockProductRepository struct {
	MockProductStore
}

func (m *MockProductRepository) Search(ctx context.Context, filter catalog.SearchFilter) ([]catalog.ProductRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductRecord), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.ProductRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductRecord), args.Error(1)
}

// MockPlatformClient is a mock implementation of integration.PlatformClient
type MockPlatformClient struct {
	mock.Mock
	tag catalog.PlatformTag
}

func (m *MockPlatformClient) Platform() catalog.PlatformTag {
	return m.tag
}

func (m *MockPlatformClient) FetchProducts(ctx context.Context) ([]catalog.RawProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.RawProduct), args.Error(1)
}

// MockReconciler is a mock implementation of Reconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, raws []catalog.RawProduct, tag catalog.PlatformTag) error {
	args := m.Called(ctx, raws, tag)
	return args.Error(0)
}

// MockIngestionLock is a mock implementation of integration.IngestionLock
type MockIngestionLock struct {
	mock.Mock
	released int
}

func (m *MockIngestionLock) TryLock(ctx context.Context, platform catalog.PlatformTag) (func(), error) {
	args := m.Called(ctx, platform)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.released++ }, nil
}

// memoryStore keeps rows in insertion order and enforces the
// (external_id, init) uniqueness the database provides.
type memoryStore struct {
	mu   sync.Mutex
	rows []catalog.ProductRecord
}

func (s *memoryStore) FindByExternalID(_ context.Context, externalID string, isRoot bool) (*catalog.ProductRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		r := s.rows[i]
		if r.ExternalID != externalID {
			continue
		}
		if isRoot == (r.ParentID == nil) {
			return &r, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

func (s *memoryStore) Insert(_ context.Context, record *catalog.ProductRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.ExternalID == record.ExternalID && r.Init == record.Init {
			return catalog.ErrProductAlreadyExists
		}
	}
	s.rows = append(s.rows, *record)
	return nil
}

func (s *memoryStore) roots() []catalog.ProductRecord {
	return s.filter(func(r catalog.ProductRecord) bool { return r.Init })
}

func (s *memoryStore) children() []catalog.ProductRecord {
	return s.filter(func(r catalog.ProductRecord) bool { return !r.Init })
}

func (s *memoryStore) filter(keep func(catalog.ProductRecord) bool) []catalog.ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []catalog.ProductRecord
	for _, r := range s.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
