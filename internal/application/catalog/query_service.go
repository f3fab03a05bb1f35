package catalog

import (
	"context"
	"errors"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/shared"
)

// ProductQueryService serves read-only queries over persisted rows
type ProductQueryService struct {
	repo catalog.ProductRepository
}

// NewProductQueryService creates a new ProductQueryService
func NewProductQueryService(repo catalog.ProductRepository) *ProductQueryService {
	return &ProductQueryService{repo: repo}
}

// Search returns rows whose search text contains req.SearchText and whose
// price compares to req.Price with req.Operator (equal when omitted)
func (s *ProductQueryService) Search(ctx context.Context, req SearchRequest) ([]catalog.ProductRecord, error) {
	filter, err := catalog.NewSearchFilter(req.SearchText, req.Price, req.Operator)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeInvalidInput, "Invalid search filter", err)
	}

	records, err := s.repo.Search(ctx, filter)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidSearchFilter) {
			return nil, shared.WrapDomainError(shared.CodeInvalidInput, "Invalid search filter", err)
		}
		return nil, err
	}
	return records, nil
}

// List returns every persisted row
func (s *ProductQueryService) List(ctx context.Context) ([]catalog.ProductRecord, error) {
	return s.repo.FindAll(ctx)
}
