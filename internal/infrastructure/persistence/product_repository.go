package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/infrastructure/persistence/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByExternalID returns the oldest row with the external id in the requested scope
func (r *GormProductRepository) FindByExternalID(ctx context.Context, externalID string, isRoot bool) (*catalog.ProductRecord, error) {
	var model models.ProductModel
	err := scoped(r.db.WithContext(ctx), isRoot).
		Where("external_id = ?", externalID).
		Order("created_at ASC").
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product %q: %w", externalID, err)
	}
	return model.ToDomain(), nil
}

// Insert writes a new row. A row already holding (external_id, init) wins
// and the call reports catalog.ErrProductAlreadyExists.
func (r *GormProductRepository) Insert(ctx context.Context, record *catalog.ProductRecord) error {
	model := models.ProductModelFromDomain(record)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}, {Name: "init"}},
			DoNothing: true,
		}).
		Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return catalog.ErrProductAlreadyExists
		}
		return fmt.Errorf("insert product %q: %w", record.ExternalID, result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductAlreadyExists
	}
	return nil
}

// Search matches search_text case-insensitively and compares price
func (r *GormProductRepository) Search(ctx context.Context, filter catalog.SearchFilter) ([]catalog.ProductRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})

	if filter.SearchText != "" {
		pattern := "%" + cases.Upper(language.Und).String(filter.SearchText) + "%"
		query = query.Where("UPPER(search_text) LIKE ?", pattern)
	}
	if filter.HasPrice() {
		op := filter.Operator
		if op == "" {
			op = catalog.PriceOperatorEqual
		}
		sqlOp := op.SQL()
		if sqlOp == "" {
			return nil, catalog.ErrInvalidSearchFilter
		}
		query = query.Where("price "+sqlOp+" ?", *filter.Price)
	}

	return r.list(query)
}

// FindAll returns every row ordered by creation time
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.ProductRecord, error) {
	return r.list(r.db.WithContext(ctx).Model(&models.ProductModel{}))
}

func (r *GormProductRepository) list(query *gorm.DB) ([]catalog.ProductRecord, error) {
	var rows []models.ProductModel
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	records := make([]catalog.ProductRecord, 0, len(rows))
	for i := range rows {
		records = append(records, *rows[i].ToDomain())
	}
	return records, nil
}

func scoped(db *gorm.DB, isRoot bool) *gorm.DB {
	if isRoot {
		return db.Where("parent_id IS NULL")
	}
	return db.Where("parent_id IS NOT NULL")
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
