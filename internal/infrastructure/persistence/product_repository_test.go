package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func rootRecord(externalID, name string, offset time.Duration) *catalog.ProductRecord {
	return &catalog.ProductRecord{
		ProductID:      uuid.New(),
		Init:           true,
		ExternalID:     externalID,
		SearchText:     name,
		Name:           name,
		JSONObject:     json.RawMessage(`{"id":"` + externalID + `"}`),
		CreatedAt:      baseTime.Add(offset),
		UpdateAt:       baseTime.Add(offset),
		StoreProductID: externalID,
	}
}

func childRecord(externalID, name, price string, parent uuid.UUID, offset time.Duration) *catalog.ProductRecord {
	r := rootRecord(externalID, name, offset)
	r.Init = false
	r.ParentID = &parent
	r.Price = decimal.NewNullDecimal(decimal.RequireFromString(price))
	return r
}

func TestGormProductRepository_InsertAndFind(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormProductRepository(db.DB)
	ctx := context.Background()

	root := rootRecord("100", "Shirt", 0)
	require.NoError(t, repo.Insert(ctx, root))

	found, err := repo.FindByExternalID(ctx, "100", true)
	require.NoError(t, err)
	assert.Equal(t, root.ProductID, found.ProductID)
	assert.True(t, found.Init)
	assert.Nil(t, found.ParentID)
	assert.False(t, found.Price.Valid)
	assert.JSONEq(t, `{"id":"100"}`, string(found.JSONObject))

	_, err = repo.FindByExternalID(ctx, "100", false)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, err = repo.FindByExternalID(ctx, "missing", true)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestGormProductRepository_ScopesAreIndependent(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormProductRepository(db.DB)
	ctx := context.Background()

	root := rootRecord("42", "Mug", 0)
	require.NoError(t, repo.Insert(ctx, root))
	child := childRecord("42", "Mug / Red", "9.50", root.ProductID, time.Second)
	require.NoError(t, repo.Insert(ctx, child))

	gotRoot, err := repo.FindByExternalID(ctx, "42", true)
	require.NoError(t, err)
	assert.Equal(t, root.ProductID, gotRoot.ProductID)

	gotChild, err := repo.FindByExternalID(ctx, "42", false)
	require.NoError(t, err)
	assert.Equal(t, child.ProductID, gotChild.ProductID)
	require.NotNil(t, gotChild.ParentID)
	assert.Equal(t, root.ProductID, *gotChild.ParentID)
	assert.True(t, gotChild.Price.Decimal.Equal(decimal.RequireFromString("9.50")))
}

func TestGormProductRepository_InsertConflict(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormProductRepository(db.DB)
	ctx := context.Background()

	first := rootRecord("7", "Original", 0)
	require.NoError(t, repo.Insert(ctx, first))

	second := rootRecord("7", "Renamed", time.Minute)
	err := repo.Insert(ctx, second)
	assert.ErrorIs(t, err, catalog.ErrProductAlreadyExists)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Original", all[0].Name)
	assert.Equal(t, first.ProductID, all[0].ProductID)
}

func TestGormProductRepository_Search(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormProductRepository(db.DB)
	ctx := context.Background()

	root := rootRecord("1", "Cotton Shirt", 0)
	require.NoError(t, repo.Insert(ctx, root))
	require.NoError(t, repo.Insert(ctx, childRecord("1-s", "Cotton Shirt S", "10.00", root.ProductID, time.Second)))
	require.NoError(t, repo.Insert(ctx, childRecord("1-l", "Cotton Shirt L", "25.00", root.ProductID, 2*time.Second)))
	require.NoError(t, repo.Insert(ctx, rootRecord("2", "Coffee Mug", 3*time.Second)))

	price := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name   string
		filter catalog.SearchFilter
		want   []string
	}{
		{name: "no criteria", filter: catalog.SearchFilter{}, want: []string{"1", "1-s", "1-l", "2"}},
		{name: "text is case-insensitive", filter: catalog.SearchFilter{SearchText: "shirt"}, want: []string{"1", "1-s", "1-l"}},
		{name: "price equal", filter: catalog.SearchFilter{Price: price("10"), Operator: catalog.PriceOperatorEqual}, want: []string{"1-s"}},
		{name: "price less", filter: catalog.SearchFilter{Price: price("20"), Operator: catalog.PriceOperatorLess}, want: []string{"1-s"}},
		{name: "price more", filter: catalog.SearchFilter{Price: price("20"), Operator: catalog.PriceOperatorMore}, want: []string{"1-l"}},
		{name: "missing operator means equal", filter: catalog.SearchFilter{Price: price("25")}, want: []string{"1-l"}},
		{name: "text and price", filter: catalog.SearchFilter{SearchText: "COTTON", Price: price("5"), Operator: catalog.PriceOperatorMore}, want: []string{"1-s", "1-l"}},
		{name: "no match", filter: catalog.SearchFilter{SearchText: "lamp"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := repo.Search(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(records))
			for _, r := range records {
				ids = append(ids, r.ExternalID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGormProductRepository_SearchInvalidOperator(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormProductRepository(db.DB)

	p := decimal.NewFromInt(1)
	_, err := repo.Search(context.Background(), catalog.SearchFilter{Price: &p, Operator: "between"})
	assert.ErrorIs(t, err, catalog.ErrInvalidSearchFilter)
}

func TestGormProductRepository_SQL(t *testing.T) {
	ctx := context.Background()

	t.Run("root scope filters parent_id IS NULL", func(t *testing.T) {
		gormDB, mock := newMockGormDB(t)
		repo := NewGormProductRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE parent_id IS NULL AND external_id = \$1 ORDER BY created_at ASC LIMIT`).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "external_id", "init"}).
				AddRow(uuid.New().String(), "abc", true))

		record, err := repo.FindByExternalID(ctx, "abc", true)
		require.NoError(t, err)
		assert.Equal(t, "abc", record.ExternalID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("child scope filters parent_id IS NOT NULL", func(t *testing.T) {
		gormDB, mock := newMockGormDB(t)
		repo := NewGormProductRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE parent_id IS NOT NULL AND external_id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"product_id"}))

		_, err := repo.FindByExternalID(ctx, "abc", false)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert skips conflicting rows", func(t *testing.T) {
		gormDB, mock := newMockGormDB(t)
		repo := NewGormProductRepository(gormDB)

		mock.ExpectExec(`INSERT INTO "products" .* ON CONFLICT \("external_id","init"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Insert(ctx, rootRecord("abc", "Thing", 0))
		assert.ErrorIs(t, err, catalog.ErrProductAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage errors are wrapped", func(t *testing.T) {
		gormDB, mock := newMockGormDB(t)
		repo := NewGormProductRepository(gormDB)
		boom := errors.New("connection refused")

		mock.ExpectExec(`INSERT INTO "products"`).WillReturnError(boom)

		err := repo.Insert(ctx, rootRecord("abc", "Thing", 0))
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, catalog.ErrProductAlreadyExists)
	})

	t.Run("search uppercases the pattern", func(t *testing.T) {
		gormDB, mock := newMockGormDB(t)
		repo := NewGormProductRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE UPPER\(search_text\) LIKE \$1 AND price > \$2 ORDER BY created_at ASC`).
			WithArgs("%SHIRT%", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"product_id"}))

		p := decimal.NewFromInt(10)
		records, err := repo.Search(ctx, catalog.SearchFilter{SearchText: "shirt", Price: &p, Operator: catalog.PriceOperatorMore})
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
