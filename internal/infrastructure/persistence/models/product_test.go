package models

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestProductModel_RoundTrip(t *testing.T) {
	parent := uuid.New()
	sku := "SKU-1"
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	record := &catalog.ProductRecord{
		ProductID:      uuid.New(),
		ParentID:       &parent,
		Init:           false,
		ExternalID:     "v1",
		SearchText:     "Small",
		Name:           "Small",
		Price:          decimal.NewNullDecimal(decimal.RequireFromString("19.99")),
		Image:          "https://cdn/img.png",
		JSONObject:     json.RawMessage(`{"id":"v1"}`),
		CreatedAt:      now,
		UpdateAt:       now,
		SKU:            &sku,
		StoreProductID: "v1",
	}

	model := ProductModelFromDomain(record)
	assert.Equal(t, "products", model.TableName())
	assert.JSONEq(t, `{"id":"v1"}`, string(model.JSONObject))

	back := model.ToDomain()
	assert.Equal(t, record.ProductID, back.ProductID)
	assert.Equal(t, parent, *back.ParentID)
	assert.False(t, back.Init)
	assert.Equal(t, "v1", back.ExternalID)
	assert.True(t, back.Price.Valid)
	assert.True(t, back.Price.Decimal.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, "SKU-1", *back.SKU)
	assert.Equal(t, now, back.UpdateAt)
	assert.JSONEq(t, `{"id":"v1"}`, string(back.JSONObject))
}

func TestAllModels(t *testing.T) {
	assert.Len(t, AllModels(), 1)
}

func TestProductModel_PriceColumnUnbounded(t *testing.T) {
	sch, err := schema.Parse(&ProductModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := sch.LookUpField("price")
	require.NotNil(t, field)
	assert.Equal(t, schema.DataType("numeric"), field.DataType)
}
