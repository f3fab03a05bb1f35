package models

import (
	"encoding/json"
	"time"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductScopeIndex is the unique index over (external_id, init).
// It guarantees at most one root and one child row per external id.
const ProductScopeIndex = "idx_products_external_scope"

// ProductModel is the persistence model for a catalog row.
// Roots and variants share the table; init distinguishes the scope.
type ProductModel struct {
	ProductID      uuid.UUID           `gorm:"column:product_id;type:uuid;primaryKey"`
	ParentID       *uuid.UUID          `gorm:"column:parent_id;type:uuid;index"`
	Init           bool                `gorm:"column:init;not null;uniqueIndex:idx_products_external_scope,priority:2"`
	ExternalID     string              `gorm:"column:external_id;type:varchar(255);not null;uniqueIndex:idx_products_external_scope,priority:1"`
	SearchText     string              `gorm:"column:search_text;type:text"`
	Name           string              `gorm:"column:name;type:text"`
	Price          decimal.NullDecimal `gorm:"column:price;type:numeric"`
	Image          string              `gorm:"column:image;type:text"`
	JSONObject     datatypes.JSON      `gorm:"column:json_object;type:jsonb"`
	CreatedAt      time.Time           `gorm:"column:created_at;not null"`
	UpdateAt       time.Time           `gorm:"column:update_at;not null"`
	SKU            *string             `gorm:"column:sku;type:varchar(255)"`
	StoreProductID string              `gorm:"column:store_product_id;type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain record
func (m *ProductModel) ToDomain() *catalog.ProductRecord {
	return &catalog.ProductRecord{
		ProductID:      m.ProductID,
		ParentID:       m.ParentID,
		Init:           m.Init,
		ExternalID:     m.ExternalID,
		SearchText:     m.SearchText,
		Name:           m.Name,
		Price:          m.Price,
		Image:          m.Image,
		JSONObject:     json.RawMessage(m.JSONObject),
		CreatedAt:      m.CreatedAt,
		UpdateAt:       m.UpdateAt,
		SKU:            m.SKU,
		StoreProductID: m.StoreProductID,
	}
}

// FromDomain populates the persistence model from a domain record
func (m *ProductModel) FromDomain(r *catalog.ProductRecord) {
	m.ProductID = r.ProductID
	m.ParentID = r.ParentID
	m.Init = r.Init
	m.ExternalID = r.ExternalID
	m.SearchText = r.SearchText
	m.Name = r.Name
	m.Price = r.Price
	m.Image = r.Image
	m.JSONObject = datatypes.JSON(r.JSONObject)
	m.CreatedAt = r.CreatedAt
	m.UpdateAt = r.UpdateAt
	m.SKU = r.SKU
	m.StoreProductID = r.StoreProductID
}

// ProductModelFromDomain creates a new persistence model from a domain record
func ProductModelFromDomain(r *catalog.ProductRecord) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(r)
	return m
}

// AllModels lists every model managed by AutoMigrate
func AllModels() []any {
	return []any{&ProductModel{}}
}
