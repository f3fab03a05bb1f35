package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound      = errors.New("catalog: product not found")
	ErrProductAlreadyExists = errors.New("catalog: product already exists in scope")
	ErrInvalidSearchFilter  = errors.New("catalog: invalid search filter")
)

// ProductRecord is one persisted row. Roots have Init=true and no parent;
// children have Init=false and reference their root's ProductID.
// @name ProductRecord
type ProductRecord struct {
	ProductID      uuid.UUID           `json:"product_id"`
	ParentID       *uuid.UUID          `json:"parent_id"`
	Init           bool                `json:"init"`
	ExternalID     string              `json:"external_id"`
	SearchText     string              `json:"search_text"`
	Name           string              `json:"name"`
	Price          decimal.NullDecimal `json:"price" swaggertype:"string" example:"49.50"`
	Image          string              `json:"image"`
	JSONObject     json.RawMessage     `json:"json_object" swaggertype:"object"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdateAt       time.Time           `json:"update_at"`
	SKU            *string             `json:"sku"`
	StoreProductID string              `json:"store_product_id"`
}

// IsRoot reports whether the record is a top-level product
func (r *ProductRecord) IsRoot() bool {
	return r.Init
}

// ProductStore is the persistence port used by reconciliation.
type ProductStore interface {
	// FindByExternalID finds a record by external id within the root scope
	// (parent_id IS NULL) or the child scope (parent_id IS NOT NULL).
	// Returns ErrProductNotFound when the scope holds no such record.
	FindByExternalID(ctx context.Context, externalID string, isRoot bool) (*ProductRecord, error)

	// Insert writes a new record. It never updates an existing one.
	// Returns ErrProductAlreadyExists when (external_id, scope) is already taken.
	Insert(ctx context.Context, record *ProductRecord) error
}

// ProductRepository adds the read-side queries served over HTTP
type ProductRepository interface {
	ProductStore

	// Search filters records by search text and price
	Search(ctx context.Context, filter SearchFilter) ([]ProductRecord, error)

	// FindAll returns every persisted record
	FindAll(ctx context.Context) ([]ProductRecord, error)
}

// ---------------------------------------------------------------------------
// Search filter
// ---------------------------------------------------------------------------

// PriceOperator compares a record's price with the filter price
type PriceOperator string

const (
	PriceOperatorEqual PriceOperator = "equal"
	PriceOperatorLess  PriceOperator = "less"
	PriceOperatorMore  PriceOperator = "more"
)

// ParsePriceOperator defaults to equal when s is empty
func ParsePriceOperator(s string) (PriceOperator, error) {
	op := PriceOperator(strings.ToLower(strings.TrimSpace(s)))
	if op == "" {
		return PriceOperatorEqual, nil
	}
	if op.SQL() == "" {
		return "", ErrInvalidSearchFilter
	}
	return op, nil
}

// SQL returns the comparison operator, or "" for an unknown operator
func (o PriceOperator) SQL() string {
	switch o {
	case PriceOperatorEqual:
		return "="
	case PriceOperatorLess:
		return "<"
	case PriceOperatorMore:
		return ">"
	default:
		return ""
	}
}

// SearchFilter selects records by case-insensitive search text and/or price.
// Zero-valued criteria are ignored.
type SearchFilter struct {
	SearchText string
	Price      *decimal.Decimal
	Operator   PriceOperator
}

// NewSearchFilter parses raw query values into a SearchFilter
func NewSearchFilter(searchText, price, operator string) (SearchFilter, error) {
	filter := SearchFilter{SearchText: strings.TrimSpace(searchText)}

	if strings.TrimSpace(price) == "" {
		return filter, nil
	}

	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return SearchFilter{}, ErrInvalidSearchFilter
	}
	op, err := ParsePriceOperator(operator)
	if err != nil {
		return SearchFilter{}, err
	}

	filter.Price = &p
	filter.Operator = op
	return filter, nil
}

// HasPrice reports whether the filter constrains price
func (f SearchFilter) HasPrice() bool {
	return f.Price != nil
}
