package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RowAdapter maps one platform's raw payloads to persisted rows
type RowAdapter interface {
	Platform() PlatformTag

	// RootRow maps a top-level product
	RootRow(raw RawProduct, now time.Time) *ProductRecord

	// ChildRow maps a variant. parentID may be nil when the root lookup failed.
	ChildRow(raw RawProduct, parentID *uuid.UUID, inheritedImage string, now time.Time) *ProductRecord
}

// AdapterFor returns the row adapter for a platform tag
func AdapterFor(tag PlatformTag) (RowAdapter, error) {
	switch tag {
	case PlatformVTEX:
		return vtexRowAdapter{}, nil
	case PlatformShopify:
		return shopifyRowAdapter{}, nil
	default:
		return nil, &UnsupportedPlatformError{Tag: string(tag)}
	}
}

// ToPersistedRow maps raw to a row for the given platform and scope.
// Returns an *UnsupportedPlatformError for an unknown tag.
func ToPersistedRow(raw RawProduct, tag PlatformTag, isChild bool, parentID *uuid.UUID, inheritedImage string, now time.Time) (*ProductRecord, error) {
	adapter, err := AdapterFor(tag)
	if err != nil {
		return nil, err
	}
	if isChild {
		return adapter.ChildRow(raw, parentID, inheritedImage, now), nil
	}
	return adapter.RootRow(raw, now), nil
}

// ---------------------------------------------------------------------------
// VTEX
// ---------------------------------------------------------------------------

type vtexRowAdapter struct{}

func (vtexRowAdapter) Platform() PlatformTag { return PlatformVTEX }

func (vtexRowAdapter) RootRow(raw RawProduct, now time.Time) *ProductRecord {
	return newRecord(raw, rowFields{
		externalID: FirstString(raw, StringAt("productId")),
		name:       FirstString(raw, StringAt("productName")),
		image:      FirstString(raw, StringAt("items", 0, "images", 0, "imageUrl")),
	}, true, nil, now)
}

func (vtexRowAdapter) ChildRow(raw RawProduct, parentID *uuid.UUID, _ string, now time.Time) *ProductRecord {
	return newRecord(raw, rowFields{
		externalID: FirstString(raw, StringAt("itemId")),
		name:       FirstString(raw, StringAt("name")),
		price:      nullDecimal(NumberAt("sellers", 0, "commertialOffer", "Price")(raw)),
		image:      FirstString(raw, StringAt("images", 0, "imageUrl")),
	}, false, parentID, now)
}

// ---------------------------------------------------------------------------
// Shopify
// ---------------------------------------------------------------------------

type shopifyRowAdapter struct{}

func (shopifyRowAdapter) Platform() PlatformTag { return PlatformShopify }

func (shopifyRowAdapter) RootRow(raw RawProduct, now time.Time) *ProductRecord {
	return newRecord(raw, rowFields{
		externalID: FirstString(raw, StringAt("id")),
		name:       FirstString(raw, StringAt("title")),
		image:      FirstString(raw, StringAt("image", "src")),
	}, true, nil, now)
}

func (shopifyRowAdapter) ChildRow(raw RawProduct, parentID *uuid.UUID, inheritedImage string, now time.Time) *ProductRecord {
	fields := rowFields{
		externalID: FirstString(raw, StringAt("id")),
		name:       FirstString(raw, StringAt("title")),
		price:      nullDecimal(NumberAt("price")(raw)),
		image:      inheritedImage,
	}
	if sku := FirstString(raw, StringAt("sku")); sku != "" {
		fields.sku = &sku
	}
	return newRecord(raw, fields, false, parentID, now)
}

// ---------------------------------------------------------------------------
// shared row construction
// ---------------------------------------------------------------------------

type rowFields struct {
	externalID string
	name       string
	price      decimal.NullDecimal
	image      string
	sku        *string
}

func newRecord(raw RawProduct, f rowFields, init bool, parentID *uuid.UUID, now time.Time) *ProductRecord {
	if init {
		parentID = nil
	}
	return &ProductRecord{
		ProductID:      uuid.New(),
		ParentID:       parentID,
		Init:           init,
		ExternalID:     f.externalID,
		SearchText:     f.name,
		Name:           f.name,
		Price:          f.price,
		Image:          f.image,
		JSONObject:     raw.JSON(),
		CreatedAt:      now,
		UpdateAt:       now,
		SKU:            f.sku,
		StoreProductID: f.externalID,
	}
}

func nullDecimal(v decimal.Decimal, ok bool) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: v, Valid: ok}
}
