package catalog

import "github.com/shopspring/decimal"

// StringExtractor yields one candidate source for a string attribute.
// An empty result means the source is absent.
type StringExtractor func(RawProduct) string

// NumberExtractor yields one candidate source for a numeric attribute.
// ok is false when the source is absent or not numeric.
type NumberExtractor func(RawProduct) (value decimal.Decimal, ok bool)

// StringAt extracts the scalar at path as a string
func StringAt(path ...any) StringExtractor {
	return func(r RawProduct) string {
		return coerceString(r.Lookup(path...))
	}
}

// NumberAt extracts the scalar at path as a decimal
func NumberAt(path ...any) NumberExtractor {
	return func(r RawProduct) (decimal.Decimal, bool) {
		return coerceDecimal(r.Lookup(path...))
	}
}

// FirstString evaluates chain in order and returns the first non-empty value, or "".
func FirstString(r RawProduct, chain ...StringExtractor) string {
	for _, extract := range chain {
		if v := extract(r); v != "" {
			return v
		}
	}
	return ""
}

// FirstNonZero evaluates chain in order and returns the first present, non-zero value, or 0.
func FirstNonZero(r RawProduct, chain ...NumberExtractor) decimal.Decimal {
	for _, extract := range chain {
		if v, ok := extract(r); ok && !v.IsZero() {
			return v
		}
	}
	return decimal.Zero
}

// FirstPresent evaluates chain in order and returns the first present value, zero included, or 0.
func FirstPresent(r RawProduct, chain ...NumberExtractor) decimal.Decimal {
	for _, extract := range chain {
		if v, ok := extract(r); ok {
			return v
		}
	}
	return decimal.Zero
}

// Fallback chains, in priority order.
var (
	productExternalIDChain = []StringExtractor{StringAt("id"), StringAt("productId")}
	productImageChain      = []StringExtractor{
		StringAt("image", "src"),
		StringAt("items", 0, "images", 0, "imageUrl"),
	}
	productTitleChain = []StringExtractor{StringAt("title"), StringAt("name"), StringAt("productName")}
	productPriceChain = []NumberExtractor{NumberAt("price")}

	variantResourceIDChain = []StringExtractor{StringAt("id"), StringAt("itemId")}
	variantInventoryChain  = []NumberExtractor{
		NumberAt("inventory_quantity"),
		NumberAt("sellers", 0, "commertialOffer", "AvailableQuantity"),
	}
	variantTitleChain = []StringExtractor{StringAt("title"), StringAt("name")}
	variantPriceChain = []NumberExtractor{
		NumberAt("price"),
		NumberAt("sellers", 0, "commertialOffer", "Price"),
	}

	// rootLookupIDChain is the key reconciliation uses for root records
	rootLookupIDChain = []StringExtractor{StringAt("productId"), StringAt("id")}
)

// RootExternalID returns the external id used to look up a product's root record
func RootExternalID(r RawProduct) string {
	return FirstString(r, rootLookupIDChain...)
}

// VariantExternalID returns the external id used to look up a variant's child record
func VariantExternalID(r RawProduct) string {
	return FirstString(r, variantResourceIDChain...)
}

// ChildPayloads returns a product's nested items, falling back to its variants.
// The first non-empty list wins.
func ChildPayloads(r RawProduct) []RawProduct {
	if items := r.List("items"); len(items) > 0 {
		return items
	}
	return r.List("variants")
}
