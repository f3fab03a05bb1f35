package catalog

import "github.com/google/uuid"

// Product is the canonical, platform-independent product returned to API callers.
// ProductID is generated per transform and is unrelated to the persisted row id.
// @name CanonicalProduct
type Product struct {
	ExternalID       string    `json:"external_id"`
	ProductID        uuid.UUID `json:"product_id"`
	SKU              string    `json:"sku"`
	Image            string    `json:"image"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description"`
	Price            Amount    `json:"price" swaggertype:"number" example:"19.9"`
	Variants         []Variant `json:"variants"`
}

// Variant is one purchasable variant of a canonical Product
// @name CanonicalVariant
type Variant struct {
	LegacyResourceID  string         `json:"legacyResourceId"`
	InventoryQuantity int64          `json:"inventoryQuantity"`
	SelectOptions     []SelectOption `json:"selectOptions"`
	DisplayName       string         `json:"displayName"`
	Price             Amount         `json:"price" swaggertype:"number" example:"19.9"`
}

// SelectOption pairs a product-level option name with the option's first declared value
// @name SelectOption
type SelectOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ToCanonicalProduct builds the canonical shape of a raw payload.
// It never fails: missing strings resolve to "" and missing numbers to 0.
func ToCanonicalProduct(raw RawProduct) Product {
	externalID := FirstString(raw, productExternalIDChain...)
	title := FirstString(raw, productTitleChain...)

	variants := raw.List("variants")
	if len(variants) == 0 {
		variants = raw.List("items")
	}

	return Product{
		ExternalID:       externalID,
		ProductID:        uuid.New(),
		SKU:              externalID,
		Image:            FirstString(raw, productImageChain...),
		Name:             title,
		ShortDescription: title,
		LongDescription:  title,
		Price:            NewAmount(FirstNonZero(raw, productPriceChain...)),
		Variants:         ToCanonicalVariants(variants, raw.List("options")),
	}
}

// ToCanonicalProducts transforms every raw payload, preserving order
func ToCanonicalProducts(raws []RawProduct) []Product {
	products := make([]Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, ToCanonicalProduct(raw))
	}
	return products
}

// ToCanonicalVariants maps each variant independently. The same product-level
// options are applied to every variant.
func ToCanonicalVariants(variants []RawProduct, options []RawProduct) []Variant {
	selectOptions := toSelectOptions(options)

	out := make([]Variant, 0, len(variants))
	for _, v := range variants {
		opts := make([]SelectOption, len(selectOptions))
		copy(opts, selectOptions)

		out = append(out, Variant{
			LegacyResourceID:  FirstString(v, variantResourceIDChain...),
			InventoryQuantity: FirstPresent(v, variantInventoryChain...).IntPart(),
			SelectOptions:     opts,
			DisplayName:       FirstString(v, variantTitleChain...),
			Price:             NewAmount(FirstNonZero(v, variantPriceChain...)),
		})
	}
	return out
}

func toSelectOptions(options []RawProduct) []SelectOption {
	out := make([]SelectOption, 0, len(options))
	for _, opt := range options {
		out = append(out, SelectOption{
			Name:  FirstString(opt, StringAt("name")),
			Value: FirstString(opt, StringAt("values", 0)),
		})
	}
	return out
}
