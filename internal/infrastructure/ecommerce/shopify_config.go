package ecommerce

import (
	"errors"
	"strings"
)

// ShopifyConfig holds configuration for the Shopify Admin REST API
type ShopifyConfig struct {
	// Shop is the store subdomain (<shop>.myshopify.com)
	Shop string `validate:"required"`
	// AccessToken is the Admin API access token
	AccessToken string `validate:"required"`
	// APIVersion is the dated Admin API version
	APIVersion string
	// APIBaseURL overrides the https://<shop>.myshopify.com base URL
	APIBaseURL string `validate:"omitempty,url"`
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int `validate:"gte=0"`
	// RequestsPerSecond caps outbound calls; 0 disables limiting
	RequestsPerSecond float64 `validate:"gte=0"`
	// PageSize is the number of products requested per page (max 250)
	PageSize int `validate:"gte=0,lte=250"`
	// MaxPages bounds pagination
	MaxPages int `validate:"gte=0"`
}

const (
	// ShopifyDefaultAPIVersion is the Admin API version used when none is configured
	ShopifyDefaultAPIVersion = "2023-10"
	// ShopifyAccessTokenHeader carries the Admin API token
	ShopifyAccessTokenHeader = "X-Shopify-Access-Token"
)

// Errors for Shopify configuration
var (
	ErrShopifyConfigMissingShop        = errors.New("shopify: shop is required")
	ErrShopifyConfigMissingAccessToken = errors.New("shopify: access token is required")
)

// NewShopifyConfig creates a new Shopify configuration with defaults
func NewShopifyConfig(shop, accessToken string) *ShopifyConfig {
	return &ShopifyConfig{
		Shop:              shop,
		AccessToken:       accessToken,
		APIVersion:        ShopifyDefaultAPIVersion,
		TimeoutSeconds:    30,
		RequestsPerSecond: 2,
		PageSize:          250,
		MaxPages:          defaultMaxPages,
	}
}

// Validate validates the configuration and fills defaults
func (c *ShopifyConfig) Validate() error {
	if c.Shop == "" {
		return ErrShopifyConfigMissingShop
	}
	if c.AccessToken == "" {
		return ErrShopifyConfigMissingAccessToken
	}
	if c.APIVersion == "" {
		c.APIVersion = ShopifyDefaultAPIVersion
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://" + c.Shop + ".myshopify.com"
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.PageSize <= 0 || c.PageSize > 250 {
		c.PageSize = 250
	}
	if c.MaxPages <= 0 {
		c.MaxPages = defaultMaxPages
	}
	return nil
}

// ProductsPath returns the products listing path for the configured API version
func (c *ShopifyConfig) ProductsPath() string {
	return "/admin/api/" + c.APIVersion + "/products.json"
}
