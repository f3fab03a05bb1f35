package ecommerce

import (
	"errors"
	"strings"
)

// VTEXConfig holds configuration for the VTEX catalog search API
type VTEXConfig struct {
	// AccountName is the VTEX account (<account>.vtexcommercestable.com.br)
	AccountName string `validate:"required"`
	// AppKey is the VTEX application key
	AppKey string `validate:"required"`
	// AppToken is the VTEX application token
	AppToken string `validate:"required"`
	// APIBaseURL overrides the https://<account>.vtexcommercestable.com.br base URL
	APIBaseURL string `validate:"omitempty,url"`
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int `validate:"gte=0"`
	// RequestsPerSecond caps outbound calls; 0 disables limiting
	RequestsPerSecond float64 `validate:"gte=0"`
	// PageSize is the number of products per _from/_to window (max 50)
	PageSize int `validate:"gte=0,lte=50"`
	// MaxPages bounds pagination
	MaxPages int `validate:"gte=0"`
}

const (
	// VTEXSearchPath is the public catalog search endpoint
	VTEXSearchPath = "/api/catalog_system/pub/products/search"
	// VTEXAppKeyHeader carries the application key
	VTEXAppKeyHeader = "X-VTEX-API-AppKey"
	// VTEXAppTokenHeader carries the application token
	VTEXAppTokenHeader = "X-VTEX-API-AppToken"
)

// Errors for VTEX configuration
var (
	ErrVTEXConfigMissingAccountName = errors.New("vtex: account name is required")
	ErrVTEXConfigMissingAppKey      = errors.New("vtex: app key is required")
	ErrVTEXConfigMissingAppToken    = errors.New("vtex: app token is required")
)

// NewVTEXConfig creates a new VTEX configuration with defaults
func NewVTEXConfig(accountName, appKey, appToken string) *VTEXConfig {
	return &VTEXConfig{
		AccountName:       accountName,
		AppKey:            appKey,
		AppToken:          appToken,
		TimeoutSeconds:    30,
		RequestsPerSecond: 5,
		PageSize:          50,
		MaxPages:          defaultMaxPages,
	}
}

// Validate validates the configuration and fills defaults
func (c *VTEXConfig) Validate() error {
	if c.AccountName == "" {
		return ErrVTEXConfigMissingAccountName
	}
	if c.AppKey == "" {
		return ErrVTEXConfigMissingAppKey
	}
	if c.AppToken == "" {
		return ErrVTEXConfigMissingAppToken
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://" + c.AccountName + ".vtexcommercestable.com.br"
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.PageSize <= 0 || c.PageSize > 50 {
		c.PageSize = 50
	}
	if c.MaxPages <= 0 {
		c.MaxPages = defaultMaxPages
	}
	return nil
}
