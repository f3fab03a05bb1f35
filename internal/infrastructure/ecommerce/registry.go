package ecommerce

import (
	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/domain/integration"
)

// NewRegistry builds the platform registry from whichever platform configs are present.
// A nil config leaves that platform unregistered.
func NewRegistry(shopify *ShopifyConfig, vtex *VTEXConfig, logger *zap.Logger) (*integration.Registry, error) {
	registry, err := integration.NewRegistry()
	if err != nil {
		return nil, err
	}

	if shopify != nil {
		client, err := NewShopifyClient(shopify, logger)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(client); err != nil {
			return nil, err
		}
	}

	if vtex != nil {
		client, err := NewVTEXClient(vtex, logger)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(client); err != nil {
			return nil, err
		}
	}

	if logger != nil {
		platforms := make([]string, 0)
		for _, tag := range registry.Platforms() {
			platforms = append(platforms, tag.String())
		}
		logger.Info("Platform registry initialized", zap.Strings("platforms", platforms))
	}

	return registry, nil
}
