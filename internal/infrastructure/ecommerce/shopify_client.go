package ecommerce

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
)

// nextLinkPattern extracts the rel="next" URL from a Shopify Link header
var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// shopifyProductsResponse is the products.json envelope
type shopifyProductsResponse struct {
	Products []catalog.RawProduct `json:"products"`
}

// ShopifyClient implements integration.PlatformClient for Shopify stores
type ShopifyClient struct {
	config  *ShopifyConfig
	http    *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewShopifyClient creates a new Shopify client with the given configuration
func NewShopifyClient(config *ShopifyConfig, logger *zap.Logger) (*ShopifyClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ShopifyClient{
		config:  config,
		http:    newHTTPClient(config.APIBaseURL, config.TimeoutSeconds),
		limiter: newLimiter(config.RequestsPerSecond),
		logger:  logger.With(zap.String("platform", catalog.PlatformShopify.String())),
	}, nil
}

// Platform returns the Shopify platform tag
func (c *ShopifyClient) Platform() catalog.PlatformTag {
	return catalog.PlatformShopify
}

// FetchProducts pages through products.json following the Link header
func (c *ShopifyClient) FetchProducts(ctx context.Context) ([]catalog.RawProduct, error) {
	start := time.Now()
	products := make([]catalog.RawProduct, 0)

	query := url.Values{}
	query.Set("limit", strconv.Itoa(c.config.PageSize))

	pages := 0
	for pages < c.config.MaxPages {
		req := c.http.R().
			SetHeader(ShopifyAccessTokenHeader, c.config.AccessToken).
			SetQueryParamsFromValues(query)

		resp, err := execute(ctx, c.limiter, req, c.config.ProductsPath())
		if err != nil {
			return nil, err
		}
		pages++

		var page shopifyProductsResponse
		if err := decodeJSON(resp.Body(), &page); err != nil {
			return nil, err
		}
		products = append(products, page.Products...)

		next := nextPageInfo(resp.Header().Get("Link"))
		if next == "" {
			break
		}
		// page_info cursors must not be combined with other filters
		query = url.Values{}
		query.Set("limit", strconv.Itoa(c.config.PageSize))
		query.Set("page_info", next)
	}

	logFetched(c.logger, c.Platform(), pages, len(products), start)
	return products, nil
}

// nextPageInfo returns the page_info cursor of the rel="next" link, or ""
func nextPageInfo(linkHeader string) string {
	m := nextLinkPattern.FindStringSubmatch(linkHeader)
	if len(m) < 2 {
		return ""
	}
	u, err := url.Parse(m[1])
	if err != nil {
		return ""
	}
	return u.Query().Get("page_info")
}

var _ integration.PlatformClient = (*ShopifyClient)(nil)
