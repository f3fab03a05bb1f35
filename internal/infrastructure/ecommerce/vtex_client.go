package ecommerce

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
)

// VTEXClient implements integration.PlatformClient for VTEX stores
type VTEXClient struct {
	config  *VTEXConfig
	http    *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewVTEXClient creates a new VTEX client with the given configuration
func NewVTEXClient(config *VTEXConfig, logger *zap.Logger) (*VTEXClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &VTEXClient{
		config:  config,
		http:    newHTTPClient(config.APIBaseURL, config.TimeoutSeconds),
		limiter: newLimiter(config.RequestsPerSecond),
		logger:  logger.With(zap.String("platform", catalog.PlatformVTEX.String())),
	}, nil
}

// Platform returns the VTEX platform tag
func (c *VTEXClient) Platform() catalog.PlatformTag {
	return catalog.PlatformVTEX
}

// FetchProducts walks the search endpoint in _from/_to windows until a short page
func (c *VTEXClient) FetchProducts(ctx context.Context) ([]catalog.RawProduct, error) {
	start := time.Now()
	products := make([]catalog.RawProduct, 0)

	pages := 0
	for from := 0; pages < c.config.MaxPages; from += c.config.PageSize {
		to := from + c.config.PageSize - 1

		req := c.http.R().
			SetHeader(VTEXAppKeyHeader, c.config.AppKey).
			SetHeader(VTEXAppTokenHeader, c.config.AppToken).
			SetQueryParam("_from", strconv.Itoa(from)).
			SetQueryParam("_to", strconv.Itoa(to))

		resp, err := execute(ctx, c.limiter, req, VTEXSearchPath)
		if err != nil {
			return nil, err
		}
		pages++

		var page []catalog.RawProduct
		if err := decodeJSON(resp.Body(), &page); err != nil {
			return nil, err
		}
		products = append(products, page...)

		if len(page) < c.config.PageSize {
			break
		}
	}

	logFetched(c.logger, c.Platform(), pages, len(products), start)
	return products, nil
}

var _ integration.PlatformClient = (*VTEXClient)(nil)
