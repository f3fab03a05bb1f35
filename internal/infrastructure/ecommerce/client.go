package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from a platform API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// defaultMaxPages bounds pagination so a misbehaving API cannot loop forever
const defaultMaxPages = 200

// newHTTPClient builds the resty client shared by every request of one platform client
func newHTTPClient(baseURL string, timeoutSeconds int) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(time.Duration(timeoutSeconds)*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "catalogsync/1.0").
		SetResponseBodyLimit(maxResponseSize)
}

// newLimiter returns an outbound limiter; rps <= 0 disables limiting
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// execute waits for the limiter, runs the request and maps transport and HTTP failures
// onto the integration error sentinels.
func execute(ctx context.Context, limiter *rate.Limiter, req *resty.Request, path string) (*resty.Response, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformRequestFailed, err)
	}

	resp, err := req.SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformRequestFailed, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrPlatformAuthFailed, code)
	case code == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRateLimited, code)
	case code >= 400:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrPlatformRequestFailed, code)
	}
	return resp, nil
}

// decodeJSON decodes body keeping numbers as json.Number so large ids survive intact
func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}
	return nil
}

func logFetched(logger *zap.Logger, tag catalog.PlatformTag, pages, count int, start time.Time) {
	logger.Info("Fetched platform products",
		zap.String("platform", tag.String()),
		zap.Int("pages", pages),
		zap.Int("count", count),
		zap.Duration("duration", time.Since(start)),
	)
}
