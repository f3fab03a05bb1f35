package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/catalogsync/backend/internal/application/catalog"
	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/catalogsync/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubIngester struct {
	prefixes []string
}

func (s *stubIngester) Ingest(_ context.Context, prefix string) (*catalogapp.IngestResult, error) {
	s.prefixes = append(s.prefixes, prefix)
	return catalogapp.NewIngestResult(nil), nil
}

type stubQuerier struct {
	searched []catalogapp.SearchRequest
	listed   int
}

func (s *stubQuerier) Search(_ context.Context, req catalogapp.SearchRequest) ([]catalog.ProductRecord, error) {
	s.searched = append(s.searched, req)
	return nil, nil
}

func (s *stubQuerier) List(context.Context) ([]catalog.ProductRecord, error) {
	s.listed++
	return nil, nil
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("products", "/products")
		assert.Equal(t, "products", g.Name())
		assert.Equal(t, "/products", g.Prefix())
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		req := httptest.NewRequest("GET", "/api/v1/test/items", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("catalog", "/catalog")
		g.Group("products", "/products").GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "products list")
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		req := httptest.NewRequest("GET", "/api/v1/catalog/products", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "products list", w.Body.String())
	})
}

func newAPI(t *testing.T) (*gin.Engine, *stubIngester, *stubQuerier) {
	t.Helper()
	ingester := &stubIngester{}
	querier := &stubQuerier{}
	engine := gin.New()
	RegisterAPI(engine, Handlers{
		Product: handler.NewProductHandler(ingester, querier),
		System:  handler.NewSystemHandler("catalogsync", "test", stubPinger{}, nil),
	})
	return engine, ingester, querier
}

func TestRegisterAPI_ProductRoutes(t *testing.T) {
	engine, ingester, querier := newAPI(t)

	for _, target := range []string{
		"/api/v1/products",
		"/api/v1/products/search?searchText=shirt",
		"/api/v1/products/search/vtex",
	} {
		req := httptest.NewRequest("GET", target, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, target)
	}

	assert.Equal(t, 1, querier.listed)
	require.Len(t, querier.searched, 1)
	assert.Equal(t, "shirt", querier.searched[0].SearchText)
	assert.Equal(t, []string{"vtex"}, ingester.prefixes)
}

func TestRegisterAPI_SystemRoutes(t *testing.T) {
	engine, _, _ := newAPI(t)

	for _, target := range []string{"/health", "/api/v1/system/info", "/api/v1/system/ping"} {
		req := httptest.NewRequest("GET", target, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}

func TestRegisterAPI_NoRoute(t *testing.T) {
	engine, _, _ := newAPI(t)

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}
