package handler

import (
	"context"
	"net/http"

	catalogapp "github.com/catalogsync/backend/internal/application/catalog"
	"github.com/catalogsync/backend/internal/domain/catalog"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ProductIngester runs an ingestion for a platform prefix
type ProductIngester interface {
	Ingest(ctx context.Context, prefix string) (*catalogapp.IngestResult, error)
}

// ProductQuerier serves read queries over stored products
type ProductQuerier interface {
	Search(ctx context.Context, req catalogapp.SearchRequest) ([]catalog.ProductRecord, error)
	List(ctx context.Context) ([]catalog.ProductRecord, error)
}

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	ingester ProductIngester
	querier  ProductQuerier
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(ingester ProductIngester, querier ProductQuerier) *ProductHandler {
	return &ProductHandler{
		ingester: ingester,
		querier:  querier,
	}
}

// Ingest godoc
// @ID           ingestProducts
// @Summary      Ingest products from a platform
// @Description  Fetches every product of the platform named by prefix, stores the ones not seen before and returns the canonical shape of everything fetched
// @Tags         products
// @Produce      json
// @Param        prefix path string true "Platform tag" Enums(vtex, shopify)
// @Success      200 {object} catalogapp.IngestResult
// @Failure      400 {object} dto.Response "Unsupported or unconfigured platform"
// @Failure      409 {object} dto.Response "Ingestion already running for the platform"
// @Failure      502 {object} dto.Response "Platform API failure"
// @Failure      500 {object} dto.Response
// @Router       /products/search/{prefix} [get]
func (h *ProductHandler) Ingest(c *gin.Context) {
	result, err := h.ingester.Ingest(c.Request.Context(), c.Param("prefix"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Search godoc
// @ID           searchProducts
// @Summary      Search stored products
// @Description  Filters stored rows by a case-insensitive name substring and by price
// @Tags         products
// @Produce      json
// @Param        searchText query string false "Substring of the product name"
// @Param        price query number false "Price to compare against"
// @Param        operator query string false "Price comparison" Enums(equal, less, more) default(equal)
// @Success      200 {object} catalogapp.RecordsResult
// @Failure      400 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /products/search [get]
func (h *ProductHandler) Search(c *gin.Context) {
	var req catalogapp.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	records, err := h.querier.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogapp.NewRecordsResult(records))
}

// List godoc
// @ID           listProducts
// @Summary      List stored products
// @Description  Returns every stored row, roots and variants
// @Tags         products
// @Produce      json
// @Success      200 {object} catalogapp.RecordsResult
// @Failure      500 {object} dto.Response
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	records, err := h.querier.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogapp.NewRecordsResult(records))
}
