package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/zaylo/backend/internal/domain/catalog"
	"github.com/zaylo/backend/internal/interfaces/http/dto"
)

// defaultProductPageSize bounds listings when the caller passes no limit.
const defaultProductPageSize = 20

// CatalogHandler exposes the published storefront catalog over HTTP
type CatalogHandler struct {
	BaseHandler
	reader catalog.Reader
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(reader catalog.Reader) *CatalogHandler {
	return &CatalogHandler{reader: reader}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/:handle", h.GetProduct)
	rg.GET("/collections/:handle/products", h.ListCollectionProducts)
}

// ListProducts returns the newest published products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	first, ok := h.bindFirst(c)
	if !ok {
		return
	}

	products, err := h.reader.ListProducts(c.Request.Context(), first)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// ListCollectionProducts returns the products of one collection.
func (h *CatalogHandler) ListCollectionProducts(c *gin.Context) {
	first, ok := h.bindFirst(c)
	if !ok {
		return
	}

	products, err := h.reader.ListCollectionProducts(c.Request.Context(), c.Param("handle"), first)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetProduct returns one published product by handle.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.reader.GetProductByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// bindFirst reads the ?first query parameter, reporting false after having
// written an error response.
func (h *CatalogHandler) bindFirst(c *gin.Context) (int, bool) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "first must be between 1 and 100")
		return 0, false
	}
	if req.First == 0 {
		req.First = defaultProductPageSize
	}
	return req.First, true
}
