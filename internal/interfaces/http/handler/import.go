package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/zaylo/backend/internal/application/importer"
	"github.com/zaylo/backend/internal/interfaces/http/dto"
)

// ImportHandler exposes the single-product import over HTTP
type ImportHandler struct {
	BaseHandler
	service *importer.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(service *importer.ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// RegisterRoutes registers import routes
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/imports/product", h.ImportProduct)
}

// ImportProduct imports one supplier product page into the store.
func (h *ImportHandler) ImportProduct(c *gin.Context) {
	var req dto.ImportProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "url is required and markup_percent must be a sane percentage")
		return
	}

	result, err := h.service.ImportFromURL(c.Request.Context(), req.URL, req.MarkupPercent)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
