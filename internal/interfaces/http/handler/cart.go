package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/zaylo/backend/internal/application/cart"
	"github.com/zaylo/backend/internal/interfaces/http/dto"
	"github.com/zaylo/backend/internal/interfaces/http/middleware"
)

// CartHandler exposes the session cart over HTTP
type CartHandler struct {
	BaseHandler
	service *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(service *cartapp.Service) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.GET("", h.Get)
	cart.POST("/lines", h.AddLine)
	cart.PATCH("/lines/:id", h.UpdateLine)
	cart.DELETE("/lines/:id", h.RemoveLine)
	cart.POST("/drawer/close", h.CloseDrawer)
}

// Get returns the session's cart, creating one when none exists yet.
func (h *CartHandler) Get(c *gin.Context) {
	key := middleware.GetSessionKey(c)
	if _, err := h.service.Initialize(c.Request.Context(), key); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.snapshot(key))
}

// AddLine adds one variant to the cart.
func (h *CartHandler) AddLine(c *gin.Context) {
	var req dto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "variant_id is required and quantity must be at least 1")
		return
	}

	key := middleware.GetSessionKey(c)
	if _, err := h.service.AddItem(c.Request.Context(), key, req.VariantID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.snapshot(key))
}

// UpdateLine changes a line's quantity.
func (h *CartHandler) UpdateLine(c *gin.Context) {
	var req dto.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "quantity must be at least 1")
		return
	}

	key := middleware.GetSessionKey(c)
	if _, err := h.service.UpdateItem(c.Request.Context(), key, c.Param("id"), req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.snapshot(key))
}

// RemoveLine removes a line from the cart.
func (h *CartHandler) RemoveLine(c *gin.Context) {
	key := middleware.GetSessionKey(c)
	if _, err := h.service.RemoveItem(c.Request.Context(), key, c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.snapshot(key))
}

// CloseDrawer clears the drawer-open flag set by a successful add.
func (h *CartHandler) CloseDrawer(c *gin.Context) {
	key := middleware.GetSessionKey(c)
	h.service.CloseDrawer(key)
	h.Success(c, h.snapshot(key))
}

// snapshot returns the session's current view, an empty one when the session
// has no cart.
func (h *CartHandler) snapshot(key string) *cartapp.Snapshot {
	if current := h.service.Current(key); current != nil {
		return current
	}
	return &cartapp.Snapshot{}
}
