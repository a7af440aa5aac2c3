package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DatabasePinger reports database liveness.
type DatabasePinger interface {
	Ping() error
}

// StorePinger reports cart store liveness.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db    DatabasePinger
	store StorePinger
}

// NewSystemHandler creates a new SystemHandler. Either dependency may be nil
// and is then skipped in the health report.
func NewSystemHandler(db DatabasePinger, store StorePinger) *SystemHandler {
	return &SystemHandler{db: db, store: store}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/system/ping", h.Ping)
}

// Ping returns a plain liveness response.
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health reports liveness of the service and its dependencies. Registered
// outside API versioning for load balancers.
func (h *SystemHandler) Health(c *gin.Context) {
	status := http.StatusOK
	report := gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			report["status"] = "unhealthy"
			report["database"] = "error"
			status = http.StatusServiceUnavailable
		} else {
			report["database"] = "ok"
		}
	}

	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			report["status"] = "unhealthy"
			report["cart_store"] = "error"
			status = http.StatusServiceUnavailable
		} else {
			report["cart_store"] = "ok"
		}
	}

	c.JSON(status, report)
}
