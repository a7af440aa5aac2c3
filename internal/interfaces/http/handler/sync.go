package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/zaylo/backend/internal/application/importer"
	"github.com/zaylo/backend/internal/domain/syncrun"
	"github.com/zaylo/backend/internal/infrastructure/config"
	"github.com/zaylo/backend/internal/interfaces/http/dto"
	"github.com/zaylo/backend/internal/interfaces/http/middleware"
)

// SyncHandler exposes the bulk sync trigger and its run history
type SyncHandler struct {
	BaseHandler
	service *importer.SyncService
	runs    syncrun.Repository
	cfg     *config.SyncConfig
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(service *importer.SyncService, runs syncrun.Repository, cfg *config.SyncConfig) *SyncHandler {
	return &SyncHandler{service: service, runs: runs, cfg: cfg}
}

// RegisterRoutes registers sync routes. The trigger is secret-gated; the run
// history is read-only and public within the API.
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	sync.POST("/products", middleware.BearerSecret(h.cfg.Secret), h.TriggerSync)
	sync.GET("/runs", h.ListRuns)
}

// TriggerSync runs a full catalog sync and returns its report.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	if !h.cfg.Enabled {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeForbidden), dto.ErrCodeForbidden,
			"Bulk sync is disabled")
		return
	}

	report, err := h.service.SyncAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// ListRuns returns recent sync run reports, newest first.
func (h *SyncHandler) ListRuns(c *gin.Context) {
	var req dto.ListRunsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "limit must be between 1 and 100")
		return
	}

	reports, err := h.runs.List(c.Request.Context(), req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reports)
}
