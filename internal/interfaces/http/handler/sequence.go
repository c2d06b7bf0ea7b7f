package handler

import (
	"github.com/gin-gonic/gin"
	sequenceapp "github.com/warehouse/backend/internal/application/sequence"
	"github.com/warehouse/backend/internal/domain/sequence"
	"github.com/warehouse/backend/internal/interfaces/http/middleware"
)

// SequenceHandler handles the administrative surface of document number
// counters
type SequenceHandler struct {
	BaseHandler
	sequenceService *sequenceapp.SequenceService
}

// NewSequenceHandler creates a new SequenceHandler
func NewSequenceHandler(sequenceService *sequenceapp.SequenceService) *SequenceHandler {
	return &SequenceHandler{sequenceService: sequenceService}
}

// RegisterRoutes registers sequence admin routes. Resync changes counter
// state, so both routes are admin-only.
func (h *SequenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sequences := rg.Group("/admin/sequences")
	sequences.Use(middleware.RequireRole("admin"))
	sequences.GET("", h.Status)
	sequences.POST("/:series/resync", h.Resync)
}

// Status reports every number series' counter against its issued documents
func (h *SequenceHandler) Status(c *gin.Context) {
	result, err := h.sequenceService.Status(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Resync raises a series' counter to the highest issued suffix
func (h *SequenceHandler) Resync(c *gin.Context) {
	series := sequence.Series(c.Param("series"))

	result, err := h.sequenceService.Resync(c.Request.Context(), middleware.GetTenantID(c), series)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
