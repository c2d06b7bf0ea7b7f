package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/warehouse/backend/internal/application/report"
	"github.com/warehouse/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles read-only report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.GET("/dashboard", h.Dashboard)
	reports.GET("/reconciliation", h.Reconciliation)
}

// Dashboard summarizes the order pipeline and outstanding balances
func (h *ReportHandler) Dashboard(c *gin.Context) {
	result, err := h.reportService.Dashboard(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Reconciliation verifies every stored counterparty balance against the
// fold of its ledger entries
func (h *ReportHandler) Reconciliation(c *gin.Context) {
	result, err := h.reportService.Reconciliation(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
