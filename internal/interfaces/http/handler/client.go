package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/warehouse/backend/internal/application/partner"
	"github.com/warehouse/backend/internal/interfaces/http/middleware"
)

// ClientHandler handles client counterparty endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partnerapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	clients.POST("", h.Create)
	clients.GET("", h.List)
	clients.GET("/:id", h.Get)
	clients.PUT("/:id", h.Update)
	clients.DELETE("/:id", h.Delete)
	clients.GET("/:id/statement", h.Statement)
	clients.POST("/:id/rebalance", middleware.RequireRole("admin"), h.Rebalance)
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
	var req partnerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.clientService.Create(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List lists clients with filtering and pagination
func (h *ClientHandler) List(c *gin.Context) {
	var filter partnerapp.PartnerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.clientService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// Get retrieves a client by ID
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.clientService.GetByID(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update updates a client's contact details
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req partnerapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.clientService.Update(c.Request.Context(), middleware.GetTenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete deletes a client without outstanding dues
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), middleware.GetTenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Statement returns the client's balance ledger entries
func (h *ClientHandler) Statement(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var filter partnerapp.StatementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.clientService.Statement(c.Request.Context(), middleware.GetTenantID(c), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// Rebalance resets the client's stored dues to the ledger fold
func (h *ClientHandler) Rebalance(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.clientService.Rebalance(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
