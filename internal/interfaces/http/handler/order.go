package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/warehouse/backend/internal/application/trade"
	"github.com/warehouse/backend/internal/domain/trade"
	"github.com/warehouse/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles sales order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:id", h.Get)
	orders.PUT("/:id", h.Update)
	orders.PATCH("/:id/status", h.UpdateStatus)
	orders.POST("/:id/cancel", h.Cancel)
	orders.POST("/:id/uncancel", h.Uncancel)
	orders.DELETE("/:id", h.Delete)
}

// Create creates a new order, issuing its number and applying stock and
// balance effects in one transaction
func (h *OrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orderService.Create(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List lists orders with filtering and pagination
func (h *OrderHandler) List(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orderService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// Get retrieves an order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update replaces a pending order's lines and settings
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req tradeapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orderService.Update(c.Request.Context(), middleware.GetTenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateStatus moves an order along the fulfilment state machine
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req tradeapp.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orderService.UpdateStatus(c.Request.Context(), middleware.GetTenantID(c), id, trade.OrderStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel cancels an order, restocking its lines and issuing a cancellation
// credit note
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req tradeapp.CancelOrderRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orderService.Cancel(c.Request.Context(), middleware.GetTenantID(c), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Uncancel reverses a cancellation, removing the linked credit note
func (h *OrderHandler) Uncancel(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.orderService.Uncancel(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes an order, cancelling it first if it is still live
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), middleware.GetTenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
