package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/warehouse/backend/internal/application/finance"
	"github.com/warehouse/backend/internal/interfaces/http/middleware"
)

// FinanceHandler handles payment, credit note and expense endpoints
type FinanceHandler struct {
	BaseHandler
	paymentService    *financeapp.PaymentService
	creditNoteService *financeapp.CreditNoteService
	expenseService    *financeapp.ExpenseService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	paymentService *financeapp.PaymentService,
	creditNoteService *financeapp.CreditNoteService,
	expenseService *financeapp.ExpenseService,
) *FinanceHandler {
	return &FinanceHandler{
		paymentService:    paymentService,
		creditNoteService: creditNoteService,
		expenseService:    expenseService,
	}
}

// RegisterRoutes registers finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	payments.POST("", h.CreatePayment)
	payments.GET("", h.ListPayments)
	payments.GET("/:id", h.GetPayment)
	payments.DELETE("/:id", h.DeletePayment)

	// Cancellation notes are minted by order cancellation; the only note a
	// client creates directly is a return, so POST on the collection is it.
	notes := rg.Group("/credit-notes")
	notes.POST("", h.CreateReturn)
	notes.GET("", h.ListCreditNotes)
	notes.GET("/:id", h.GetCreditNote)
	notes.DELETE("/:id", h.DeleteCreditNote)

	expenses := rg.Group("/expenses")
	expenses.POST("", h.CreateExpense)
	expenses.GET("", h.ListExpenses)
	expenses.GET("/:id", h.GetExpense)
	expenses.PUT("/:id", h.UpdateExpense)
	expenses.DELETE("/:id", h.DeleteExpense)
}

// CreatePayment records a payment from a client or to a supplier
func (h *FinanceHandler) CreatePayment(c *gin.Context) {
	var req financeapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.paymentService.Create(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListPayments lists payments with filtering and pagination
func (h *FinanceHandler) ListPayments(c *gin.Context) {
	var filter financeapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.paymentService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// GetPayment retrieves a payment by ID
func (h *FinanceHandler) GetPayment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.paymentService.GetByID(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeletePayment removes a payment, restoring the counterparty balance
func (h *FinanceHandler) DeletePayment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), middleware.GetTenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateReturn records goods coming back from a client
func (h *FinanceHandler) CreateReturn(c *gin.Context) {
	var req financeapp.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.creditNoteService.CreateReturn(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListCreditNotes lists credit notes with filtering and pagination
func (h *FinanceHandler) ListCreditNotes(c *gin.Context) {
	var filter financeapp.CreditNoteListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.creditNoteService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// GetCreditNote retrieves a credit note by ID
func (h *FinanceHandler) GetCreditNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.creditNoteService.GetByID(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteCreditNote removes a return note, reversing its effects.
// Cancellation notes are removed by un-cancelling their order.
func (h *FinanceHandler) DeleteCreditNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.creditNoteService.Delete(c.Request.Context(), middleware.GetTenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateExpense records an operating expense
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.expenseService.Create(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListExpenses lists expenses with filtering and pagination
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	var filter financeapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.expenseService.List(c.Request.Context(), middleware.GetTenantID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// GetExpense retrieves an expense by ID
func (h *FinanceHandler) GetExpense(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.expenseService.GetByID(c.Request.Context(), middleware.GetTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateExpense updates an expense
func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.expenseService.Update(c.Request.Context(), middleware.GetTenantID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteExpense removes an expense
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), middleware.GetTenantID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
