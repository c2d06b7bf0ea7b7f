package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/finance"
)

// CreatePaymentRequest records a payment against exactly one counterparty.
// Exactly one of ClientID and SupplierID must be set.
type CreatePaymentRequest struct {
	ClientID   *uuid.UUID      `json:"client_id"`
	SupplierID *uuid.UUID      `json:"supplier_id"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method" binding:"required,oneof=cash bank_transfer cheque card"`
	Remark     string          `json:"remark" binding:"max=500"`
}

// PaymentListFilter represents filter options for the payment list
type PaymentListFilter struct {
	ClientID   *uuid.UUID `form:"client_id"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Search     string     `form:"search"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	PaymentNumber string          `json:"payment_number"`
	ClientID      *uuid.UUID      `json:"client_id,omitempty"`
	SupplierID    *uuid.UUID      `json:"supplier_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	PaymentDate   time.Time       `json:"payment_date"`
	Remark        string          `json:"remark,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a domain payment to a response
func ToPaymentResponse(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		PaymentNumber: p.PaymentNumber,
		ClientID:      p.ClientID,
		SupplierID:    p.SupplierID,
		Amount:        p.Amount,
		Method:        p.Method.String(),
		PaymentDate:   p.PaymentDate,
		Remark:        p.Remark,
		CreatedAt:     p.CreatedAt,
	}
}

// CreditNoteItemRequest is one returned line
type CreditNoteItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateReturnRequest records a physical return from a client. Cancellation
// notes are not created here; the order cancellation path issues those.
type CreateReturnRequest struct {
	ClientID uuid.UUID               `json:"client_id" binding:"required"`
	Items    []CreditNoteItemRequest `json:"items" binding:"required,min=1,dive"`
	Remark   string                  `json:"remark" binding:"max=500"`
}

// CreditNoteListFilter represents filter options for the credit note list
type CreditNoteListFilter struct {
	ClientID *uuid.UUID `form:"client_id"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreditNoteItemResponse represents a credit note line in API responses
type CreditNoteItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CreditNoteResponse represents a credit note in API responses
type CreditNoteResponse struct {
	ID          uuid.UUID                `json:"id"`
	NoteNumber  string                   `json:"note_number"`
	ClientID    uuid.UUID                `json:"client_id"`
	ClientName  string                   `json:"client_name"`
	Type        string                   `json:"type"`
	OrderID     *uuid.UUID               `json:"order_id,omitempty"`
	Items       []CreditNoteItemResponse `json:"items"`
	TotalAmount decimal.Decimal          `json:"total_amount"`
	Remark      string                   `json:"remark,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

// ToCreditNoteResponse converts a domain credit note to a response
func ToCreditNoteResponse(n *finance.CreditNote) CreditNoteResponse {
	items := make([]CreditNoteItemResponse, len(n.Items))
	for i, item := range n.Items {
		items[i] = CreditNoteItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}
	return CreditNoteResponse{
		ID:          n.ID,
		NoteNumber:  n.NoteNumber,
		ClientID:    n.ClientID,
		ClientName:  n.ClientName,
		Type:        n.Type.String(),
		OrderID:     n.OrderID,
		Items:       items,
		TotalAmount: n.TotalAmount,
		Remark:      n.Remark,
		CreatedAt:   n.CreatedAt,
	}
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate *time.Time      `json:"expense_date"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate *time.Time      `json:"expense_date"`
}

// ExpenseListFilter represents filter options for the expense list
type ExpenseListFilter struct {
	Category string `form:"category"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToExpenseResponse converts a domain expense to a response
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
