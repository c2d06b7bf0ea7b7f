package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/trade"
)

// OrderItemRequest is one requested order line. UnitPrice is optional; when
// omitted the product's current price is snapshotted.
type OrderItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	ClientID       uuid.UUID          `json:"client_id" binding:"required"`
	InvoiceType    string             `json:"invoice_type" binding:"required,oneof=on_account cash picking_list proforma invoice"`
	Items          []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryCost   decimal.Decimal    `json:"delivery_cost"`
	Remark         string             `json:"remark" binding:"max=500"`
	IdempotencyKey string             `json:"idempotency_key" binding:"max=64"`
}

// UpdateOrderRequest represents a request to update a pending order
type UpdateOrderRequest struct {
	InvoiceType  string             `json:"invoice_type" binding:"required,oneof=on_account cash picking_list proforma invoice"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryCost decimal.Decimal    `json:"delivery_cost"`
	Remark       string             `json:"remark" binding:"max=500"`
}

// UpdateOrderStatusRequest moves an order along the fulfilment state machine
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=in_progress dispatched delivered"`
}

// CancelOrderRequest represents a request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status      string     `form:"status" binding:"omitempty,oneof=pending in_progress dispatched delivered cancelled"`
	InvoiceType string     `form:"invoice_type" binding:"omitempty,oneof=on_account cash picking_list proforma invoice"`
	ClientID    *uuid.UUID `form:"client_id"`
	Search      string     `form:"search"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	ClientID     uuid.UUID           `json:"client_id"`
	ClientName   string              `json:"client_name"`
	InvoiceType  string              `json:"invoice_type"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	DeliveryCost decimal.Decimal     `json:"delivery_cost"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Remark       string              `json:"remark,omitempty"`
	DeliveredAt  *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason string              `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			VATRate:     item.VATRate,
			LineTotal:   item.LineTotal,
		}
	}
	return OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		ClientID:     o.ClientID,
		ClientName:   o.ClientName,
		InvoiceType:  o.InvoiceType.String(),
		Status:       o.Status.String(),
		Items:        items,
		DeliveryCost: o.DeliveryCost,
		TotalAmount:  o.TotalAmount,
		Remark:       o.Remark,
		DeliveredAt:  o.DeliveredAt,
		CancelledAt:  o.CancelledAt,
		CancelReason: o.CancelReason,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// PurchaseItemRequest is one requested purchase line
type PurchaseItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest represents a request to record a purchase
type CreatePurchaseRequest struct {
	SupplierID uuid.UUID             `json:"supplier_id" binding:"required"`
	Kind       string                `json:"kind" binding:"required,oneof=goods_receipt invoice"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Remark     string                `json:"remark" binding:"max=500"`
}

// UpdatePurchaseRequest represents a request to rewrite a purchase's lines
type UpdatePurchaseRequest struct {
	Items  []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Remark string                `json:"remark" binding:"max=500"`
}

// PurchaseListFilter represents filter options for the purchase list
type PurchaseListFilter struct {
	Kind       string     `form:"kind" binding:"omitempty,oneof=goods_receipt invoice"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Search     string     `form:"search"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseItemResponse represents a purchase line in API responses
type PurchaseItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	SupplierID     uuid.UUID              `json:"supplier_id"`
	SupplierName   string                 `json:"supplier_name"`
	Kind           string                 `json:"kind"`
	Items          []PurchaseItemResponse `json:"items"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	Remark         string                 `json:"remark,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToPurchaseResponse converts a domain purchase to a response
func ToPurchaseResponse(p *trade.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = PurchaseItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			VATRate:     item.VATRate,
			LineTotal:   item.LineTotal,
		}
	}
	return PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		Kind:           p.Kind.String(),
		Items:          items,
		TotalAmount:    p.TotalAmount,
		Remark:         p.Remark,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
