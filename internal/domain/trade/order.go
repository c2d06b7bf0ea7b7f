package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// InvoiceType classifies how a sale is billed. Only on_account orders
// contribute to client dues; the other types settle immediately or are
// non-financial documents.
type InvoiceType string

const (
	InvoiceOnAccount   InvoiceType = "on_account"
	InvoiceCash        InvoiceType = "cash"
	InvoicePickingList InvoiceType = "picking_list"
	InvoiceProforma    InvoiceType = "proforma"
	InvoiceInvoice     InvoiceType = "invoice"
)

// IsValid checks if the invoice type is known
func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceOnAccount, InvoiceCash, InvoicePickingList, InvoiceProforma, InvoiceInvoice:
		return true
	}
	return false
}

// String returns the string representation of the invoice type
func (t InvoiceType) String() string {
	return string(t)
}

// AffectsDues reports whether orders of this type contribute to client dues
func (t InvoiceType) AffectsDues() bool {
	return t == InvoiceOnAccount
}

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusDispatched, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Cancellation is reachable from every state except delivered; delivered is
// terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusInProgress || target == OrderStatusCancelled
	case OrderStatusInProgress:
		return target == OrderStatusDispatched || target == OrderStatusCancelled
	case OrderStatusDispatched:
		return target == OrderStatusDelivered || target == OrderStatusCancelled
	case OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return false
}

// OrderItem is a line in an order. Product name, code, price and VAT rate
// are snapshots taken at order time; the product row may later change or
// disappear without breaking order history.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"not null"`
	ProductCode string
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	VATRate     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrderItem creates an order line and computes its total:
// quantity x unit price x (1 + vatRate/100), rounded to 2 places.
func NewOrderItem(orderID, productID uuid.UUID, productName, productCode string, quantity int64, unitPrice, vatRate decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if vatRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", "VAT rate cannot be negative")
	}

	now := time.Now()
	item := &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		VATRate:     vatRate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item.LineTotal = item.computeTotal()
	return item, nil
}

func (i *OrderItem) computeTotal() decimal.Decimal {
	vatFactor := decimal.NewFromInt(1).Add(i.VATRate.Div(decimal.NewFromInt(100)))
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitPrice).Mul(vatFactor).Round(2)
}

// Order is a sale document. Its total is the sum of line totals plus the
// delivery cost. Stock is decremented on creation for every line; only
// on_account orders additionally raise the client's dues.
type Order struct {
	shared.TenantEntity
	OrderNumber    string `gorm:"not null"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientName     string
	InvoiceType    InvoiceType `gorm:"not null"`
	Status         OrderStatus `gorm:"not null"`
	Items          []OrderItem `gorm:"foreignKey:OrderID"`
	DeliveryCost   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	IdempotencyKey *string         `gorm:"uniqueIndex"`
	Remark         string
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string
	// StatusBeforeCancel remembers the fulfilment state so an un-cancel
	// can restore it exactly.
	StatusBeforeCancel *OrderStatus
}

// NewOrder creates a new pending order
func NewOrder(tenantID uuid.UUID, orderNumber string, clientID uuid.UUID, clientName string, invoiceType InvoiceType, deliveryCost decimal.Decimal) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if !invoiceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INVOICE_TYPE", "Unknown invoice type")
	}
	if deliveryCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DELIVERY_COST", "Delivery cost cannot be negative")
	}

	return &Order{
		TenantEntity: shared.NewTenantEntity(tenantID),
		OrderNumber:  orderNumber,
		ClientID:     clientID,
		ClientName:   clientName,
		InvoiceType:  invoiceType,
		Status:       OrderStatusPending,
		Items:        make([]OrderItem, 0),
		DeliveryCost: deliveryCost,
		TotalAmount:  deliveryCost,
	}, nil
}

// SetIdempotencyKey attaches the caller-supplied idempotency key
func (o *Order) SetIdempotencyKey(key string) {
	if key != "" {
		o.IdempotencyKey = &key
	}
}

// AddItem appends a line and recomputes the total
func (o *Order) AddItem(productID uuid.UUID, productName, productCode string, quantity int64, unitPrice, vatRate decimal.Decimal) (*OrderItem, error) {
	item, err := NewOrderItem(o.ID, productID, productName, productCode, quantity, unitPrice, vatRate)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return item, nil
}

// ReplaceItems swaps the full line set, as an order update does. Only
// allowed while the order is still pending.
func (o *Order) ReplaceItems(items []OrderItem) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change lines of a %s order", o.Status))
	}
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "An order needs at least one line")
	}

	for i := range items {
		items[i].OrderID = o.ID
	}
	o.Items = items
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return nil
}

// SetInvoiceType changes the billing type of a pending order
func (o *Order) SetInvoiceType(invoiceType InvoiceType) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Invoice type can only change while the order is pending")
	}
	if !invoiceType.IsValid() {
		return shared.NewDomainError("INVALID_INVOICE_TYPE", "Unknown invoice type")
	}
	o.InvoiceType = invoiceType
	o.UpdatedAt = time.Now()
	return nil
}

// SetDeliveryCost changes the delivery cost of a pending order
func (o *Order) SetDeliveryCost(cost decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Delivery cost can only change while the order is pending")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_DELIVERY_COST", "Delivery cost cannot be negative")
	}
	o.DeliveryCost = cost
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	return nil
}

// TransitionTo moves the order along the fulfilment state machine
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if target == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATUS", "Use Cancel to cancel an order")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	now := time.Now()
	o.Status = target
	if target == OrderStatusDelivered {
		o.DeliveredAt = &now
	}
	o.UpdatedAt = now

	return nil
}

// Cancel cancels the order. Cancelling an already-cancelled order is a
// no-op so retries stay idempotent.
func (o *Order) Cancel(reason string) error {
	if o.Status == OrderStatusCancelled {
		return nil
	}
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	previous := o.Status
	now := time.Now()
	o.StatusBeforeCancel = &previous
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now

	return nil
}

// Uncancel restores the order to the status it held before cancellation
func (o *Order) Uncancel() error {
	if o.Status != OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Only a cancelled order can be un-cancelled")
	}

	restored := OrderStatusPending
	if o.StatusBeforeCancel != nil {
		restored = *o.StatusBeforeCancel
	}

	o.Status = restored
	o.StatusBeforeCancel = nil
	o.CancelledAt = nil
	o.CancelReason = ""
	o.UpdatedAt = time.Now()

	return nil
}

// recalculateTotal recomputes the order total from lines and delivery cost
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal)
	}
	o.TotalAmount = total.Add(o.DeliveryCost)
}

// IsOnAccount reports whether this order contributes to client dues
func (o *Order) IsOnAccount() bool {
	return o.InvoiceType.AffectsDues()
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsDelivered returns true if the order has been delivered
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// StockMovements returns each line's product and quantity
func (o *Order) StockMovements() map[uuid.UUID]int64 {
	movements := make(map[uuid.UUID]int64, len(o.Items))
	for _, item := range o.Items {
		movements[item.ProductID] += item.Quantity
	}
	return movements
}
