package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// CreditNoteType distinguishes an order cancellation from a physical
// return. Both reduce client dues; only returns put stock back.
type CreditNoteType string

const (
	CreditNoteCancellation CreditNoteType = "cancellation"
	CreditNoteReturn       CreditNoteType = "return"
)

// IsValid checks if the credit note type is known
func (t CreditNoteType) IsValid() bool {
	return t == CreditNoteCancellation || t == CreditNoteReturn
}

// String returns the string representation of the credit note type
func (t CreditNoteType) String() string {
	return string(t)
}

// Restocks reports whether notes of this type return goods to stock
func (t CreditNoteType) Restocks() bool {
	return t == CreditNoteReturn
}

// CreditNoteItem is a returned or cancelled line, snapshotting the product.
type CreditNoteItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreditNoteID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null"`
	ProductName  string    `gorm:"not null"`
	Quantity     int64           `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt    time.Time
}

// NewCreditNoteItem creates a credit note line
func NewCreditNoteItem(creditNoteID, productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal) (*CreditNoteItem, error) {
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

	return &CreditNoteItem{
		ID:           uuid.New(),
		CreditNoteID: creditNoteID,
		ProductID:    productID,
		ProductName:  productName,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		LineTotal:    decimal.NewFromInt(quantity).Mul(unitPrice).Round(2),
		CreatedAt:    time.Now(),
	}, nil
}

// CreditNote reverses part or all of a prior order's effect on client
// dues. An order cancellation emits exactly one linked cancellation note;
// the link is what keeps re-cancellation idempotent.
type CreditNote struct {
	shared.TenantEntity
	NoteNumber  string          `gorm:"not null"`
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientName  string
	Type        CreditNoteType  `gorm:"not null"`
	OrderID     *uuid.UUID      `gorm:"type:uuid;index"` // linked order, set for cancellations
	Items       []CreditNoteItem `gorm:"foreignKey:CreditNoteID"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Remark      string
}

// NewCreditNote creates a credit note
func NewCreditNote(tenantID uuid.UUID, noteNumber string, clientID uuid.UUID, clientName string, noteType CreditNoteType, totalAmount decimal.Decimal) (*CreditNote, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if noteNumber == "" {
		return nil, shared.NewDomainError("INVALID_NOTE_NUMBER", "Credit note number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if !noteType.IsValid() {
		return nil, shared.NewDomainError("INVALID_NOTE_TYPE", "Unknown credit note type")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Credit note amount must be positive")
	}

	return &CreditNote{
		TenantEntity: shared.NewTenantEntity(tenantID),
		NoteNumber:   noteNumber,
		ClientID:     clientID,
		ClientName:   clientName,
		Type:         noteType,
		Items:        make([]CreditNoteItem, 0),
		TotalAmount:  totalAmount,
	}, nil
}

// LinkOrder ties the note to the order it reverses
func (n *CreditNote) LinkOrder(orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	n.OrderID = &orderID
	n.UpdatedAt = time.Now()
	return nil
}

// AddItem appends a returned line
func (n *CreditNote) AddItem(productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal) (*CreditNoteItem, error) {
	item, err := NewCreditNoteItem(n.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	n.Items = append(n.Items, *item)
	n.UpdatedAt = time.Now()
	return item, nil
}

// StockMovements returns each line's product and quantity; empty for
// cancellation notes, which never restock.
func (n *CreditNote) StockMovements() map[uuid.UUID]int64 {
	if !n.Type.Restocks() {
		return nil
	}
	movements := make(map[uuid.UUID]int64, len(n.Items))
	for _, item := range n.Items {
		movements[item.ProductID] += item.Quantity
	}
	return movements
}
