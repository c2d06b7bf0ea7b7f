package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// PurchaseKind distinguishes a goods receipt, which moves stock, from a
// plain supplier invoice, which only affects the payable balance.
type PurchaseKind string

const (
	PurchaseGoodsReceipt PurchaseKind = "goods_receipt"
	PurchaseInvoice      PurchaseKind = "invoice"
)

// IsValid checks if the purchase kind is known
func (k PurchaseKind) IsValid() bool {
	return k == PurchaseGoodsReceipt || k == PurchaseInvoice
}

// String returns the string representation of the purchase kind
func (k PurchaseKind) String() string {
	return string(k)
}

// MovesStock reports whether documents of this kind change product stock
func (k PurchaseKind) MovesStock() bool {
	return k == PurchaseGoodsReceipt
}

// PurchaseItem is a line in a purchase document, snapshotting the product
// at receipt time.
type PurchaseItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PurchaseID  uuid.UUID `gorm:"type:uuid;not null;index"`
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

// NewPurchaseItem creates a purchase line with VAT-inclusive total
func NewPurchaseItem(purchaseID, productID uuid.UUID, productName, productCode string, quantity int64, unitPrice, vatRate decimal.Decimal) (*PurchaseItem, error) {
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
	vatFactor := decimal.NewFromInt(1).Add(vatRate.Div(decimal.NewFromInt(100)))
	return &PurchaseItem{
		ID:          uuid.New(),
		PurchaseID:  purchaseID,
		ProductID:   productID,
		ProductName: productName,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		VATRate:     vatRate,
		LineTotal:   decimal.NewFromInt(quantity).Mul(unitPrice).Mul(vatFactor).Round(2),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Purchase is a goods-receipt or invoice document from a supplier. Every
// purchase raises the supplier's TotalDebit by its total; goods receipts
// also increment product stock.
type Purchase struct {
	shared.TenantEntity
	PurchaseNumber string       `gorm:"not null"`
	SupplierID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	SupplierName   string
	Kind           PurchaseKind   `gorm:"not null"`
	Items          []PurchaseItem `gorm:"foreignKey:PurchaseID"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Remark         string
}

// NewPurchase creates a new purchase document
func NewPurchase(tenantID uuid.UUID, purchaseNumber string, supplierID uuid.UUID, supplierName string, kind PurchaseKind) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_PURCHASE_KIND", "Unknown purchase kind")
	}

	return &Purchase{
		TenantEntity:   shared.NewTenantEntity(tenantID),
		PurchaseNumber: purchaseNumber,
		SupplierID:     supplierID,
		SupplierName:   supplierName,
		Kind:           kind,
		Items:          make([]PurchaseItem, 0),
		TotalAmount:    decimal.Zero,
	}, nil
}

// AddItem appends a line and recomputes the total
func (p *Purchase) AddItem(productID uuid.UUID, productName, productCode string, quantity int64, unitPrice, vatRate decimal.Decimal) (*PurchaseItem, error) {
	item, err := NewPurchaseItem(p.ID, productID, productName, productCode, quantity, unitPrice, vatRate)
	if err != nil {
		return nil, err
	}

	p.Items = append(p.Items, *item)
	p.recalculateTotal()
	p.UpdatedAt = time.Now()

	return item, nil
}

// ReplaceItems swaps the full line set, as a purchase update does
func (p *Purchase) ReplaceItems(items []PurchaseItem) error {
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "A purchase needs at least one line")
	}

	for i := range items {
		items[i].PurchaseID = p.ID
	}
	p.Items = items
	p.recalculateTotal()
	p.UpdatedAt = time.Now()

	return nil
}

func (p *Purchase) recalculateTotal() {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.LineTotal)
	}
	p.TotalAmount = total
}

// StockMovements returns each line's product and quantity
func (p *Purchase) StockMovements() map[uuid.UUID]int64 {
	movements := make(map[uuid.UUID]int64, len(p.Items))
	for _, item := range p.Items {
		movements[item.ProductID] += item.Quantity
	}
	return movements
}
