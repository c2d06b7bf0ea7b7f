package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Product is a catalog item. Stock is an integer quantity that must never
// go negative; it is only ever mutated through the repository's guarded
// atomic operations, never by read-modify-write.
type Product struct {
	shared.TenantEntity
	Name      string          `gorm:"not null"`
	Code      string          `gorm:"not null"` // SKU
	Unit      string
	UnitPrice decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	VATRate   decimal.Decimal `gorm:"type:decimal(5,2);not null"` // percent, e.g. 20.00
	Stock     int64           `gorm:"not null;default:0"`
	Barcode   string
	Remark    string
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, name, code string, unitPrice, vatRate decimal.Decimal) (*Product, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if vatRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", "VAT rate cannot be negative")
	}

	return &Product{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Code:         code,
		UnitPrice:    unitPrice,
		VATRate:      vatRate,
		Stock:        0,
	}, nil
}

// UpdateDetails updates the product's descriptive fields
func (p *Product) UpdateDetails(name, code, unit string, unitPrice, vatRate decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if vatRate.IsNegative() {
		return shared.NewDomainError("INVALID_VAT_RATE", "VAT rate cannot be negative")
	}

	p.Name = name
	p.Code = code
	p.Unit = unit
	p.UnitPrice = unitPrice
	p.VATRate = vatRate
	p.UpdatedAt = time.Now()

	return nil
}

// HasStock reports whether the product can satisfy the requested quantity
func (p *Product) HasStock(quantity int64) bool {
	return p.Stock >= quantity
}

// PriceWithVAT returns the unit price with VAT applied
func (p *Product) PriceWithVAT() decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(p.VATRate.Div(decimal.NewFromInt(100)))
	return p.UnitPrice.Mul(factor).Round(2)
}
