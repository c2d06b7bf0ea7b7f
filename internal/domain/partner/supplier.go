package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Supplier is a vendor counterparty. TotalDebit accumulates what the
// business owes from purchases; TotalCredit accumulates what it has paid.
// Net payable is debit minus credit. Like client dues, both fields are
// denormalized and only mutated through the balance ledger.
type Supplier struct {
	shared.TenantEntity
	Name        string          `gorm:"not null"`
	Phone       string
	Email       string
	Address     string
	TotalDebit  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TotalCredit decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Remark      string
}

// NewSupplier creates a new supplier with zero balances
func NewSupplier(tenantID uuid.UUID, name string) (*Supplier, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}

	return &Supplier{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
	}, nil
}

// UpdateDetails updates the supplier's contact fields
func (s *Supplier) UpdateDetails(name, phone, email, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}

	s.Name = name
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.UpdatedAt = time.Now()

	return nil
}

// Payable returns the net amount owed to the supplier (debit - credit)
func (s *Supplier) Payable() decimal.Decimal {
	return s.TotalDebit.Sub(s.TotalCredit)
}
