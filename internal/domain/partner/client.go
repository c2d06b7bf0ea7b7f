package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Client is a customer counterparty. TotalDues is the running receivable:
// the amount the client owes the business. It is denormalized for cheap
// reads but only ever mutated through the balance ledger, which appends
// the matching signed entry in the same transaction, so it always equals
// the fold of the client's ledger entries.
type Client struct {
	shared.TenantEntity
	Name      string          `gorm:"not null"`
	Phone     string
	Email     string
	Address   string
	TotalDues decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Remark    string
}

// NewClient creates a new client with zero dues
func NewClient(tenantID uuid.UUID, name string) (*Client, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}

	return &Client{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		TotalDues:    decimal.Zero,
	}, nil
}

// UpdateDetails updates the client's contact fields
func (c *Client) UpdateDetails(name, phone, email, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}

	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()

	return nil
}

// HasOutstandingDues reports whether the client still owes money
func (c *Client) HasOutstandingDues() bool {
	return c.TotalDues.GreaterThan(decimal.Zero)
}
