package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/ledger"
	"github.com/warehouse/backend/internal/domain/partner"
)

// CreateClientRequest represents a request to create a client
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=30"`
	Email   string `json:"email" binding:"omitempty,email,max=254"`
	Address string `json:"address" binding:"max=500"`
	Remark  string `json:"remark" binding:"max=500"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=30"`
	Email   string `json:"email" binding:"omitempty,email,max=254"`
	Address string `json:"address" binding:"max=500"`
	Remark  string `json:"remark" binding:"max=500"`
}

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=30"`
	Email   string `json:"email" binding:"omitempty,email,max=254"`
	Address string `json:"address" binding:"max=500"`
	Remark  string `json:"remark" binding:"max=500"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=30"`
	Email   string `json:"email" binding:"omitempty,email,max=254"`
	Address string `json:"address" binding:"max=500"`
	Remark  string `json:"remark" binding:"max=500"`
}

// PartnerListFilter represents filter options for client and supplier lists
type PartnerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// StatementFilter represents filter options for a counterparty statement
type StatementFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Email     string          `json:"email,omitempty"`
	Address   string          `json:"address,omitempty"`
	TotalDues decimal.Decimal `json:"total_dues"`
	Remark    string          `json:"remark,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToClientResponse converts a domain client to a response
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		TotalDues: c.TotalDues,
		Remark:    c.Remark,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Address     string          `json:"address,omitempty"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Payable     decimal.Decimal `json:"payable"`
	Remark      string          `json:"remark,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier to a response
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		TotalDebit:  s.TotalDebit,
		TotalCredit: s.TotalCredit,
		Payable:     s.Payable(),
		Remark:      s.Remark,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// StatementEntryResponse is one ledger entry in a counterparty statement
type StatementEntryResponse struct {
	ID         uuid.UUID       `json:"id"`
	Field      string          `json:"field"`
	Amount     decimal.Decimal `json:"amount"`
	SourceType string          `json:"source_type"`
	SourceID   uuid.UUID       `json:"source_id"`
	Reference  string          `json:"reference,omitempty"`
	EntryDate  time.Time       `json:"entry_date"`
}

// ToStatementEntryResponse converts a ledger entry to a statement line
func ToStatementEntryResponse(e *ledger.Entry) StatementEntryResponse {
	return StatementEntryResponse{
		ID:         e.ID,
		Field:      string(e.Field),
		Amount:     e.Amount,
		SourceType: string(e.SourceType),
		SourceID:   e.SourceID,
		Reference:  e.Reference,
		EntryDate:  e.EntryDate,
	}
}

// RebalanceResponse reports a guarded rebalance: the stored value before,
// the ledger fold it was reset to, and whether they differed.
type RebalanceResponse struct {
	Field    string          `json:"field"`
	Stored   decimal.Decimal `json:"stored"`
	Computed decimal.Decimal `json:"computed"`
	Drifted  bool            `json:"drifted"`
}
