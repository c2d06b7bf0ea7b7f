package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// AccountKind identifies which counterparty ledger an entry belongs to.
type AccountKind string

const (
	AccountClient   AccountKind = "CLIENT"
	AccountSupplier AccountKind = "SUPPLIER"
)

// IsValid returns true if the account kind is known
func (k AccountKind) IsValid() bool {
	return k == AccountClient || k == AccountSupplier
}

// String returns the string representation of the account kind
func (k AccountKind) String() string {
	return string(k)
}

// BalanceField names the denormalized balance column an entry mutates.
type BalanceField string

const (
	// FieldDues is the client receivable: amount owed to the business.
	FieldDues BalanceField = "TOTAL_DUES"
	// FieldDebit is the supplier side owed by the business.
	FieldDebit BalanceField = "TOTAL_DEBIT"
	// FieldCredit is the amount already paid to a supplier.
	FieldCredit BalanceField = "TOTAL_CREDIT"
)

// IsValid returns true if the balance field is known
func (f BalanceField) IsValid() bool {
	switch f {
	case FieldDues, FieldDebit, FieldCredit:
		return true
	}
	return false
}

// AppliesTo reports whether the field belongs to the given account kind
func (f BalanceField) AppliesTo(kind AccountKind) bool {
	switch f {
	case FieldDues:
		return kind == AccountClient
	case FieldDebit, FieldCredit:
		return kind == AccountSupplier
	}
	return false
}

// SourceType identifies the document that caused a balance change.
type SourceType string

const (
	SourceOrder      SourceType = "ORDER"
	SourcePurchase   SourceType = "PURCHASE"
	SourcePayment    SourceType = "PAYMENT"
	SourceCreditNote SourceType = "CREDIT_NOTE"
	SourceRepair     SourceType = "REPAIR"
)

// IsValid returns true if the source type is known
func (s SourceType) IsValid() bool {
	switch s {
	case SourceOrder, SourcePurchase, SourcePayment, SourceCreditNote, SourceRepair:
		return true
	}
	return false
}

// Entry is an immutable record of one signed balance delta. Entries are
// never updated or deleted; reversals append a new entry with the negated
// amount. The stored balance field on the counterparty must always equal
// the fold of its entries.
type Entry struct {
	shared.TenantEntity
	AccountKind AccountKind     `gorm:"not null;index:idx_entry_account"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_entry_account"`
	Field       BalanceField    `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"` // signed
	SourceType  SourceType      `gorm:"not null"`
	SourceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Reference   string          // document number of the source
	EntryDate   time.Time
}

// TableName returns the database table name for ledger entries
func (Entry) TableName() string {
	return "ledger_entries"
}

// NewEntry creates a ledger entry for a signed balance delta
func NewEntry(
	tenantID uuid.UUID,
	kind AccountKind,
	accountID uuid.UUID,
	field BalanceField,
	amount decimal.Decimal,
	sourceType SourceType,
	sourceID uuid.UUID,
) (*Entry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_KIND", "Unknown account kind")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if !field.IsValid() {
		return nil, shared.NewDomainError("INVALID_FIELD", "Unknown balance field")
	}
	if !field.AppliesTo(kind) {
		return nil, shared.NewDomainError("INVALID_FIELD", "Balance field does not belong to this account kind")
	}
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Delta amount cannot be zero")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Unknown source type")
	}
	if sourceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Source document ID cannot be empty")
	}

	return &Entry{
		TenantEntity: shared.NewTenantEntity(tenantID),
		AccountKind:  kind,
		AccountID:    accountID,
		Field:        field,
		Amount:       amount,
		SourceType:   sourceType,
		SourceID:     sourceID,
		EntryDate:    time.Now(),
	}, nil
}

// WithReference sets the human-readable document number of the source
func (e *Entry) WithReference(reference string) *Entry {
	e.Reference = reference
	return e
}

// Reversal returns a new entry that exactly undoes this one
func (e *Entry) Reversal() (*Entry, error) {
	rev, err := NewEntry(e.TenantID, e.AccountKind, e.AccountID, e.Field, e.Amount.Neg(), e.SourceType, e.SourceID)
	if err != nil {
		return nil, err
	}
	rev.Reference = e.Reference
	return rev, nil
}

// Fold sums the signed amounts of entries for one balance field.
// The result must equal the stored denormalized field.
func Fold(entries []Entry, field BalanceField) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Field == field {
			total = total.Add(e.Amount)
		}
	}
	return total
}
