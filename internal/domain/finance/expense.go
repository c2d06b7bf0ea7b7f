package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Expense is a plain back-office cost record. Expenses never touch
// counterparty balances or stock.
type Expense struct {
	shared.TenantEntity
	Category    string          `gorm:"not null"`
	Description string
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	ExpenseDate time.Time
}

// NewExpense creates an expense record
func NewExpense(tenantID uuid.UUID, category, description string, amount decimal.Decimal, expenseDate time.Time) (*Expense, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	return &Expense{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Category:     category,
		Description:  description,
		Amount:       amount,
		ExpenseDate:  expenseDate,
	}, nil
}

// Update changes the expense's fields
func (e *Expense) Update(category, description string, amount decimal.Decimal, expenseDate time.Time) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	e.Category = category
	e.Description = description
	e.Amount = amount
	if !expenseDate.IsZero() {
		e.ExpenseDate = expenseDate
	}
	e.UpdatedAt = time.Now()

	return nil
}
