package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/finance"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ExpenseService handles expense records. Expenses are plain rows; they
// never touch stock or counterparty balances.
type ExpenseService struct {
	expenses finance.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenses finance.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

// Create records an expense
func (s *ExpenseService) Create(ctx context.Context, tenantID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	var expenseDate time.Time
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}
	expense, err := finance.NewExpense(tenantID, req.Category, req.Description, req.Amount, expenseDate)
	if err != nil {
		return nil, err
	}
	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, tenantID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenses.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses with filtering and pagination
func (s *ExpenseService) List(ctx context.Context, tenantID uuid.UUID, filter ExpenseListFilter) (shared.Paginated[ExpenseResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	expenses, err := s.expenses.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[ExpenseResponse]{}, err
	}
	total, err := s.expenses.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[ExpenseResponse]{}, err
	}

	items := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		items[i] = ToExpenseResponse(&expenses[i])
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update changes an expense's fields
func (s *ExpenseService) Update(ctx context.Context, tenantID, expenseID uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenses.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}
	var expenseDate time.Time
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}
	if err := expense.Update(req.Category, req.Description, req.Amount, expenseDate); err != nil {
		return nil, err
	}
	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error {
	return s.expenses.DeleteForTenant(ctx, tenantID, expenseID)
}
