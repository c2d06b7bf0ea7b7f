package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// PaymentRepository is the persistence contract for payments.
type PaymentRepository interface {
	shared.TenantRepository[Payment]

	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]Payment, error)
	FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]Payment, error)

	// MaxIssuedNumber returns the highest numeric suffix ever issued in
	// the tenant's payment number series, for counter resync.
	MaxIssuedNumber(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// CreditNoteRepository is the persistence contract for credit notes.
type CreditNoteRepository interface {
	shared.TenantRepository[CreditNote]

	// FindByOrder returns the note linked to an order, if any. The order
	// cancellation path uses it to stay idempotent: an existing linked
	// note means the cancellation already ran.
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*CreditNote, error)
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]CreditNote, error)

	// MaxIssuedNumber returns the highest numeric suffix ever issued in
	// the tenant's credit note number series, for counter resync.
	MaxIssuedNumber(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// ExpenseRepository is the persistence contract for expenses.
type ExpenseRepository interface {
	shared.TenantRepository[Expense]
}
