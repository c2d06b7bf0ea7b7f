package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// StockMovement is one product's quantity change inside a document
// lifecycle operation. Quantity is always positive; the repository method
// decides the direction.
type StockMovement struct {
	ProductID uuid.UUID
	Quantity  int64
}

// ProductRepository is the persistence contract for products.
//
// Stock mutation is expressed as guarded atomic operations instead of a
// check-then-act sequence: DecrementStock only succeeds when every
// product still holds the requested quantity at update time, which closes
// the race window between a stock check against a stale read and the
// decrement itself.
type ProductRepository interface {
	shared.TenantRepository[Product]

	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Product, error)
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)

	// DecrementStock atomically subtracts each movement's quantity, guarded
	// by "stock >= quantity". If any product cannot satisfy its movement,
	// nothing is changed and shared.ErrInsufficientStock is returned.
	DecrementStock(ctx context.Context, tenantID uuid.UUID, movements []StockMovement) error

	// IncrementStock atomically adds each movement's quantity. It cannot
	// fail on quantity grounds and is used for goods receipts, returns and
	// reversals.
	IncrementStock(ctx context.Context, tenantID uuid.UUID, movements []StockMovement) error
}
