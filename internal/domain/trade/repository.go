package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// OrderRepository is the persistence contract for orders.
type OrderRepository interface {
	shared.TenantRepository[Order]

	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Order, error)
	FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, key string) (*Order, error)
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status OrderStatus) (int64, error)

	// MaxIssuedNumber returns the highest numeric suffix ever issued in
	// the tenant's order number series, for counter resync.
	MaxIssuedNumber(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// PurchaseRepository is the persistence contract for purchases.
type PurchaseRepository interface {
	shared.TenantRepository[Purchase]

	FindByPurchaseNumber(ctx context.Context, tenantID uuid.UUID, purchaseNumber string) (*Purchase, error)
	FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]Purchase, error)

	// MaxIssuedNumber returns the highest numeric suffix ever issued in
	// the tenant's purchase number series, for counter resync.
	MaxIssuedNumber(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
