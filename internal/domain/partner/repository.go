package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ClientRepository is the persistence contract for clients. The balance
// ledger, not this repository, is the mutation path for TotalDues;
// SetTotalDues exists only for the guarded rebalance repair, which
// overwrites the stored field from the ledger fold.
type ClientRepository interface {
	shared.TenantRepository[Client]

	SetTotalDues(ctx context.Context, tenantID, id uuid.UUID, dues decimal.Decimal) error
}

// SupplierRepository is the persistence contract for suppliers.
type SupplierRepository interface {
	shared.TenantRepository[Supplier]

	SetBalances(ctx context.Context, tenantID, id uuid.UUID, debit, credit decimal.Decimal) error
}
