package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Ledger is the single mutation path for counterparty balances. Apply
// atomically increments the named denormalized balance field and appends
// the immutable entry in the same store transaction, so the stored balance
// and the entry fold cannot diverge.
type Ledger interface {
	Apply(ctx context.Context, entry *Entry) error
}

// EntryRepository gives read access to the append-only entry log.
type EntryRepository interface {
	FindByAccount(ctx context.Context, tenantID uuid.UUID, kind AccountKind, accountID uuid.UUID, filter shared.Filter) ([]Entry, error)
	FindBySource(ctx context.Context, tenantID uuid.UUID, sourceType SourceType, sourceID uuid.UUID) ([]Entry, error)
	CountByAccount(ctx context.Context, tenantID uuid.UUID, kind AccountKind, accountID uuid.UUID) (int64, error)

	// SumByAccountField folds the signed deltas for one balance field in
	// the store. Used by the reconciliation report to verify the stored
	// balance field.
	SumByAccountField(ctx context.Context, tenantID uuid.UUID, kind AccountKind, accountID uuid.UUID, field BalanceField) (decimal.Decimal, error)
}
