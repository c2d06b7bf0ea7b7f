package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/ledger"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLedger implements ledger.Ledger using GORM. Apply performs the
// denormalized field increment and the entry append in one transaction,
// which is what keeps the stored balance equal to the fold of its entries
// at all times.
type GormLedger struct {
	db *gorm.DB
}

// NewGormLedger creates a new GormLedger
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// Apply increments the counterparty's balance field by the entry's signed
// amount and appends the entry. When the caller already opened a
// transaction through the TxManager both writes join it; otherwise a
// local transaction wraps them.
func (l *GormLedger) Apply(ctx context.Context, entry *ledger.Entry) error {
	if entry == nil {
		return shared.ErrInvalidInput
	}

	run := func(tx *gorm.DB) error {
		if err := l.incrementField(tx, entry); err != nil {
			return err
		}
		return tx.Create(entry).Error
	}

	db := dbFromContext(ctx, l.db)
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return run(db)
	}
	return db.Transaction(run)
}

func (l *GormLedger) incrementField(tx *gorm.DB, entry *ledger.Entry) error {
	var result *gorm.DB
	switch entry.Field {
	case ledger.FieldDues:
		result = tx.Model(&partner.Client{}).
			Where("tenant_id = ? AND id = ?", entry.TenantID, entry.AccountID).
			Update("total_dues", gorm.Expr("total_dues + ?", entry.Amount))
	case ledger.FieldDebit:
		result = tx.Model(&partner.Supplier{}).
			Where("tenant_id = ? AND id = ?", entry.TenantID, entry.AccountID).
			Update("total_debit", gorm.Expr("total_debit + ?", entry.Amount))
	case ledger.FieldCredit:
		result = tx.Model(&partner.Supplier{}).
			Where("tenant_id = ? AND id = ?", entry.TenantID, entry.AccountID).
			Update("total_credit", gorm.Expr("total_credit + ?", entry.Amount))
	default:
		return shared.NewDomainError("INVALID_FIELD", "Unknown balance field")
	}

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormEntryRepository implements ledger.EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// FindByAccount returns the account's entries, newest first by default
func (r *GormEntryRepository) FindByAccount(ctx context.Context, tenantID uuid.UUID, kind ledger.AccountKind, accountID uuid.UUID, filter shared.Filter) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	query := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND account_kind = ? AND account_id = ?", tenantID, kind, accountID)
	query = applyEntryFilter(query, filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindBySource returns all entries caused by one source document
func (r *GormEntryRepository) FindBySource(ctx context.Context, tenantID uuid.UUID, sourceType ledger.SourceType, sourceID uuid.UUID) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	if err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND source_type = ? AND source_id = ?", tenantID, sourceType, sourceID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByAccount counts an account's entries
func (r *GormEntryRepository) CountByAccount(ctx context.Context, tenantID uuid.UUID, kind ledger.AccountKind, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&ledger.Entry{}).
		Where("tenant_id = ? AND account_kind = ? AND account_id = ?", tenantID, kind, accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByAccountField folds the signed deltas for one balance field in the
// database. COALESCE turns an empty account into a zero sum.
func (r *GormEntryRepository) SumByAccountField(ctx context.Context, tenantID uuid.UUID, kind ledger.AccountKind, accountID uuid.UUID, field ledger.BalanceField) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := dbFromContext(ctx, r.db).
		Model(&ledger.Entry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND account_kind = ? AND account_id = ? AND field = ?", tenantID, kind, accountID, field).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func applyEntryFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("entry_date DESC, created_at DESC")
	}
	return query
}

// Ensure implementations satisfy their contracts
var (
	_ ledger.Ledger          = (*GormLedger)(nil)
	_ ledger.EntryRepository = (*GormEntryRepository)(nil)
)
