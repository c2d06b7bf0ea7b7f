package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/sequence"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCounterRepository implements sequence.CounterRepository using GORM.
//
// Next is a single upsert-increment statement. The unique index on
// (tenant_id, series) makes the insert race safe: concurrent first uses
// collapse into one row, and every increment happens inside the database,
// so no two callers can ever observe the same value.
type GormCounterRepository struct {
	db *gorm.DB
}

// NewGormCounterRepository creates a new GormCounterRepository
func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// Next atomically increments the counter and returns the new value
func (r *GormCounterRepository) Next(ctx context.Context, tenantID uuid.UUID, series sequence.Series) (int64, error) {
	if !series.IsValid() {
		return 0, shared.NewDomainError("INVALID_SERIES", "Unknown document number series")
	}

	var value int64
	err := dbFromContext(ctx, r.db).Raw(`
		INSERT INTO sequence_counters (id, tenant_id, series, value, created_at, updated_at)
		VALUES (?, ?, ?, 1, NOW(), NOW())
		ON CONFLICT (tenant_id, series)
		DO UPDATE SET value = sequence_counters.value + 1, updated_at = NOW()
		RETURNING value`,
		uuid.New(), tenantID, series,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Current returns the counter value without incrementing, 0 if unused
func (r *GormCounterRepository) Current(ctx context.Context, tenantID uuid.UUID, series sequence.Series) (int64, error) {
	var counter sequence.Counter
	err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND series = ?", tenantID, series).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return counter.Value, nil
}

// Resync raises the counter to issuedMax if it is behind. GREATEST keeps
// the counter from ever moving backwards, so issued numbers cannot be
// handed out a second time.
func (r *GormCounterRepository) Resync(ctx context.Context, tenantID uuid.UUID, series sequence.Series, issuedMax int64) (int64, error) {
	if !series.IsValid() {
		return 0, shared.NewDomainError("INVALID_SERIES", "Unknown document number series")
	}
	if issuedMax < 0 {
		return 0, shared.NewDomainError("INVALID_VALUE", "Issued maximum cannot be negative")
	}

	var value int64
	err := dbFromContext(ctx, r.db).Raw(`
		INSERT INTO sequence_counters (id, tenant_id, series, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (tenant_id, series)
		DO UPDATE SET value = GREATEST(sequence_counters.value, EXCLUDED.value), updated_at = NOW()
		RETURNING value`,
		uuid.New(), tenantID, series, issuedMax,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Ensure GormCounterRepository implements CounterRepository
var _ sequence.CounterRepository = (*GormCounterRepository)(nil)
