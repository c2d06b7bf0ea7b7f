package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/finance"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCreditNoteRepository implements finance.CreditNoteRepository using GORM
type GormCreditNoteRepository struct {
	db *gorm.DB
}

// NewGormCreditNoteRepository creates a new GormCreditNoteRepository
func NewGormCreditNoteRepository(db *gorm.DB) *GormCreditNoteRepository {
	return &GormCreditNoteRepository{db: db}
}

// FindByID finds a credit note by its ID
func (r *GormCreditNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CreditNote, error) {
	var note finance.CreditNote
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindByIDForTenant finds a credit note by ID within a tenant
func (r *GormCreditNoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.CreditNote, error) {
	var note finance.CreditNote
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindByOrder returns the note linked to an order, if any
func (r *GormCreditNoteRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*finance.CreditNote, error) {
	var note finance.CreditNote
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindByClient finds a client's credit notes
func (r *GormCreditNoteRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]finance.CreditNote, error) {
	var notes []finance.CreditNote
	query := applyFinanceFilter(
		dbFromContext(ctx, r.db).Model(&finance.CreditNote{}).Preload("Items").
			Where("tenant_id = ? AND client_id = ?", tenantID, clientID),
		filter, "note_number",
	)
	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// FindAll finds all credit notes matching the filter
func (r *GormCreditNoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.CreditNote, error) {
	var notes []finance.CreditNote
	query := applyFinanceFilter(
		dbFromContext(ctx, r.db).Model(&finance.CreditNote{}).Preload("Items"),
		filter, "note_number",
	)
	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// FindAllForTenant finds all credit notes for a tenant
func (r *GormCreditNoteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.CreditNote, error) {
	var notes []finance.CreditNote
	query := applyFinanceFilter(
		dbFromContext(ctx, r.db).Model(&finance.CreditNote{}).Preload("Items").
			Where("tenant_id = ?", tenantID),
		filter, "note_number",
	)
	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Save creates or updates a credit note with its lines
func (r *GormCreditNoteRepository) Save(ctx context.Context, note *finance.CreditNote) error {
	return dbFromContext(ctx, r.db).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(note).Error
}

// Delete deletes a credit note and its lines
func (r *GormCreditNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteWhere(ctx, "id = ?", id)
}

// DeleteForTenant deletes a credit note within a tenant
func (r *GormCreditNoteRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.deleteWhere(ctx, "tenant_id = ? AND id = ?", tenantID, id)
}

func (r *GormCreditNoteRepository) deleteWhere(ctx context.Context, query string, args ...interface{}) error {
	run := func(tx *gorm.DB) error {
		var note finance.CreditNote
		if err := tx.Select("id").Where(query, args...).First(&note).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if err := tx.Where("credit_note_id = ?", note.ID).Delete(&finance.CreditNoteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&finance.CreditNote{}, "id = ?", note.ID).Error
	}

	db := dbFromContext(ctx, r.db)
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return run(db)
	}
	return db.Transaction(run)
}

// Count counts credit notes matching the filter
func (r *GormCreditNoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).Model(&finance.CreditNote{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts credit notes for a tenant
func (r *GormCreditNoteRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).Model(&finance.CreditNote{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MaxIssuedNumber returns the highest numeric suffix among the tenant's
// credit note numbers
func (r *GormCreditNoteRepository) MaxIssuedNumber(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var max int64
	err := dbFromContext(ctx, r.db).Raw(`
		SELECT COALESCE(MAX(CAST(SPLIT_PART(note_number, '-', 2) AS BIGINT)), 0)
		FROM credit_notes WHERE tenant_id = ?`,
		tenantID,
	).Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// Ensure GormCreditNoteRepository implements CreditNoteRepository
var _ finance.CreditNoteRepository = (*GormCreditNoteRepository)(nil)
