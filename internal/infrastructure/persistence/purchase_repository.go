package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByIDForTenant finds a purchase by ID within a tenant
func (r *GormPurchaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByPurchaseNumber finds a purchase by its document number within a tenant
func (r *GormPurchaseRepository) FindByPurchaseNumber(ctx context.Context, tenantID uuid.UUID, purchaseNumber string) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND purchase_number = ?", tenantID, purchaseNumber).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds all purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.applyFilter(dbFromContext(ctx, r.db).Model(&trade.Purchase{}).Preload("Items"), filter)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindAllForTenant finds all purchases for a tenant
func (r *GormPurchaseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.applyFilter(
		dbFromContext(ctx, r.db).Model(&trade.Purchase{}).Preload("Items").Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindBySupplier finds a supplier's purchases
func (r *GormPurchaseRepository) FindBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.applyFilter(
		dbFromContext(ctx, r.db).Model(&trade.Purchase{}).Preload("Items").
			Where("tenant_id = ? AND supplier_id = ?", tenantID, supplierID),
		filter,
	)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Save creates or updates a purchase with its lines
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	run := func(tx *gorm.DB) error {
		keepIDs := make([]uuid.UUID, len(purchase.Items))
		for i, item := range purchase.Items {
			keepIDs[i] = item.ID
		}
		if len(keepIDs) > 0 {
			if err := tx.Where("purchase_id = ? AND id NOT IN ?", purchase.ID, keepIDs).
				Delete(&trade.PurchaseItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("purchase_id = ?", purchase.ID).
				Delete(&trade.PurchaseItem{}).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(purchase).Error
	}

	db := dbFromContext(ctx, r.db)
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return run(db)
	}
	return db.Transaction(run)
}

// Delete deletes a purchase and its lines
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteWhere(ctx, "id = ?", id)
}

// DeleteForTenant deletes a purchase within a tenant
func (r *GormPurchaseRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.deleteWhere(ctx, "tenant_id = ? AND id = ?", tenantID, id)
}

func (r *GormPurchaseRepository) deleteWhere(ctx context.Context, query string, args ...interface{}) error {
	run := func(tx *gorm.DB) error {
		var purchase trade.Purchase
		if err := tx.Select("id").Where(query, args...).First(&purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if err := tx.Where("purchase_id = ?", purchase.ID).Delete(&trade.PurchaseItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&trade.Purchase{}, "id = ?", purchase.ID).Error
	}

	db := dbFromContext(ctx, r.db)
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return run(db)
	}
	return db.Transaction(run)
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&trade.Purchase{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts purchases for a tenant
func (r *GormPurchaseRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFromContext(ctx, r.db).Model(&trade.Purchase{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MaxIssuedNumber returns the highest numeric suffix among the tenant's
// purchase numbers
func (r *GormPurchaseRepository) MaxIssuedNumber(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var max int64
	err := dbFromContext(ctx, r.db).Raw(`
		SELECT COALESCE(MAX(CAST(SPLIT_PART(purchase_number, '-', 2) AS BIGINT)), 0)
		FROM purchases WHERE tenant_id = ?`,
		tenantID,
	).Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// applyFilter applies filter options to the query
func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

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
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("purchase_number ILIKE ? OR supplier_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}

	return query
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
