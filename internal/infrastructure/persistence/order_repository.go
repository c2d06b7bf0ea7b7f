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

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForTenant finds an order by ID within a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its document number within a tenant
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*trade.Order, error) {
	var order trade.Order
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIdempotencyKey finds an order by its caller-supplied idempotency key
func (r *GormOrderRepository) FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, key string) (*trade.Order, error) {
	if key == "" {
		return nil, shared.ErrNotFound
	}
	var order trade.Order
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("tenant_id = ? AND idempotency_key = ?", tenantID, key).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(dbFromContext(ctx, r.db).Model(&trade.Order{}).Preload("Items"), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllForTenant finds all orders for a tenant
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(
		dbFromContext(ctx, r.db).Model(&trade.Order{}).Preload("Items").Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByClient finds a client's orders
func (r *GormOrderRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(
		dbFromContext(ctx, r.db).Model(&trade.Order{}).Preload("Items").
			Where("tenant_id = ? AND client_id = ?", tenantID, clientID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order with its lines. Lines removed by a
// ReplaceItems are deleted so the stored line set mirrors the aggregate.
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	run := func(tx *gorm.DB) error {
		keepIDs := make([]uuid.UUID, len(order.Items))
		for i, item := range order.Items {
			keepIDs[i] = item.ID
		}
		if len(keepIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, keepIDs).
				Delete(&trade.OrderItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&trade.OrderItem{}).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
	}

	db := dbFromContext(ctx, r.db)
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return run(db)
	}
	return db.Transaction(run)
}

// Delete deletes an order and its lines
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteWhere(ctx, "id = ?", id)
}

// DeleteForTenant deletes an order within a tenant
func (r *GormOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.deleteWhere(ctx, "tenant_id = ? AND id = ?", tenantID, id)
}

func (r *GormOrderRepository) deleteWhere(ctx context.Context, query string, args ...interface{}) error {
	run := func(tx *gorm.DB) error {
		var order trade.Order
		if err := tx.Select("id").Where(query, args...).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&trade.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&trade.Order{}, "id = ?", order.ID).Error
	}

	db := dbFromContext(ctx, r.db)
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return run(db)
	}
	return db.Transaction(run)
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&trade.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts orders for a tenant
func (r *GormOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFromContext(ctx, r.db).Model(&trade.Order{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts a tenant's orders in one status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status trade.OrderStatus) (int64, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&trade.Order{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MaxIssuedNumber returns the highest numeric suffix among the tenant's
// order numbers. Numbers are "PREFIX-00042", so the suffix after the dash
// is cast and folded with MAX in the database.
func (r *GormOrderRepository) MaxIssuedNumber(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var max int64
	err := dbFromContext(ctx, r.db).Raw(`
		SELECT COALESCE(MAX(CAST(SPLIT_PART(order_number, '-', 2) AS BIGINT)), 0)
		FROM orders WHERE tenant_id = ?`,
		tenantID,
	).Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR client_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "invoice_type":
			query = query.Where("invoice_type = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
