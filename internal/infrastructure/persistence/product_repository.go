package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := dbFromContext(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDsForTenant finds multiple products by their IDs
func (r *GormProductRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByCode finds a product by its code within a tenant
func (r *GormProductRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Product, error) {
	var product catalog.Product
	if err := dbFromContext(ctx, r.db).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ExistsByCode checks if a product with the given code exists in the tenant
func (r *GormProductRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&catalog.Product{}).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(dbFromContext(ctx, r.db).Model(&catalog.Product{}), filter)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAllForTenant finds all products for a tenant
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(
		dbFromContext(ctx, r.db).Model(&catalog.Product{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return dbFromContext(ctx, r.db).Save(product).Error
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForTenant deletes a product within a tenant
func (r *GormProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&catalog.Product{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(dbFromContext(ctx, r.db).Model(&catalog.Product{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts products for a tenant
func (r *GormProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbFromContext(ctx, r.db).Model(&catalog.Product{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementStock subtracts each movement's quantity, guarded by
// "stock >= quantity". A movement that cannot be satisfied affects zero
// rows, which aborts the whole batch with ErrInsufficientStock; the
// surrounding transaction rolls back any movements already applied.
func (r *GormProductRepository) DecrementStock(ctx context.Context, tenantID uuid.UUID, movements []catalog.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	run := func(tx *gorm.DB) error {
		for _, m := range movements {
			if m.Quantity <= 0 {
				return shared.NewDomainError("INVALID_QUANTITY", "Stock movement quantity must be positive")
			}
			result := tx.Model(&catalog.Product{}).
				Where("tenant_id = ? AND id = ? AND stock >= ?", tenantID, m.ProductID, m.Quantity).
				Update("stock", gorm.Expr("stock - ?", m.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// Either the product is missing or its stock is short;
				// distinguish, and report how short so the client can see
				// what was requested against what is on hand.
				var available int64
				row := tx.Model(&catalog.Product{}).
					Select("stock").
					Where("tenant_id = ? AND id = ?", tenantID, m.ProductID).
					Row()
				if err := row.Scan(&available); err != nil {
					if errors.Is(err, sql.ErrNoRows) {
						return shared.ErrNotFound
					}
					return err
				}
				return shared.ErrInsufficientStock.WithDetails(map[string]interface{}{
					"product_id": m.ProductID,
					"requested":  m.Quantity,
					"available":  available,
				})
			}
		}
		return nil
	}

	db := dbFromContext(ctx, r.db)
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return run(db)
	}
	return db.Transaction(run)
}

// IncrementStock adds each movement's quantity
func (r *GormProductRepository) IncrementStock(ctx context.Context, tenantID uuid.UUID, movements []catalog.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	run := func(tx *gorm.DB) error {
		for _, m := range movements {
			if m.Quantity <= 0 {
				return shared.NewDomainError("INVALID_QUANTITY", "Stock movement quantity must be positive")
			}
			result := tx.Model(&catalog.Product{}).
				Where("tenant_id = ? AND id = ?", tenantID, m.ProductID).
				Update("stock", gorm.Expr("stock + ?", m.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
		}
		return nil
	}

	db := dbFromContext(ctx, r.db)
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return run(db)
	}
	return db.Transaction(run)
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ? OR barcode ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "code":
			query = query.Where("code = ?", value)
		case "in_stock":
			if value == true {
				query = query.Where("stock > 0")
			} else {
				query = query.Where("stock = 0")
			}
		}
	}

	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
