package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ProductService handles product business operations
type ProductService struct {
	products catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.products.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this code already exists")
	}

	product, err := catalog.NewProduct(tenantID, req.Name, req.Code, req.UnitPrice, req.VATRate)
	if err != nil {
		return nil, err
	}
	product.Unit = req.Unit
	product.Barcode = req.Barcode
	product.Remark = req.Remark

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.InStock != nil {
		domainFilter.Filters["in_stock"] = *filter.InStock
	}

	products, err := s.products.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	total, err := s.products.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update updates a product's details
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Code != product.Code {
		exists, err := s.products.ExistsByCode(ctx, tenantID, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this code already exists")
		}
	}

	if err := product.UpdateDetails(req.Name, req.Code, req.Unit, req.UnitPrice, req.VATRate); err != nil {
		return nil, err
	}
	product.Barcode = req.Barcode
	product.Remark = req.Remark

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock applies a manual stock correction. Positive quantities add
// stock; negative quantities remove it through the same guarded decrement
// documents use, so a correction can never drive stock negative.
func (s *ProductService) AdjustStock(ctx context.Context, tenantID, productID uuid.UUID, quantity int64) (*ProductResponse, error) {
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be zero")
	}

	movement := []catalog.StockMovement{{ProductID: productID, Quantity: quantity}}
	if quantity < 0 {
		movement[0].Quantity = -quantity
		if err := s.products.DecrementStock(ctx, tenantID, movement); err != nil {
			return nil, err
		}
	} else {
		if err := s.products.IncrementStock(ctx, tenantID, movement); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, tenantID, productID)
}

// Delete deletes a product. Order and purchase lines snapshot the product,
// so history stays intact.
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	return s.products.DeleteForTenant(ctx, tenantID, productID)
}
