package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	Code      string          `json:"code" binding:"required,min=1,max=50"`
	Unit      string          `json:"unit" binding:"max=20"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VATRate   decimal.Decimal `json:"vat_rate"`
	Barcode   string          `json:"barcode" binding:"max=64"`
	Remark    string          `json:"remark" binding:"max=500"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	Code      string          `json:"code" binding:"required,min=1,max=50"`
	Unit      string          `json:"unit" binding:"max=20"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VATRate   decimal.Decimal `json:"vat_rate"`
	Barcode   string          `json:"barcode" binding:"max=64"`
	Remark    string          `json:"remark" binding:"max=500"`
}

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	Quantity int64 `json:"quantity" binding:"required"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	InStock  *bool  `form:"in_stock"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	PriceWithVAT decimal.Decimal `json:"price_with_vat"`
	Stock        int64           `json:"stock"`
	Barcode      string          `json:"barcode"`
	Remark       string          `json:"remark"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Code:         p.Code,
		Unit:         p.Unit,
		UnitPrice:    p.UnitPrice,
		VATRate:      p.VATRate,
		PriceWithVAT: p.PriceWithVAT(),
		Stock:        p.Stock,
		Barcode:      p.Barcode,
		Remark:       p.Remark,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
