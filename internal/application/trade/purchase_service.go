package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/ledger"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/sequence"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
)

// PurchaseService orchestrates supplier document recording. A purchase
// raises the supplier's debit; a goods receipt additionally puts the
// received quantities into stock. Both effects commit with the document.
type PurchaseService struct {
	purchases trade.PurchaseRepository
	products  catalog.ProductRepository
	suppliers partner.SupplierRepository
	counters  sequence.CounterRepository
	balances  ledger.Ledger
	tx        shared.TxManager
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchases trade.PurchaseRepository,
	products catalog.ProductRepository,
	suppliers partner.SupplierRepository,
	counters sequence.CounterRepository,
	balances ledger.Ledger,
	tx shared.TxManager,
) *PurchaseService {
	return &PurchaseService{
		purchases: purchases,
		products:  products,
		suppliers: suppliers,
		counters:  counters,
		balances:  balances,
		tx:        tx,
	}
}

// Create records a purchase: issues the next purchase number, snapshots
// product lines, raises the supplier's debit and, for goods receipts,
// increments stock.
func (s *PurchaseService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	supplier, err := s.suppliers.FindByIDForTenant(ctx, tenantID, req.SupplierID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	products, err := s.products.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, shared.ErrNotFound
		}
	}

	var purchase *trade.Purchase
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		value, err := s.counters.Next(ctx, tenantID, sequence.SeriesPurchase)
		if err != nil {
			return err
		}
		number := sequence.Format(sequence.SeriesPurchase, value)

		purchase, err = trade.NewPurchase(tenantID, number, supplier.ID, supplier.Name, trade.PurchaseKind(req.Kind))
		if err != nil {
			return err
		}
		purchase.Remark = req.Remark

		for _, line := range req.Items {
			product := byID[line.ProductID]
			price := product.UnitPrice
			if line.UnitPrice != nil {
				price = *line.UnitPrice
			}
			if _, err := purchase.AddItem(product.ID, product.Name, product.Code, line.Quantity, price, product.VATRate); err != nil {
				return err
			}
		}

		if err := s.purchases.Save(ctx, purchase); err != nil {
			return err
		}

		if purchase.Kind.MovesStock() {
			if err := s.products.IncrementStock(ctx, tenantID, toMovements(purchase.StockMovements())); err != nil {
				return err
			}
		}

		entry, err := ledger.NewEntry(tenantID, ledger.AccountSupplier, purchase.SupplierID, ledger.FieldDebit, purchase.TotalAmount, ledger.SourcePurchase, purchase.ID)
		if err != nil {
			return err
		}
		return s.balances.Apply(ctx, entry.WithReference(purchase.PurchaseNumber))
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, tenantID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByIDForTenant(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, tenantID uuid.UUID, filter PurchaseListFilter) (shared.Paginated[PurchaseResponse], error) {
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
	if filter.Kind != "" {
		domainFilter.Filters["kind"] = filter.Kind
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}

	purchases, err := s.purchases.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[PurchaseResponse]{}, err
	}
	total, err := s.purchases.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[PurchaseResponse]{}, err
	}

	items := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		items[i] = ToPurchaseResponse(&purchases[i])
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update rewrites a purchase's lines. The supplier's debit is corrected by
// the signed difference of the totals; for goods receipts the old
// quantities are taken back out of stock under the guard and the new ones
// put in.
func (s *PurchaseService) Update(ctx context.Context, tenantID, purchaseID uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	ids := make([]uuid.UUID, 0, len(req.Items))
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	products, err := s.products.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, shared.ErrNotFound
		}
	}

	var purchase *trade.Purchase
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		purchase, err = s.purchases.FindByIDForTenant(ctx, tenantID, purchaseID)
		if err != nil {
			return err
		}

		oldMovements := purchase.StockMovements()
		oldTotal := purchase.TotalAmount

		newItems := make([]trade.PurchaseItem, 0, len(req.Items))
		for _, line := range req.Items {
			product := byID[line.ProductID]
			price := product.UnitPrice
			if line.UnitPrice != nil {
				price = *line.UnitPrice
			}
			item, err := trade.NewPurchaseItem(purchase.ID, product.ID, product.Name, product.Code, line.Quantity, price, product.VATRate)
			if err != nil {
				return err
			}
			newItems = append(newItems, *item)
		}
		if err := purchase.ReplaceItems(newItems); err != nil {
			return err
		}
		purchase.Remark = req.Remark

		if err := s.purchases.Save(ctx, purchase); err != nil {
			return err
		}

		if purchase.Kind.MovesStock() {
			if err := s.products.DecrementStock(ctx, tenantID, toMovements(oldMovements)); err != nil {
				return err
			}
			if err := s.products.IncrementStock(ctx, tenantID, toMovements(purchase.StockMovements())); err != nil {
				return err
			}
		}

		delta := purchase.TotalAmount.Sub(oldTotal)
		if !delta.IsZero() {
			entry, err := ledger.NewEntry(tenantID, ledger.AccountSupplier, purchase.SupplierID, ledger.FieldDebit, delta, ledger.SourcePurchase, purchase.ID)
			if err != nil {
				return err
			}
			return s.balances.Apply(ctx, entry.WithReference(purchase.PurchaseNumber))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Delete removes a purchase and reverses its effects: the supplier's debit
// is reduced and, for goods receipts, the received quantities are taken
// back out of stock under the stock guard. The delete fails if the goods
// have already been sold on.
func (s *PurchaseService) Delete(ctx context.Context, tenantID, purchaseID uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		purchase, err := s.purchases.FindByIDForTenant(ctx, tenantID, purchaseID)
		if err != nil {
			return err
		}

		if purchase.Kind.MovesStock() {
			if err := s.products.DecrementStock(ctx, tenantID, toMovements(purchase.StockMovements())); err != nil {
				return err
			}
		}

		entry, err := ledger.NewEntry(tenantID, ledger.AccountSupplier, purchase.SupplierID, ledger.FieldDebit, purchase.TotalAmount.Neg(), ledger.SourcePurchase, purchase.ID)
		if err != nil {
			return err
		}
		if err := s.balances.Apply(ctx, entry.WithReference(purchase.PurchaseNumber)); err != nil {
			return err
		}

		return s.purchases.DeleteForTenant(ctx, tenantID, purchaseID)
	})
}
