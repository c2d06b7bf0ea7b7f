package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/finance"
	"github.com/warehouse/backend/internal/domain/ledger"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/sequence"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
)

// OrderService orchestrates the sale document lifecycle. Every mutating
// operation runs inside one store transaction: the order write, its stock
// movements, the ledger delta and any linked credit note commit or roll
// back together.
type OrderService struct {
	orders   trade.OrderRepository
	products catalog.ProductRepository
	clients  partner.ClientRepository
	notes    finance.CreditNoteRepository
	counters sequence.CounterRepository
	balances ledger.Ledger
	tx       shared.TxManager
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders trade.OrderRepository,
	products catalog.ProductRepository,
	clients partner.ClientRepository,
	notes finance.CreditNoteRepository,
	counters sequence.CounterRepository,
	balances ledger.Ledger,
	tx shared.TxManager,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		clients:  clients,
		notes:    notes,
		counters: counters,
		balances: balances,
		tx:       tx,
	}
}

// Create creates an order: issues the next order number, snapshots product
// lines, decrements stock under the stock guard and, for on_account orders,
// raises the client's dues. Supplying the same idempotency key again
// returns the order created by the first attempt instead of a duplicate.
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	if req.IdempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, tenantID, req.IdempotencyKey)
		if err == nil {
			response := ToOrderResponse(existing)
			return &response, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	client, err := s.clients.FindByIDForTenant(ctx, tenantID, req.ClientID)
	if err != nil {
		return nil, err
	}

	productsByID, err := s.loadProducts(ctx, tenantID, orderItemProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	var order *trade.Order
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		value, err := s.counters.Next(ctx, tenantID, sequence.SeriesOrder)
		if err != nil {
			return err
		}
		number := sequence.Format(sequence.SeriesOrder, value)

		order, err = trade.NewOrder(tenantID, number, client.ID, client.Name, trade.InvoiceType(req.InvoiceType), req.DeliveryCost)
		if err != nil {
			return err
		}
		order.SetIdempotencyKey(req.IdempotencyKey)
		order.Remark = req.Remark

		for _, line := range req.Items {
			product := productsByID[line.ProductID]
			price := product.UnitPrice
			if line.UnitPrice != nil {
				price = *line.UnitPrice
			}
			if _, err := order.AddItem(product.ID, product.Name, product.Code, line.Quantity, price, product.VATRate); err != nil {
				return err
			}
		}

		if err := s.orders.Save(ctx, order); err != nil {
			return err
		}
		if err := s.products.DecrementStock(ctx, tenantID, toMovements(order.StockMovements())); err != nil {
			return err
		}

		if order.IsOnAccount() {
			entry, err := ledger.NewEntry(tenantID, ledger.AccountClient, order.ClientID, ledger.FieldDues, order.TotalAmount, ledger.SourceOrder, order.ID)
			if err != nil {
				return err
			}
			return s.balances.Apply(ctx, entry.WithReference(order.OrderNumber))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) (shared.Paginated[OrderResponse], error) {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.InvoiceType != "" {
		domainFilter.Filters["invoice_type"] = filter.InvoiceType
	}
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}

	orders, err := s.orders.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	total, err := s.orders.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}

	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderResponse(&orders[i])
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update rewrites a pending order's lines, billing type and delivery cost.
// Stock and dues are corrected by delta: the old lines are restocked, the
// new lines decremented, and the dues difference applied as one signed
// ledger entry.
func (s *OrderService) Update(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	productsByID, err := s.loadProducts(ctx, tenantID, orderItemProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	var order *trade.Order
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err = s.orders.FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		oldMovements := order.StockMovements()
		oldDues := duesAmount(order)

		newItems := make([]trade.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			product := productsByID[line.ProductID]
			price := product.UnitPrice
			if line.UnitPrice != nil {
				price = *line.UnitPrice
			}
			item, err := trade.NewOrderItem(order.ID, product.ID, product.Name, product.Code, line.Quantity, price, product.VATRate)
			if err != nil {
				return err
			}
			newItems = append(newItems, *item)
		}

		if err := order.ReplaceItems(newItems); err != nil {
			return err
		}
		if err := order.SetInvoiceType(trade.InvoiceType(req.InvoiceType)); err != nil {
			return err
		}
		if err := order.SetDeliveryCost(req.DeliveryCost); err != nil {
			return err
		}
		order.Remark = req.Remark

		if err := s.orders.Save(ctx, order); err != nil {
			return err
		}

		if err := s.products.IncrementStock(ctx, tenantID, toMovements(oldMovements)); err != nil {
			return err
		}
		if err := s.products.DecrementStock(ctx, tenantID, toMovements(order.StockMovements())); err != nil {
			return err
		}

		delta := duesAmount(order).Sub(oldDues)
		if !delta.IsZero() {
			entry, err := ledger.NewEntry(tenantID, ledger.AccountClient, order.ClientID, ledger.FieldDues, delta, ledger.SourceOrder, order.ID)
			if err != nil {
				return err
			}
			return s.balances.Apply(ctx, entry.WithReference(order.OrderNumber))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus moves the order along the fulfilment state machine.
// Cancellation goes through Cancel, not here.
func (s *OrderService) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status trade.OrderStatus) (*OrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.TransitionTo(status); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel cancels an order: restocks its lines, reverses its dues effect
// and issues a linked cancellation credit note documenting the reversal.
// Cancelling an already-cancelled order returns it unchanged; the unique
// note-per-order link keeps a retried cancellation from reversing twice.
func (s *OrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	var order *trade.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if order.IsCancelled() {
			return nil
		}

		if _, err := s.notes.FindByOrder(ctx, tenantID, order.ID); err == nil {
			return shared.NewDomainError("ALREADY_CANCELLED", "Order already has a cancellation credit note")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		if err := order.Cancel(reason); err != nil {
			return err
		}
		if err := s.orders.Save(ctx, order); err != nil {
			return err
		}

		if err := s.products.IncrementStock(ctx, tenantID, toMovements(order.StockMovements())); err != nil {
			return err
		}

		note, err := s.issueCancellationNote(ctx, tenantID, order)
		if err != nil {
			return err
		}

		if order.IsOnAccount() {
			entry, err := ledger.NewEntry(tenantID, ledger.AccountClient, order.ClientID, ledger.FieldDues, order.TotalAmount.Neg(), ledger.SourceCreditNote, note.ID)
			if err != nil {
				return err
			}
			return s.balances.Apply(ctx, entry.WithReference(note.NoteNumber))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// issueCancellationNote mints a credit note linked to the cancelled order,
// snapshotting its lines.
func (s *OrderService) issueCancellationNote(ctx context.Context, tenantID uuid.UUID, order *trade.Order) (*finance.CreditNote, error) {
	value, err := s.counters.Next(ctx, tenantID, sequence.SeriesCreditNote)
	if err != nil {
		return nil, err
	}
	number := sequence.Format(sequence.SeriesCreditNote, value)

	note, err := finance.NewCreditNote(tenantID, number, order.ClientID, order.ClientName, finance.CreditNoteCancellation, order.TotalAmount)
	if err != nil {
		return nil, err
	}
	if err := note.LinkOrder(order.ID); err != nil {
		return nil, err
	}
	for _, item := range order.Items {
		if _, err := note.AddItem(item.ProductID, item.ProductName, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Uncancel restores a cancelled order: re-decrements stock under the stock
// guard, re-applies the dues effect and removes the cancellation note. It
// fails if stock sold in the meantime can no longer cover the order.
func (s *OrderService) Uncancel(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	var order *trade.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := order.Uncancel(); err != nil {
			return err
		}
		if err := s.orders.Save(ctx, order); err != nil {
			return err
		}

		if err := s.products.DecrementStock(ctx, tenantID, toMovements(order.StockMovements())); err != nil {
			return err
		}

		note, err := s.notes.FindByOrder(ctx, tenantID, order.ID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if note != nil {
			if err := s.notes.DeleteForTenant(ctx, tenantID, note.ID); err != nil {
				return err
			}
			if order.IsOnAccount() {
				entry, err := ledger.NewEntry(tenantID, ledger.AccountClient, order.ClientID, ledger.FieldDues, order.TotalAmount, ledger.SourceCreditNote, note.ID)
				if err != nil {
					return err
				}
				return s.balances.Apply(ctx, entry.WithReference(note.NoteNumber))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order. A live order is cancelled first so its stock
// and dues effects are reversed; the cancellation note survives the delete
// as the financial trail.
func (s *OrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindByIDForTenant(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if !order.IsCancelled() {
			if _, err := s.Cancel(ctx, tenantID, orderID, "deleted"); err != nil {
				return err
			}
		}
		return s.orders.DeleteForTenant(ctx, tenantID, orderID)
	})
}

// loadProducts fetches the referenced products and verifies they all exist
func (s *OrderService) loadProducts(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]catalog.Product, error) {
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
	return byID, nil
}

func orderItemProductIDs(items []OrderItemRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

func toMovements(quantities map[uuid.UUID]int64) []catalog.StockMovement {
	movements := make([]catalog.StockMovement, 0, len(quantities))
	for productID, quantity := range quantities {
		movements = append(movements, catalog.StockMovement{ProductID: productID, Quantity: quantity})
	}
	return movements
}

// duesAmount returns the order's contribution to client dues
func duesAmount(o *trade.Order) decimal.Decimal {
	if o.IsOnAccount() {
		return o.TotalAmount
	}
	return decimal.Zero
}

