package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/finance"
	"github.com/warehouse/backend/internal/domain/ledger"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/sequence"
	"github.com/warehouse/backend/internal/domain/shared"
)

// CreditNoteService records client returns. A return note reduces the
// client's dues by its total and puts the returned quantities back into
// stock; both effects commit with the note. Cancellation notes are issued
// by the order cancellation path, never here.
type CreditNoteService struct {
	notes    finance.CreditNoteRepository
	products catalog.ProductRepository
	clients  partner.ClientRepository
	counters sequence.CounterRepository
	balances ledger.Ledger
	tx       shared.TxManager
}

// NewCreditNoteService creates a new CreditNoteService
func NewCreditNoteService(
	notes finance.CreditNoteRepository,
	products catalog.ProductRepository,
	clients partner.ClientRepository,
	counters sequence.CounterRepository,
	balances ledger.Ledger,
	tx shared.TxManager,
) *CreditNoteService {
	return &CreditNoteService{
		notes:    notes,
		products: products,
		clients:  clients,
		counters: counters,
		balances: balances,
		tx:       tx,
	}
}

// CreateReturn records a physical return from a client
func (s *CreditNoteService) CreateReturn(ctx context.Context, tenantID uuid.UUID, req CreateReturnRequest) (*CreditNoteResponse, error) {
	client, err := s.clients.FindByIDForTenant(ctx, tenantID, req.ClientID)
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

	total := totalOf(req.Items)

	var note *finance.CreditNote
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		value, err := s.counters.Next(ctx, tenantID, sequence.SeriesCreditNote)
		if err != nil {
			return err
		}
		number := sequence.Format(sequence.SeriesCreditNote, value)

		note, err = finance.NewCreditNote(tenantID, number, client.ID, client.Name, finance.CreditNoteReturn, total)
		if err != nil {
			return err
		}
		note.Remark = req.Remark

		for _, line := range req.Items {
			product := byID[line.ProductID]
			if _, err := note.AddItem(product.ID, product.Name, line.Quantity, line.UnitPrice); err != nil {
				return err
			}
		}

		if err := s.notes.Save(ctx, note); err != nil {
			return err
		}

		movements := make([]catalog.StockMovement, 0, len(note.Items))
		for productID, quantity := range note.StockMovements() {
			movements = append(movements, catalog.StockMovement{ProductID: productID, Quantity: quantity})
		}
		if err := s.products.IncrementStock(ctx, tenantID, movements); err != nil {
			return err
		}

		entry, err := ledger.NewEntry(tenantID, ledger.AccountClient, note.ClientID, ledger.FieldDues, note.TotalAmount.Neg(), ledger.SourceCreditNote, note.ID)
		if err != nil {
			return err
		}
		return s.balances.Apply(ctx, entry.WithReference(note.NoteNumber))
	})
	if err != nil {
		return nil, err
	}

	response := ToCreditNoteResponse(note)
	return &response, nil
}

// GetByID retrieves a credit note by ID
func (s *CreditNoteService) GetByID(ctx context.Context, tenantID, noteID uuid.UUID) (*CreditNoteResponse, error) {
	note, err := s.notes.FindByIDForTenant(ctx, tenantID, noteID)
	if err != nil {
		return nil, err
	}
	response := ToCreditNoteResponse(note)
	return &response, nil
}

// List retrieves credit notes with filtering and pagination
func (s *CreditNoteService) List(ctx context.Context, tenantID uuid.UUID, filter CreditNoteListFilter) (shared.Paginated[CreditNoteResponse], error) {
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

	var notes []finance.CreditNote
	var err error
	if filter.ClientID != nil {
		notes, err = s.notes.FindByClient(ctx, tenantID, *filter.ClientID, domainFilter)
	} else {
		notes, err = s.notes.FindAllForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return shared.Paginated[CreditNoteResponse]{}, err
	}
	total, err := s.notes.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[CreditNoteResponse]{}, err
	}

	items := make([]CreditNoteResponse, len(notes))
	for i := range notes {
		items[i] = ToCreditNoteResponse(&notes[i])
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Delete removes a return note and reverses its effects: dues go back up
// and the returned quantities are taken back out of stock under the stock
// guard. Cancellation notes cannot be deleted directly; un-cancel the
// order instead.
func (s *CreditNoteService) Delete(ctx context.Context, tenantID, noteID uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		note, err := s.notes.FindByIDForTenant(ctx, tenantID, noteID)
		if err != nil {
			return err
		}
		if note.Type == finance.CreditNoteCancellation {
			return shared.NewDomainError("INVALID_STATE", "A cancellation note is removed by un-cancelling its order")
		}

		movements := make([]catalog.StockMovement, 0, len(note.Items))
		for productID, quantity := range note.StockMovements() {
			movements = append(movements, catalog.StockMovement{ProductID: productID, Quantity: quantity})
		}
		if err := s.products.DecrementStock(ctx, tenantID, movements); err != nil {
			return err
		}

		entry, err := ledger.NewEntry(tenantID, ledger.AccountClient, note.ClientID, ledger.FieldDues, note.TotalAmount, ledger.SourceCreditNote, note.ID)
		if err != nil {
			return err
		}
		if err := s.balances.Apply(ctx, entry.WithReference(note.NoteNumber)); err != nil {
			return err
		}

		return s.notes.DeleteForTenant(ctx, tenantID, noteID)
	})
}

// totalOf sums the requested return lines
func totalOf(items []CreditNoteItemRequest) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromInt(item.Quantity).Mul(item.UnitPrice).Round(2))
	}
	return total
}
