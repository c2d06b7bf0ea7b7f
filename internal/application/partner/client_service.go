package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/ledger"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ClientService handles client counterparty operations. TotalDues is read
// here but never written directly; documents mutate it through the balance
// ledger, and Rebalance is the only repair path.
type ClientService struct {
	clients partner.ClientRepository
	entries ledger.EntryRepository
	tx      shared.TxManager
}

// NewClientService creates a new ClientService
func NewClientService(clients partner.ClientRepository, entries ledger.EntryRepository, tx shared.TxManager) *ClientService {
	return &ClientService{clients: clients, entries: entries, tx: tx}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, tenantID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	client.Phone = req.Phone
	client.Email = req.Email
	client.Address = req.Address
	client.Remark = req.Remark

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, tenantID uuid.UUID, filter PartnerListFilter) (shared.Paginated[ClientResponse], error) {
	domainFilter := toDomainFilter(filter)

	clients, err := s.clients.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[ClientResponse]{}, err
	}
	total, err := s.clients.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[ClientResponse]{}, err
	}

	items := make([]ClientResponse, len(clients))
	for i := range clients {
		items[i] = ToClientResponse(&clients[i])
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update updates a client's contact fields
func (s *ClientService) Update(ctx context.Context, tenantID, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clients.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	if err := client.UpdateDetails(req.Name, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	client.Remark = req.Remark

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client. A client with outstanding dues cannot be
// deleted; settle or write off the balance first.
func (s *ClientService) Delete(ctx context.Context, tenantID, clientID uuid.UUID) error {
	client, err := s.clients.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return err
	}
	if client.HasOutstandingDues() {
		return shared.NewDomainError("OUTSTANDING_BALANCE", "Client still has outstanding dues")
	}
	return s.clients.DeleteForTenant(ctx, tenantID, clientID)
}

// Statement returns the client's ledger entries, newest first
func (s *ClientService) Statement(ctx context.Context, tenantID, clientID uuid.UUID, filter StatementFilter) (shared.Paginated[StatementEntryResponse], error) {
	if _, err := s.clients.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return shared.Paginated[StatementEntryResponse]{}, err
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	entries, err := s.entries.FindByAccount(ctx, tenantID, ledger.AccountClient, clientID, domainFilter)
	if err != nil {
		return shared.Paginated[StatementEntryResponse]{}, err
	}
	total, err := s.entries.CountByAccount(ctx, tenantID, ledger.AccountClient, clientID)
	if err != nil {
		return shared.Paginated[StatementEntryResponse]{}, err
	}

	items := make([]StatementEntryResponse, len(entries))
	for i := range entries {
		items[i] = ToStatementEntryResponse(&entries[i])
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Rebalance resets the client's stored dues to the fold of its ledger
// entries. The fold is the source of truth; the stored field is only a
// denormalization that can drift after manual data surgery.
func (s *ClientService) Rebalance(ctx context.Context, tenantID, clientID uuid.UUID) (*RebalanceResponse, error) {
	var result *RebalanceResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		client, err := s.clients.FindByIDForTenant(ctx, tenantID, clientID)
		if err != nil {
			return err
		}
		computed, err := s.entries.SumByAccountField(ctx, tenantID, ledger.AccountClient, clientID, ledger.FieldDues)
		if err != nil {
			return err
		}

		result = &RebalanceResponse{
			Field:    string(ledger.FieldDues),
			Stored:   client.TotalDues,
			Computed: computed,
			Drifted:  !client.TotalDues.Equal(computed),
		}
		if !result.Drifted {
			return nil
		}
		return s.clients.SetTotalDues(ctx, tenantID, clientID, computed)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// toDomainFilter maps the list filter onto the shared repository filter
func toDomainFilter(filter PartnerListFilter) shared.Filter {
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
	return domainFilter
}
