package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/ledger"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
)

// SupplierService handles supplier counterparty operations
type SupplierService struct {
	suppliers partner.SupplierRepository
	entries   ledger.EntryRepository
	tx        shared.TxManager
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(suppliers partner.SupplierRepository, entries ledger.EntryRepository, tx shared.TxManager) *SupplierService {
	return &SupplierService{suppliers: suppliers, entries: entries, tx: tx}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address
	supplier.Remark = req.Remark

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter PartnerListFilter) (shared.Paginated[SupplierResponse], error) {
	domainFilter := toDomainFilter(filter)

	suppliers, err := s.suppliers.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[SupplierResponse]{}, err
	}
	total, err := s.suppliers.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[SupplierResponse]{}, err
	}

	items := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		items[i] = ToSupplierResponse(&suppliers[i])
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update updates a supplier's contact fields
func (s *SupplierService) Update(ctx context.Context, tenantID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	if err := supplier.UpdateDetails(req.Name, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	supplier.Remark = req.Remark

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier. A supplier with a non-zero net payable cannot
// be deleted.
func (s *SupplierService) Delete(ctx context.Context, tenantID, supplierID uuid.UUID) error {
	supplier, err := s.suppliers.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return err
	}
	if !supplier.Payable().Equal(decimal.Zero) {
		return shared.NewDomainError("OUTSTANDING_BALANCE", "Supplier still has an unsettled payable")
	}
	return s.suppliers.DeleteForTenant(ctx, tenantID, supplierID)
}

// Statement returns the supplier's ledger entries, newest first
func (s *SupplierService) Statement(ctx context.Context, tenantID, supplierID uuid.UUID, filter StatementFilter) (shared.Paginated[StatementEntryResponse], error) {
	if _, err := s.suppliers.FindByIDForTenant(ctx, tenantID, supplierID); err != nil {
		return shared.Paginated[StatementEntryResponse]{}, err
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	entries, err := s.entries.FindByAccount(ctx, tenantID, ledger.AccountSupplier, supplierID, domainFilter)
	if err != nil {
		return shared.Paginated[StatementEntryResponse]{}, err
	}
	total, err := s.entries.CountByAccount(ctx, tenantID, ledger.AccountSupplier, supplierID)
	if err != nil {
		return shared.Paginated[StatementEntryResponse]{}, err
	}

	items := make([]StatementEntryResponse, len(entries))
	for i := range entries {
		items[i] = ToStatementEntryResponse(&entries[i])
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Rebalance resets the supplier's stored debit and credit to the folds of
// its ledger entries.
func (s *SupplierService) Rebalance(ctx context.Context, tenantID, supplierID uuid.UUID) ([]RebalanceResponse, error) {
	var results []RebalanceResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		supplier, err := s.suppliers.FindByIDForTenant(ctx, tenantID, supplierID)
		if err != nil {
			return err
		}
		debit, err := s.entries.SumByAccountField(ctx, tenantID, ledger.AccountSupplier, supplierID, ledger.FieldDebit)
		if err != nil {
			return err
		}
		credit, err := s.entries.SumByAccountField(ctx, tenantID, ledger.AccountSupplier, supplierID, ledger.FieldCredit)
		if err != nil {
			return err
		}

		results = []RebalanceResponse{
			{
				Field:    string(ledger.FieldDebit),
				Stored:   supplier.TotalDebit,
				Computed: debit,
				Drifted:  !supplier.TotalDebit.Equal(debit),
			},
			{
				Field:    string(ledger.FieldCredit),
				Stored:   supplier.TotalCredit,
				Computed: credit,
				Drifted:  !supplier.TotalCredit.Equal(credit),
			},
		}
		if !results[0].Drifted && !results[1].Drifted {
			return nil
		}
		return s.suppliers.SetBalances(ctx, tenantID, supplierID, debit, credit)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
