package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/finance"
	"github.com/warehouse/backend/internal/domain/ledger"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/sequence"
	"github.com/warehouse/backend/internal/domain/shared"
)

// PaymentService records cash movements. A client payment reduces the
// client's dues; a supplier payment raises the supplier's credit, reducing
// the net payable. The payment row and the balance delta commit together.
type PaymentService struct {
	payments  finance.PaymentRepository
	clients   partner.ClientRepository
	suppliers partner.SupplierRepository
	counters  sequence.CounterRepository
	balances  ledger.Ledger
	tx        shared.TxManager
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	payments finance.PaymentRepository,
	clients partner.ClientRepository,
	suppliers partner.SupplierRepository,
	counters sequence.CounterRepository,
	balances ledger.Ledger,
	tx shared.TxManager,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		clients:   clients,
		suppliers: suppliers,
		counters:  counters,
		balances:  balances,
		tx:        tx,
	}
}

// Create records a payment against exactly one counterparty
func (s *PaymentService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error) {
	if (req.ClientID == nil) == (req.SupplierID == nil) {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "A payment needs exactly one of client_id and supplier_id")
	}

	if req.ClientID != nil {
		if _, err := s.clients.FindByIDForTenant(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.suppliers.FindByIDForTenant(ctx, tenantID, *req.SupplierID); err != nil {
			return nil, err
		}
	}

	var payment *finance.Payment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		value, err := s.counters.Next(ctx, tenantID, sequence.SeriesPayment)
		if err != nil {
			return err
		}
		number := sequence.Format(sequence.SeriesPayment, value)
		method := finance.PaymentMethod(req.Method)

		if req.ClientID != nil {
			payment, err = finance.NewClientPayment(tenantID, number, *req.ClientID, req.Amount, method)
		} else {
			payment, err = finance.NewSupplierPayment(tenantID, number, *req.SupplierID, req.Amount, method)
		}
		if err != nil {
			return err
		}
		payment.Remark = req.Remark

		if err := s.payments.Save(ctx, payment); err != nil {
			return err
		}
		return s.applyBalance(ctx, payment, false)
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, tenantID, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.payments.FindByIDForTenant(ctx, tenantID, paymentID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments with filtering and pagination
func (s *PaymentService) List(ctx context.Context, tenantID uuid.UUID, filter PaymentListFilter) (shared.Paginated[PaymentResponse], error) {
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

	var payments []finance.Payment
	var err error
	switch {
	case filter.ClientID != nil:
		payments, err = s.payments.FindByClient(ctx, tenantID, *filter.ClientID, domainFilter)
	case filter.SupplierID != nil:
		payments, err = s.payments.FindBySupplier(ctx, tenantID, *filter.SupplierID, domainFilter)
	default:
		payments, err = s.payments.FindAllForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}
	total, err := s.payments.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}

	items := make([]PaymentResponse, len(payments))
	for i := range payments {
		items[i] = ToPaymentResponse(&payments[i])
	}
	return shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize), nil
}

// Delete removes a payment and reverses its balance effect
func (s *PaymentService) Delete(ctx context.Context, tenantID, paymentID uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		payment, err := s.payments.FindByIDForTenant(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		if err := s.applyBalance(ctx, payment, true); err != nil {
			return err
		}
		return s.payments.DeleteForTenant(ctx, tenantID, paymentID)
	})
}

// applyBalance writes the payment's balance delta: dues down for a client
// payment, credit up for a supplier payment. reverse negates the delta.
func (s *PaymentService) applyBalance(ctx context.Context, payment *finance.Payment, reverse bool) error {
	var entry *ledger.Entry
	var err error
	if payment.IsClientPayment() {
		amount := payment.Amount.Neg()
		if reverse {
			amount = payment.Amount
		}
		entry, err = ledger.NewEntry(payment.TenantID, ledger.AccountClient, *payment.ClientID, ledger.FieldDues, amount, ledger.SourcePayment, payment.ID)
	} else {
		amount := payment.Amount
		if reverse {
			amount = payment.Amount.Neg()
		}
		entry, err = ledger.NewEntry(payment.TenantID, ledger.AccountSupplier, *payment.SupplierID, ledger.FieldCredit, amount, ledger.SourcePayment, payment.ID)
	}
	if err != nil {
		return err
	}
	return s.balances.Apply(ctx, entry.WithReference(payment.PaymentNumber))
}
