package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/ledger"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
)

// BalanceCheck compares one stored balance field against the fold of its
// ledger entries.
type BalanceCheck struct {
	AccountKind string          `json:"account_kind"`
	AccountID   uuid.UUID       `json:"account_id"`
	AccountName string          `json:"account_name"`
	Field       string          `json:"field"`
	Stored      decimal.Decimal `json:"stored"`
	Computed    decimal.Decimal `json:"computed"`
	Consistent  bool            `json:"consistent"`
}

// ReconciliationResponse is the tenant-wide balance consistency report
type ReconciliationResponse struct {
	Checks       []BalanceCheck `json:"checks"`
	Inconsistent int            `json:"inconsistent"`
}

// DashboardResponse is the tenant-wide operational summary
type DashboardResponse struct {
	PendingOrders    int64           `json:"pending_orders"`
	InProgressOrders int64           `json:"in_progress_orders"`
	DispatchedOrders int64           `json:"dispatched_orders"`
	DeliveredOrders  int64           `json:"delivered_orders"`
	CancelledOrders  int64           `json:"cancelled_orders"`
	TotalReceivable  decimal.Decimal `json:"total_receivable"`
	TotalPayable     decimal.Decimal `json:"total_payable"`
}

// ReportService builds read-only reports across contexts. The
// reconciliation report is the operational proof of the balance invariant:
// every stored counterparty balance must equal the fold of its ledger
// entries.
type ReportService struct {
	clients   partner.ClientRepository
	suppliers partner.SupplierRepository
	entries   ledger.EntryRepository
	orders    trade.OrderRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	clients partner.ClientRepository,
	suppliers partner.SupplierRepository,
	entries ledger.EntryRepository,
	orders trade.OrderRepository,
) *ReportService {
	return &ReportService{
		clients:   clients,
		suppliers: suppliers,
		entries:   entries,
		orders:    orders,
	}
}

// Reconciliation verifies every counterparty's stored balances against the
// ledger folds
func (s *ReportService) Reconciliation(ctx context.Context, tenantID uuid.UUID) (*ReconciliationResponse, error) {
	all := shared.Filter{Page: 0, PageSize: 0, Filters: map[string]interface{}{}}

	var checks []BalanceCheck

	clients, err := s.clients.FindAllForTenant(ctx, tenantID, all)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		client := &clients[i]
		computed, err := s.entries.SumByAccountField(ctx, tenantID, ledger.AccountClient, client.ID, ledger.FieldDues)
		if err != nil {
			return nil, err
		}
		checks = append(checks, BalanceCheck{
			AccountKind: string(ledger.AccountClient),
			AccountID:   client.ID,
			AccountName: client.Name,
			Field:       string(ledger.FieldDues),
			Stored:      client.TotalDues,
			Computed:    computed,
			Consistent:  client.TotalDues.Equal(computed),
		})
	}

	suppliers, err := s.suppliers.FindAllForTenant(ctx, tenantID, all)
	if err != nil {
		return nil, err
	}
	for i := range suppliers {
		supplier := &suppliers[i]
		debit, err := s.entries.SumByAccountField(ctx, tenantID, ledger.AccountSupplier, supplier.ID, ledger.FieldDebit)
		if err != nil {
			return nil, err
		}
		credit, err := s.entries.SumByAccountField(ctx, tenantID, ledger.AccountSupplier, supplier.ID, ledger.FieldCredit)
		if err != nil {
			return nil, err
		}
		checks = append(checks,
			BalanceCheck{
				AccountKind: string(ledger.AccountSupplier),
				AccountID:   supplier.ID,
				AccountName: supplier.Name,
				Field:       string(ledger.FieldDebit),
				Stored:      supplier.TotalDebit,
				Computed:    debit,
				Consistent:  supplier.TotalDebit.Equal(debit),
			},
			BalanceCheck{
				AccountKind: string(ledger.AccountSupplier),
				AccountID:   supplier.ID,
				AccountName: supplier.Name,
				Field:       string(ledger.FieldCredit),
				Stored:      supplier.TotalCredit,
				Computed:    credit,
				Consistent:  supplier.TotalCredit.Equal(credit),
			},
		)
	}

	inconsistent := 0
	for _, check := range checks {
		if !check.Consistent {
			inconsistent++
		}
	}
	return &ReconciliationResponse{Checks: checks, Inconsistent: inconsistent}, nil
}

// Dashboard summarizes order pipeline and outstanding balances
func (s *ReportService) Dashboard(ctx context.Context, tenantID uuid.UUID) (*DashboardResponse, error) {
	resp := &DashboardResponse{
		TotalReceivable: decimal.Zero,
		TotalPayable:    decimal.Zero,
	}

	counts := []struct {
		status trade.OrderStatus
		target *int64
	}{
		{trade.OrderStatusPending, &resp.PendingOrders},
		{trade.OrderStatusInProgress, &resp.InProgressOrders},
		{trade.OrderStatusDispatched, &resp.DispatchedOrders},
		{trade.OrderStatusDelivered, &resp.DeliveredOrders},
		{trade.OrderStatusCancelled, &resp.CancelledOrders},
	}
	for _, c := range counts {
		count, err := s.orders.CountByStatus(ctx, tenantID, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = count
	}

	all := shared.Filter{Page: 0, PageSize: 0, Filters: map[string]interface{}{}}
	clients, err := s.clients.FindAllForTenant(ctx, tenantID, all)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		resp.TotalReceivable = resp.TotalReceivable.Add(clients[i].TotalDues)
	}
	suppliers, err := s.suppliers.FindAllForTenant(ctx, tenantID, all)
	if err != nil {
		return nil, err
	}
	for i := range suppliers {
		resp.TotalPayable = resp.TotalPayable.Add(suppliers[i].Payable())
	}

	return resp, nil
}
