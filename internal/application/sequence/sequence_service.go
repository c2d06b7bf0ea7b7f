package sequence

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/finance"
	"github.com/warehouse/backend/internal/domain/sequence"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
)

// SeriesStatus reports one document number series: the counter value and
// the highest suffix actually found on issued documents. A counter behind
// its issued max means the counter was tampered with or restored from an
// old backup and needs a resync.
type SeriesStatus struct {
	Series    string `json:"series"`
	Counter   int64  `json:"counter"`
	IssuedMax int64  `json:"issued_max"`
	Drifted   bool   `json:"drifted"`
}

// ResyncResponse reports a counter resync
type ResyncResponse struct {
	Series  string `json:"series"`
	Counter int64  `json:"counter"`
}

// SequenceService is the administrative surface of the document number
// counters. Issuing numbers happens inside the document services; this
// service only inspects and repairs.
type SequenceService struct {
	counters  sequence.CounterRepository
	orders    trade.OrderRepository
	purchases trade.PurchaseRepository
	payments  finance.PaymentRepository
	notes     finance.CreditNoteRepository
}

// NewSequenceService creates a new SequenceService
func NewSequenceService(
	counters sequence.CounterRepository,
	orders trade.OrderRepository,
	purchases trade.PurchaseRepository,
	payments finance.PaymentRepository,
	notes finance.CreditNoteRepository,
) *SequenceService {
	return &SequenceService{
		counters:  counters,
		orders:    orders,
		purchases: purchases,
		payments:  payments,
		notes:     notes,
	}
}

// Status reports every series' counter against its issued documents
func (s *SequenceService) Status(ctx context.Context, tenantID uuid.UUID) ([]SeriesStatus, error) {
	series := []sequence.Series{
		sequence.SeriesOrder,
		sequence.SeriesPurchase,
		sequence.SeriesPayment,
		sequence.SeriesCreditNote,
	}

	statuses := make([]SeriesStatus, 0, len(series))
	for _, sr := range series {
		counter, err := s.counters.Current(ctx, tenantID, sr)
		if err != nil {
			return nil, err
		}
		issuedMax, err := s.issuedMax(ctx, tenantID, sr)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, SeriesStatus{
			Series:    sr.String(),
			Counter:   counter,
			IssuedMax: issuedMax,
			Drifted:   counter < issuedMax,
		})
	}
	return statuses, nil
}

// Resync raises a series' counter to the highest suffix found on issued
// documents. The counter never moves backwards, so already-issued numbers
// cannot be handed out again.
func (s *SequenceService) Resync(ctx context.Context, tenantID uuid.UUID, series sequence.Series) (*ResyncResponse, error) {
	if !series.IsValid() {
		return nil, shared.NewDomainError("INVALID_SERIES", "Unknown document number series")
	}

	issuedMax, err := s.issuedMax(ctx, tenantID, series)
	if err != nil {
		return nil, err
	}
	counter, err := s.counters.Resync(ctx, tenantID, series, issuedMax)
	if err != nil {
		return nil, err
	}
	return &ResyncResponse{Series: series.String(), Counter: counter}, nil
}

// issuedMax asks the owning document repository for the highest suffix
// ever issued in the series
func (s *SequenceService) issuedMax(ctx context.Context, tenantID uuid.UUID, series sequence.Series) (int64, error) {
	switch series {
	case sequence.SeriesOrder:
		return s.orders.MaxIssuedNumber(ctx, tenantID)
	case sequence.SeriesPurchase:
		return s.purchases.MaxIssuedNumber(ctx, tenantID)
	case sequence.SeriesPayment:
		return s.payments.MaxIssuedNumber(ctx, tenantID)
	case sequence.SeriesCreditNote:
		return s.notes.MaxIssuedNumber(ctx, tenantID)
	}
	return 0, shared.NewDomainError("INVALID_SERIES", "Unknown document number series")
}
