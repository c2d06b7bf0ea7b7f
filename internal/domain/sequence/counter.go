package sequence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Series identifies a per-tenant document number series.
type Series string

const (
	SeriesOrder      Series = "order"
	SeriesPurchase   Series = "purchase"
	SeriesPayment    Series = "payment"
	SeriesCreditNote Series = "credit_note"
)

// IsValid checks if the series is a known document series
func (s Series) IsValid() bool {
	switch s {
	case SeriesOrder, SeriesPurchase, SeriesPayment, SeriesCreditNote:
		return true
	}
	return false
}

// String returns the string representation of the series
func (s Series) String() string {
	return string(s)
}

// prefix returns the human-readable document number prefix for the series
func (s Series) prefix() string {
	switch s {
	case SeriesOrder:
		return "ORD"
	case SeriesPurchase:
		return "PO"
	case SeriesPayment:
		return "PAY"
	case SeriesCreditNote:
		return "CN"
	}
	return "DOC"
}

// Counter is a per-tenant, per-series monotonically increasing integer
// source backing human-readable document numbers. Counters are created
// lazily on first use and never deleted. Value is only ever mutated by an
// atomic upsert-increment, so two concurrent callers can never be handed
// the same value.
type Counter struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_counter_tenant_series"`
	Series    Series    `gorm:"not null;uniqueIndex:idx_counter_tenant_series"`
	Value     int64     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the database table name for counters
func (Counter) TableName() string {
	return "sequence_counters"
}

// NewCounter creates a counter at zero for a tenant and series
func NewCounter(tenantID uuid.UUID, series Series) (*Counter, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !series.IsValid() {
		return nil, shared.NewDomainError("INVALID_SERIES", "Unknown document number series")
	}
	now := time.Now()
	return &Counter{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Series:    series,
		Value:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Format renders a counter value as a human-readable document number.
// Formatting is a pure function of the integer; uniqueness comes entirely
// from the counter.
func Format(series Series, value int64) string {
	return fmt.Sprintf("%s-%05d", series.prefix(), value)
}
