package sequence

import (
	"context"

	"github.com/google/uuid"
)

// CounterRepository is the persistence contract for document number counters.
type CounterRepository interface {
	// Next atomically increments the counter for (tenantID, series) and
	// returns the post-increment value. The counter row is created on first
	// use; the underlying upsert-increment guarantees exactly one winner
	// per increment, so no value is ever handed to two callers.
	Next(ctx context.Context, tenantID uuid.UUID, series Series) (int64, error)

	// Current returns the counter's current value without incrementing it.
	// Returns 0 for a counter that has never been used.
	Current(ctx context.Context, tenantID uuid.UUID, series Series) (int64, error)

	// Resync sets the counter to max(current value, issuedMax). It never
	// moves a counter backwards, so already-issued numbers cannot be
	// reissued. This is the supported administrative repair path; raw
	// rewrites of counter rows are not.
	Resync(ctx context.Context, tenantID uuid.UUID, series Series, issuedMax int64) (int64, error)
}
