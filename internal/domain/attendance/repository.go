package attendance

import (
	"context"
	"time"
)

type PunchRepository interface {
	Create(ctx context.Context, punch Punch) (Punch, error)
	// ListByEmployeeBetween returns punches with punched_at in [from, to],
	// ordered by punched_at ascending.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Punch, error)
}

type AdjustmentRepository interface {
	Upsert(ctx context.Context, adj Adjustment) (Adjustment, error)
	// ListByEmployeeBetween returns adjustments with date in [from, to],
	// ordered by date ascending.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Adjustment, error)
}
