package attendance

import "time"

// PunchType enum
type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

// Punch - a raw clock action. Append-only; HR corrections go through
// Adjustment records instead of mutating punches.
type Punch struct {
	ID         string
	EmployeeID string
	Type       PunchType
	PunchedAt  time.Time
	CreatedAt  time.Time
}

// AdjustmentType enum
type AdjustmentType string

const (
	AdjustmentAddRecord   AdjustmentType = "ADD_RECORD"
	AdjustmentForgiveLate AdjustmentType = "FORGIVE_LATE"
)

// Adjustment - an HR correction for one employee on one date. ADD_RECORD
// supersedes the derived first-in/last-out for that date; FORGIVE_LATE waives
// the lateness penalty.
type Adjustment struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	Type        AdjustmentType
	AdjustedIn  *time.Time
	AdjustedOut *time.Time
	CreatedBy   *string
	CreatedAt   time.Time
}
