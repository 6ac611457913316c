package leave

import "context"

type LeaveRequestRepository interface {
	// ListApprovedByEmployeeYear returns the employee's approved requests for
	// the calendar year, ordered by start_date ascending. Entitlement tracking
	// is annual, so callers always fetch the whole year even when computing a
	// single pay period.
	ListApprovedByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error)
}
