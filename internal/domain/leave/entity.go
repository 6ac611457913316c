package leave

import "time"

type RequestStatus string

const (
	RequestStatusSubmitted RequestStatus = "submitted"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// HalfDaySession enum - which half of the day a half-day leave covers.
type HalfDaySession string

const (
	SessionMorning   HalfDaySession = "MORNING"
	SessionAfternoon HalfDaySession = "AFTERNOON"
)

// LeaveRequest entity. Only approved requests count toward period metrics and
// annual entitlement consumption. Half-day leave is valid only when StartDate
// equals EndDate.
type LeaveRequest struct {
	ID             string
	EmployeeID     string
	LeaveType      string // e.g. "SICK", "PERSONAL", "VACATION"
	StartDate      time.Time
	EndDate        time.Time
	IsHalfDay      bool
	HalfDaySession *HalfDaySession
	Reason         *string
	Status         RequestStatus
	Year           int

	ApprovedBy *string
	ApprovedAt *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Covers reports whether the request spans the given calendar date.
func (r LeaveRequest) Covers(date time.Time) bool {
	d := date.Format("2006-01-02")
	return d >= r.StartDate.Format("2006-01-02") && d <= r.EndDate.Format("2006-01-02")
}

// HalfDayApplies reports whether the half-day flag is effective. Half-day
// leave is only meaningful on a single-date request; a malformed multi-day
// half-day request counts as full days everywhere.
func (r LeaveRequest) HalfDayApplies() bool {
	return r.IsHalfDay && r.StartDate.Format("2006-01-02") == r.EndDate.Format("2006-01-02")
}

// Units is the entitlement consumption of one covered day of this request.
func (r LeaveRequest) Units() float64 {
	if r.HalfDayApplies() {
		return 0.5
	}
	return 1.0
}

// IsMorningHalf reports whether this is a morning-session half-day leave, in
// which case afternoon arrival is expected and lateness checks are skipped.
func (r LeaveRequest) IsMorningHalf() bool {
	return r.IsHalfDay && r.HalfDaySession != nil && *r.HalfDaySession == SessionMorning
}
