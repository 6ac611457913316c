package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// WeekendMode enum - which days of the week are never scheduled.
type WeekendMode string

const (
	WeekendSatSun  WeekendMode = "SAT_SUN"
	WeekendSunOnly WeekendMode = "SUN_ONLY"
)

// OverLimitMode enum - what to do when approved leave exceeds the annual
// entitlement for its type.
type OverLimitMode string

const (
	OverLimitDeductSalary OverLimitMode = "DEDUCT_SALARY"
	OverLimitUnpaid       OverLimitMode = "UNPAID"
	OverLimitDisallow     OverLimitMode = "DISALLOW"
)

// LeaveEntitlement - annual allowance for one leave type.
type LeaveEntitlement struct {
	Days float64       `json:"days"`
	Mode OverLimitMode `json:"mode"`
}

// Entitlements maps leave type to its annual entitlement. Stored as JSONB.
type Entitlements map[string]LeaveEntitlement

// Value implements driver.Valuer for database storage
func (e Entitlements) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner for database retrieval
func (e *Entitlements) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Entitlements: invalid type")
	}

	return json.Unmarshal(bytes, e)
}

// HRSettings - company-wide attendance and payroll policy. Singleton,
// read-only input to the metrics engine.
type HRSettings struct {
	WorkStart               string      // "09:00", local clock time
	GraceMinutes            int         // arrival within WorkStart+grace is on time
	AbsentCutoff            string      // "13:00"; arrival after this counts half the day absent
	WeekendMode             WeekendMode
	Entitlements            Entitlements
	SSOEmployeePercent      decimal.Decimal
	SSOMonthlyCap           decimal.Decimal
	SalaryDeductionBaseDays int // day-rate divisor for salary deductions

	UpdatedAt time.Time
}

// Period - one pay period, inclusive on both ends.
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	d := date.Format("2006-01-02")
	return d >= p.Start.Format("2006-01-02") && d <= p.End.Format("2006-01-02")
}

// DayStatus - per-day outcome recorded in the metrics log.
type DayStatus string

const (
	DayPresent       DayStatus = "present"
	DayLate          DayStatus = "late"
	DayAbsent        DayStatus = "absent"
	DayAbsentMorning DayStatus = "absent_morning"
	DayLeave         DayStatus = "leave"
)

// DayLog - one scheduled day's evaluation, for HR review.
type DayLog struct {
	Date   string    `json:"date"` // YYYY-MM-DD
	Status DayStatus `json:"status"`
	Note   string    `json:"note,omitempty"`
}

// DeductionItem - an automatic deduction line on the draft payslip.
type DeductionItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes,omitempty"`
}

// AttendanceSummary - scheduled/present/late/absent/leave/payable units over
// the evaluated portion of the period.
type AttendanceSummary struct {
	ScheduledWorkDays int     `json:"scheduled_work_days"`
	PresentDays       float64 `json:"present_days"` // display approximation, not used for money
	LateDays          int     `json:"late_days"`
	LateMinutes       int     `json:"late_minutes"`
	AbsentUnits       float64 `json:"absent_units"` // rounded to nearest 0.5
	LeaveDays         float64 `json:"leave_days"`
	PayableUnits      float64 `json:"payable_units"`
}

// LeaveSummary - per-type consumption and over-limit days within the period.
type LeaveSummary struct {
	DaysByType    map[string]float64 `json:"days_by_type"`
	OverLimitDays map[string]float64 `json:"over_limit_days,omitempty"`
}

// PeriodMetrics - the full derived result for one employee and one period.
// Never persisted directly; consumed to build a payslip draft.
type PeriodMetrics struct {
	Attendance AttendanceSummary `json:"attendance"`
	Leave      LeaveSummary      `json:"leave"`
	Deductions []DeductionItem   `json:"deductions"`
	Warnings   []string          `json:"warnings,omitempty"`
	CalcNotes  []string          `json:"calc_notes,omitempty"`
	DayLogs    []DayLog          `json:"day_logs"`
}

// Value implements driver.Valuer for database storage
func (m PeriodMetrics) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for database retrieval
func (m *PeriodMetrics) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan PeriodMetrics: invalid type")
	}

	return json.Unmarshal(bytes, m)
}

// PayslipStatus enum
type PayslipStatus string

const (
	PayslipStatusDraft PayslipStatus = "draft"
	PayslipStatusFinal PayslipStatus = "final"
)

// Payslip - persisted draft built from PeriodMetrics. Regenerating the same
// (employee, period) overwrites an existing draft.
type Payslip struct {
	ID              string
	EmployeeID      string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	BasePay         decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	Metrics         PeriodMetrics
	Status          PayslipStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
}
