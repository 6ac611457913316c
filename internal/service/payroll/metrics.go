package payroll

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/attendance"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/employee"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/leave"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

const (
	defaultWorkStart    = "09:00"
	defaultAbsentCutoff = "13:00"
	defaultBaseDays     = 30
	nominalWorkdayHours = 8
)

// MetricsInput carries everything ComputePeriodMetrics needs. All records are
// pre-fetched and pre-filtered by the caller: punches and adjustments within
// the period, approved leaves for the whole calendar year.
type MetricsInput struct {
	Employee    employee.Employee
	Period      payroll.Period
	Settings    payroll.HRSettings
	Holidays    []time.Time
	Leaves      []leave.LeaveRequest
	Punches     []attendance.Punch
	Adjustments []attendance.Adjustment
	Today       time.Time
}

// ComputePeriodMetrics derives attendance status, lateness, absence units,
// leave consumption and automatic deductions for one employee over one pay
// period. Pure function; it performs no I/O and never fails - data-quality
// problems degrade to warnings and calc notes so payroll always produces a
// reviewable draft.
func ComputePeriodMetrics(in MetricsInput) payroll.PeriodMetrics {
	ctx := newDayContext(in)
	state := periodState{leaveByType: make(map[string]float64)}
	state.calcNotes = append(state.calcNotes, ctx.setupNotes...)

	// Future days are never evaluated.
	last := in.Period.End
	if in.Today.Before(last) {
		last = in.Today
	}

	for date := in.Period.Start; !dayAfter(date, last); date = date.AddDate(0, 0, 1) {
		if !ctx.isScheduled(date) {
			continue
		}
		state = evaluateDay(state, date, ctx)
	}

	absentRounded := math.Round(state.absentUnits*2) / 2
	presentDays := float64(state.scheduled) - state.leaveDays - math.Floor(absentRounded)
	if presentDays < 0 {
		presentDays = 0
	}

	metrics := payroll.PeriodMetrics{
		Attendance: payroll.AttendanceSummary{
			ScheduledWorkDays: state.scheduled,
			PresentDays:       presentDays,
			LateDays:          state.lateDays,
			LateMinutes:       state.lateMinutes,
			AbsentUnits:       absentRounded,
			LeaveDays:         state.leaveDays,
			PayableUnits:      state.payableUnits,
		},
		Leave: payroll.LeaveSummary{
			DaysByType: state.leaveByType,
		},
		Warnings:  state.warnings,
		CalcNotes: state.calcNotes,
		DayLogs:   state.logs,
	}

	overLimit := overLimitDaysInPeriod(in.Leaves, in.Settings.Entitlements, in.Period, ctx.isNonWorkingDate)
	if len(overLimit) > 0 {
		metrics.Leave.OverLimitDays = overLimit
	}

	metrics = appendDeductions(metrics, in, state, overLimit)

	return metrics
}

// periodState is the accumulator folded over the period's scheduled days.
type periodState struct {
	scheduled    int
	leaveDays    float64
	leaveByType  map[string]float64
	absentUnits  float64
	lateDays     int
	lateMinutes  int
	payableUnits float64
	warnings     []string
	calcNotes    []string
	logs         []payroll.DayLog
}

type dayTimes struct {
	firstIn *time.Time
	lastOut *time.Time
}

// dayContext is the immutable environment the day evaluator reads from.
type dayContext struct {
	payType         employee.PayType
	startDate       *time.Time
	endDate         *time.Time
	weekendMode     payroll.WeekendMode
	holidays        map[string]bool
	workStartMin    int
	graceMin        int
	absentCutoffMin int
	times           map[string]dayTimes
	adjustments     map[string]attendance.Adjustment
	leaves          []leave.LeaveRequest
	todayKey        string
	setupNotes      []string
}

func newDayContext(in MetricsInput) dayContext {
	ctx := dayContext{
		payType:     in.Employee.PayType,
		startDate:   in.Employee.StartDate,
		endDate:     in.Employee.EndDate,
		weekendMode: in.Settings.WeekendMode,
		holidays:    make(map[string]bool, len(in.Holidays)),
		graceMin:    in.Settings.GraceMinutes,
		times:       make(map[string]dayTimes),
		adjustments: make(map[string]attendance.Adjustment, len(in.Adjustments)),
		leaves:      in.Leaves,
		todayKey:    dateKey(in.Today),
	}

	for _, h := range in.Holidays {
		ctx.holidays[dateKey(h)] = true
	}

	var ok bool
	ctx.workStartMin, ok = clockMinutes(in.Settings.WorkStart)
	if !ok {
		ctx.workStartMin, _ = clockMinutes(defaultWorkStart)
		ctx.setupNotes = append(ctx.setupNotes,
			fmt.Sprintf("work start time %q is invalid; using %s", in.Settings.WorkStart, defaultWorkStart))
	}
	ctx.absentCutoffMin, ok = clockMinutes(in.Settings.AbsentCutoff)
	if !ok {
		ctx.absentCutoffMin, _ = clockMinutes(defaultAbsentCutoff)
		ctx.setupNotes = append(ctx.setupNotes,
			fmt.Sprintf("absence cutoff time %q is invalid; using %s", in.Settings.AbsentCutoff, defaultAbsentCutoff))
	}

	// First IN and last OUT per date; an ADD_RECORD adjustment for the date
	// overrides either side below.
	for _, p := range in.Punches {
		key := dateKey(p.PunchedAt)
		dt := ctx.times[key]
		ts := p.PunchedAt
		switch p.Type {
		case attendance.PunchIn:
			if dt.firstIn == nil || ts.Before(*dt.firstIn) {
				dt.firstIn = &ts
			}
		case attendance.PunchOut:
			if dt.lastOut == nil || ts.After(*dt.lastOut) {
				dt.lastOut = &ts
			}
		}
		ctx.times[key] = dt
	}

	for _, adj := range in.Adjustments {
		ctx.adjustments[dateKey(adj.Date)] = adj
	}

	return ctx
}

// isScheduled reports whether the employee is expected to work on the date.
// Excluded days never increment scheduled work days.
func (c dayContext) isScheduled(date time.Time) bool {
	key := dateKey(date)
	if c.startDate != nil && key < dateKey(*c.startDate) {
		return false
	}
	if c.endDate != nil && key > dateKey(*c.endDate) {
		return false
	}
	return !c.isNonWorkingDate(date)
}

// isNonWorkingDate covers only the company-wide exclusions (holiday,
// weekend), ignoring the employee's hire bounds. Leave entitlement
// consumption uses this form.
func (c dayContext) isNonWorkingDate(date time.Time) bool {
	if c.holidays[dateKey(date)] {
		return true
	}
	switch date.Weekday() {
	case time.Sunday:
		return true
	case time.Saturday:
		return c.weekendMode != payroll.WeekendSunOnly
	}
	return false
}

// resolveTimes returns the effective first-in/last-out for the date, letting
// an ADD_RECORD adjustment supersede the raw punches.
func (c dayContext) resolveTimes(key string) dayTimes {
	dt := c.times[key]
	if adj, ok := c.adjustments[key]; ok && adj.Type == attendance.AdjustmentAddRecord {
		if adj.AdjustedIn != nil {
			dt.firstIn = adj.AdjustedIn
		}
		if adj.AdjustedOut != nil {
			dt.lastOut = adj.AdjustedOut
		}
	}
	return dt
}

func (c dayContext) lateForgiven(key string) bool {
	adj, ok := c.adjustments[key]
	return ok && adj.Type == attendance.AdjustmentForgiveLate
}

func (c dayContext) leaveCovering(date time.Time) *leave.LeaveRequest {
	for i := range c.leaves {
		if c.leaves[i].Covers(date) {
			return &c.leaves[i]
		}
	}
	return nil
}

// evaluateDay folds one scheduled day into the accumulator. Each day yields
// one outcome: leave, assumed presence, presence, lateness, a half-day
// morning absence, or a full absence of the remaining capacity.
func evaluateDay(state periodState, date time.Time, ctx dayContext) periodState {
	key := dateKey(date)
	state.scheduled++

	capacity := 1.0
	morningLeave := false

	if lr := ctx.leaveCovering(date); lr != nil {
		if lr.HalfDayApplies() {
			state.leaveDays += 0.5
			state.leaveByType[lr.LeaveType] += 0.5
			state.payableUnits += 0.5
			capacity = 0.5
			morningLeave = lr.IsMorningHalf()
			state.logs = append(state.logs, payroll.DayLog{
				Date: key, Status: payroll.DayLeave,
				Note: fmt.Sprintf("half-day %s leave", lr.LeaveType),
			})
		} else {
			state.leaveDays += 1.0
			state.leaveByType[lr.LeaveType] += 1.0
			state.payableUnits += 1.0
			state.logs = append(state.logs, payroll.DayLog{
				Date: key, Status: payroll.DayLeave,
				Note: fmt.Sprintf("full-day %s leave", lr.LeaveType),
			})
			return state
		}
	}

	// Salaried-without-scanning staff are presumed present on every scheduled
	// day that is not covered by leave.
	if ctx.payType == employee.PayTypeMonthlyNoScan {
		state.payableUnits += capacity
		state.logs = append(state.logs, payroll.DayLog{Date: key, Status: payroll.DayPresent, Note: "presence assumed (no scan)"})
		return state
	}

	dt := ctx.resolveTimes(key)

	if dt.firstIn == nil {
		state.absentUnits += capacity
		state.logs = append(state.logs, payroll.DayLog{Date: key, Status: payroll.DayAbsent, Note: "no clock-in"})
		return state
	}

	inMin := minuteOfDay(*dt.firstIn)
	switch {
	case inMin > ctx.absentCutoffMin && !morningLeave:
		half := capacity / 2
		state.absentUnits += half
		state.payableUnits += half
		state.logs = append(state.logs, payroll.DayLog{
			Date: key, Status: payroll.DayAbsentMorning,
			Note: fmt.Sprintf("clock-in %s after absence cutoff", clockString(inMin)),
		})
	case inMin > ctx.workStartMin+ctx.graceMin && !morningLeave && !ctx.lateForgiven(key):
		state.lateDays++
		state.lateMinutes += inMin - ctx.workStartMin
		state.payableUnits += capacity
		state.logs = append(state.logs, payroll.DayLog{
			Date: key, Status: payroll.DayLate,
			Note: fmt.Sprintf("clock-in %s, %d min late", clockString(inMin), inMin-ctx.workStartMin),
		})
	default:
		state.payableUnits += capacity
		state.logs = append(state.logs, payroll.DayLog{Date: key, Status: payroll.DayPresent})
	}

	// An open session on a past day needs an HR correction before the
	// payslip is finalized.
	if dt.lastOut == nil && key < ctx.todayKey {
		state.warnings = append(state.warnings,
			fmt.Sprintf("%s: clock-in without clock-out; needs HR correction", key))
	}

	return state
}

// overLimitDaysInPeriod walks each leave type's approved days for the year in
// chronological order and returns, per type, the over-entitlement days that
// fall inside the current period. A leave spanning a period boundary is only
// partially over-limit in the period its excess days land in.
func overLimitDaysInPeriod(
	leaves []leave.LeaveRequest,
	entitlements payroll.Entitlements,
	period payroll.Period,
	nonWorking func(time.Time) bool,
) map[string]float64 {
	out := make(map[string]float64)
	running := make(map[string]float64)

	for _, lr := range leaves {
		ent, ok := entitlements[lr.LeaveType]
		if !ok {
			continue
		}
		for d := lr.StartDate; !dayAfter(d, lr.EndDate); d = d.AddDate(0, 0, 1) {
			if nonWorking(d) {
				continue
			}
			units := lr.Units()
			running[lr.LeaveType] += units
			over := running[lr.LeaveType] - ent.Days
			if over <= 0 {
				continue
			}
			if period.Contains(d) {
				out[lr.LeaveType] += math.Min(units, over)
			}
		}
	}

	for t, v := range out {
		if v == 0 {
			delete(out, t)
		}
	}
	return out
}

// appendDeductions derives the automatic deduction line items from the
// accumulated units. Money always uses the unrounded per-day accumulation;
// the 0.5-rounded absence figure is display only.
func appendDeductions(metrics payroll.PeriodMetrics, in MetricsInput, state periodState, overLimit map[string]float64) payroll.PeriodMetrics {
	salary := in.Employee.MonthlySalary
	baseDays := in.Settings.SalaryDeductionBaseDays
	if baseDays <= 0 {
		baseDays = defaultBaseDays
		metrics.CalcNotes = append(metrics.CalcNotes,
			fmt.Sprintf("salary deduction base days not configured; using %d", defaultBaseDays))
	}
	dayRate := salary.Div(decimal.NewFromInt(int64(baseDays)))

	if in.Employee.PayType == employee.PayTypeMonthly && salary.IsPositive() {
		if state.absentUnits > 0 {
			metrics.Deductions = append(metrics.Deductions, payroll.DeductionItem{
				Name:   "Absence deduction",
				Amount: dayRate.Mul(decimal.NewFromFloat(state.absentUnits)).Round(2),
				Notes:  fmt.Sprintf("%.1f absent day(s)", state.absentUnits),
			})
		}
		if state.lateMinutes > 0 {
			minuteRate := dayRate.
				Div(decimal.NewFromInt(nominalWorkdayHours)).
				Div(decimal.NewFromInt(60))
			metrics.Deductions = append(metrics.Deductions, payroll.DeductionItem{
				Name:   "Lateness deduction",
				Amount: minuteRate.Mul(decimal.NewFromInt(int64(state.lateMinutes))).Round(2),
				Notes:  fmt.Sprintf("%d late minute(s) over %d day(s)", state.lateMinutes, state.lateDays),
			})
		}
	}

	// Stable ordering of per-type over-limit lines.
	types := make([]string, 0, len(overLimit))
	for t := range overLimit {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, leaveType := range types {
		days := overLimit[leaveType]
		mode := in.Settings.Entitlements[leaveType].Mode
		switch mode {
		case payroll.OverLimitDeductSalary, payroll.OverLimitUnpaid:
			if salary.IsPositive() {
				metrics.Deductions = append(metrics.Deductions, payroll.DeductionItem{
					Name:   fmt.Sprintf("Over-limit %s leave", leaveType),
					Amount: dayRate.Mul(decimal.NewFromFloat(days)).Round(2),
					Notes:  fmt.Sprintf("%.1f day(s) over annual entitlement", days),
				})
			}
		case payroll.OverLimitDisallow:
			metrics.CalcNotes = append(metrics.CalcNotes,
				fmt.Sprintf("found %.1f over-limit %s leave day(s) but policy mode is DISALLOW; manual review required", days, leaveType))
		}
	}

	metrics = appendSSODeduction(metrics, in)

	return metrics
}

// appendSSODeduction applies the social-insurance contribution once per
// month, on the pay period that closes the second half of the month.
func appendSSODeduction(metrics payroll.PeriodMetrics, in MetricsInput) payroll.PeriodMetrics {
	if in.Employee.PayType != employee.PayTypeMonthly && in.Employee.PayType != employee.PayTypeMonthlyNoScan {
		return metrics
	}
	if in.Period.End.Day() <= 20 {
		return metrics
	}
	salary := in.Employee.MonthlySalary
	percent := in.Settings.SSOEmployeePercent
	if !salary.IsPositive() || !percent.IsPositive() {
		return metrics
	}

	base := salary
	if in.Settings.SSOMonthlyCap.IsPositive() && base.GreaterThan(in.Settings.SSOMonthlyCap) {
		base = in.Settings.SSOMonthlyCap
	}

	metrics.Deductions = append(metrics.Deductions, payroll.DeductionItem{
		Name:   "Social security",
		Amount: base.Mul(percent).Div(decimal.NewFromInt(100)).Round(2),
		Notes:  fmt.Sprintf("%s%% of %s", percent.String(), base.StringFixed(2)),
	})
	return metrics
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func dayAfter(a, b time.Time) bool {
	return dateKey(a) > dateKey(b)
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func clockMinutes(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
