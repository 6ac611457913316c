package payroll

import (
	"testing"
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/attendance"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/employee"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/leave"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func stamp(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func punchIn(s string) attendance.Punch {
	return attendance.Punch{EmployeeID: "emp-1", Type: attendance.PunchIn, PunchedAt: stamp(s)}
}

func punchOut(s string) attendance.Punch {
	return attendance.Punch{EmployeeID: "emp-1", Type: attendance.PunchOut, PunchedAt: stamp(s)}
}

// workday emits a normal on-time day.
func workday(day string) []attendance.Punch {
	return []attendance.Punch{punchIn(day + " 08:55"), punchOut(day + " 18:00")}
}

func testSettings() payroll.HRSettings {
	return payroll.HRSettings{
		WorkStart:    "09:00",
		GraceMinutes: 15,
		AbsentCutoff: "13:00",
		WeekendMode:  payroll.WeekendSatSun,
		Entitlements: payroll.Entitlements{
			"SICK":     {Days: 3, Mode: payroll.OverLimitDeductSalary},
			"PERSONAL": {Days: 2, Mode: payroll.OverLimitUnpaid},
			"VACATION": {Days: 1, Mode: payroll.OverLimitDisallow},
		},
		SSOEmployeePercent:      decimal.NewFromInt(5),
		SSOMonthlyCap:           decimal.NewFromInt(15000),
		SalaryDeductionBaseDays: 30,
	}
}

func monthlyEmployee() employee.Employee {
	return employee.Employee{
		ID:            "emp-1",
		FullName:      "Somsri Jaidee",
		PayType:       employee.PayTypeMonthly,
		MonthlySalary: decimal.NewFromInt(30000),
		IsActive:      true,
	}
}

// baseInput is one working week, 2024-06-03 (Mon) through 2024-06-07 (Fri),
// evaluated well after the period closed.
func baseInput() MetricsInput {
	return MetricsInput{
		Employee: monthlyEmployee(),
		Period:   payroll.Period{Start: date("2024-06-03"), End: date("2024-06-07")},
		Settings: testSettings(),
		Today:    date("2024-07-01"),
	}
}

func fullWeekPunches() []attendance.Punch {
	var punches []attendance.Punch
	for _, day := range []string{"2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07"} {
		punches = append(punches, workday(day)...)
	}
	return punches
}

func weekPunchesExcept(skip string) []attendance.Punch {
	var punches []attendance.Punch
	for _, day := range []string{"2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07"} {
		if day == skip {
			continue
		}
		punches = append(punches, workday(day)...)
	}
	return punches
}

func deductionByName(t *testing.T, m payroll.PeriodMetrics, name string) payroll.DeductionItem {
	t.Helper()
	for _, d := range m.Deductions {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("deduction %q not found in %+v", name, m.Deductions)
	return payroll.DeductionItem{}
}

func assertNoDeduction(t *testing.T, m payroll.PeriodMetrics, name string) {
	t.Helper()
	for _, d := range m.Deductions {
		if d.Name == name {
			t.Fatalf("unexpected deduction %q: %+v", name, d)
		}
	}
}

func TestComputeFullPresence(t *testing.T) {
	in := baseInput()
	in.Punches = fullWeekPunches()

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 5, m.Attendance.ScheduledWorkDays)
	assert.Equal(t, 5.0, m.Attendance.PresentDays)
	assert.Equal(t, 5.0, m.Attendance.PayableUnits)
	assert.Equal(t, 0, m.Attendance.LateDays)
	assert.Equal(t, 0.0, m.Attendance.AbsentUnits)
	assert.Empty(t, m.Deductions)
	assert.Empty(t, m.Warnings)
	assert.Len(t, m.DayLogs, 5)
}

func TestComputeLatenessWithGrace(t *testing.T) {
	in := baseInput()
	in.Punches = append(weekPunchesExcept("2024-06-05"),
		punchIn("2024-06-05 09:30"), punchOut("2024-06-05 18:00"))

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 1, m.Attendance.LateDays)
	// Lateness counts from work start, not from the end of the grace window.
	assert.Equal(t, 30, m.Attendance.LateMinutes)
	assert.Equal(t, 5.0, m.Attendance.PayableUnits)

	// day rate 1000, minute rate 1000/8/60, 30 minutes late
	item := deductionByName(t, m, "Lateness deduction")
	assert.True(t, item.Amount.Equal(decimal.NewFromFloat(62.5)), "got %s", item.Amount)
}

func TestComputeArrivalInsideGraceIsOnTime(t *testing.T) {
	in := baseInput()
	in.Punches = append(weekPunchesExcept("2024-06-05"),
		punchIn("2024-06-05 09:15"), punchOut("2024-06-05 18:00"))

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 0, m.Attendance.LateDays)
	assert.Empty(t, m.Deductions)
}

func TestComputeFullDayAbsence(t *testing.T) {
	in := baseInput()
	in.Punches = weekPunchesExcept("2024-06-05")

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 1.0, m.Attendance.AbsentUnits)
	assert.Equal(t, 4.0, m.Attendance.PresentDays)
	assert.Equal(t, 4.0, m.Attendance.PayableUnits)

	item := deductionByName(t, m, "Absence deduction")
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(1000)), "got %s", item.Amount)
}

func TestComputeAfternoonArrivalIsHalfAbsent(t *testing.T) {
	in := baseInput()
	in.Punches = append(weekPunchesExcept("2024-06-05"),
		punchIn("2024-06-05 13:30"), punchOut("2024-06-05 18:00"))

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 0.5, m.Attendance.AbsentUnits)
	assert.Equal(t, 4.5, m.Attendance.PayableUnits)
	assert.Equal(t, 0, m.Attendance.LateDays, "afternoon arrival is absence, not lateness")

	item := deductionByName(t, m, "Absence deduction")
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(500)), "got %s", item.Amount)
}

func TestComputeMorningHalfLeaveSkipsLatenessChecks(t *testing.T) {
	session := leave.SessionMorning
	in := baseInput()
	in.Leaves = []leave.LeaveRequest{{
		EmployeeID: "emp-1", LeaveType: "SICK",
		StartDate: date("2024-06-05"), EndDate: date("2024-06-05"),
		IsHalfDay: true, HalfDaySession: &session,
		Status: leave.RequestStatusApproved, Year: 2024,
	}}
	in.Punches = append(weekPunchesExcept("2024-06-05"),
		punchIn("2024-06-05 13:30"), punchOut("2024-06-05 18:00"))

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 0.5, m.Attendance.LeaveDays)
	assert.Equal(t, 0, m.Attendance.LateDays)
	assert.Equal(t, 0.0, m.Attendance.AbsentUnits)
	assert.Equal(t, 5.0, m.Attendance.PayableUnits)
	assert.Equal(t, 0.5, m.Leave.DaysByType["SICK"])
	assert.Empty(t, m.Deductions)
}

func TestComputeAfternoonHalfLeaveQuarterDayRounding(t *testing.T) {
	session := leave.SessionAfternoon
	in := baseInput()
	in.Leaves = []leave.LeaveRequest{{
		EmployeeID: "emp-1", LeaveType: "PERSONAL",
		StartDate: date("2024-06-05"), EndDate: date("2024-06-05"),
		IsHalfDay: true, HalfDaySession: &session,
		Status: leave.RequestStatusApproved, Year: 2024,
	}}
	// Arrives after the cutoff on a day where only the morning half was owed.
	in.Punches = append(weekPunchesExcept("2024-06-05"),
		punchIn("2024-06-05 13:30"), punchOut("2024-06-05 18:00"))

	m := ComputePeriodMetrics(in)

	// Raw absence is 0.25; the reported figure rounds to the nearest 0.5 but
	// the deduction uses the raw units.
	assert.Equal(t, 0.5, m.Attendance.AbsentUnits)
	assert.Equal(t, 4.75, m.Attendance.PayableUnits)

	item := deductionByName(t, m, "Absence deduction")
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(250)), "got %s", item.Amount)
}

func TestComputeFullDayLeave(t *testing.T) {
	in := baseInput()
	in.Leaves = []leave.LeaveRequest{{
		EmployeeID: "emp-1", LeaveType: "SICK",
		StartDate: date("2024-06-04"), EndDate: date("2024-06-05"),
		Status: leave.RequestStatusApproved, Year: 2024,
	}}
	in.Punches = removeDay(weekPunchesExcept("2024-06-04"), "2024-06-05")

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 2.0, m.Attendance.LeaveDays)
	assert.Equal(t, 2.0, m.Leave.DaysByType["SICK"])
	assert.Equal(t, 0.0, m.Attendance.AbsentUnits)
	assert.Equal(t, 5.0, m.Attendance.PayableUnits)
	assert.Equal(t, 3.0, m.Attendance.PresentDays)
	assert.Empty(t, m.Deductions)
}

func removeDay(punches []attendance.Punch, day string) []attendance.Punch {
	out := punches[:0]
	for _, p := range punches {
		if p.PunchedAt.Format("2006-01-02") != day {
			out = append(out, p)
		}
	}
	return out
}

func TestComputeForgiveLateAdjustment(t *testing.T) {
	in := baseInput()
	in.Punches = append(weekPunchesExcept("2024-06-05"),
		punchIn("2024-06-05 09:30"), punchOut("2024-06-05 18:00"))
	in.Adjustments = []attendance.Adjustment{{
		EmployeeID: "emp-1", Date: date("2024-06-05"),
		Type: attendance.AdjustmentForgiveLate,
	}}

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 0, m.Attendance.LateDays)
	assert.Equal(t, 0, m.Attendance.LateMinutes)
	assert.Empty(t, m.Deductions)
}

func TestComputeAddRecordAdjustmentOverridesPunches(t *testing.T) {
	adjIn := stamp("2024-06-05 08:50")
	adjOut := stamp("2024-06-05 18:00")
	in := baseInput()
	in.Punches = weekPunchesExcept("2024-06-05")
	in.Adjustments = []attendance.Adjustment{{
		EmployeeID: "emp-1", Date: date("2024-06-05"),
		Type:       attendance.AdjustmentAddRecord,
		AdjustedIn: &adjIn, AdjustedOut: &adjOut,
	}}

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 0.0, m.Attendance.AbsentUnits)
	assert.Equal(t, 5.0, m.Attendance.PayableUnits)
	assert.Empty(t, m.Deductions)
}

func TestComputeMissingClockOutWarning(t *testing.T) {
	in := baseInput()
	in.Punches = append(weekPunchesExcept("2024-06-05"),
		punchIn("2024-06-05 08:55"))

	m := ComputePeriodMetrics(in)

	require.Len(t, m.Warnings, 1)
	assert.Contains(t, m.Warnings[0], "2024-06-05")
	// The open day still counts as worked until HR corrects it.
	assert.Equal(t, 5.0, m.Attendance.PayableUnits)
}

func TestComputeWeekendsAndHolidaysNotScheduled(t *testing.T) {
	in := baseInput()
	in.Period = payroll.Period{Start: date("2024-06-01"), End: date("2024-06-09")} // Sat through Sun
	in.Holidays = []time.Time{date("2024-06-05")}
	in.Punches = weekPunchesExcept("2024-06-05")

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 4, m.Attendance.ScheduledWorkDays)
	assert.Equal(t, 0.0, m.Attendance.AbsentUnits)
	assert.Empty(t, m.Deductions)
}

func TestComputeSundayOnlyWeekendMode(t *testing.T) {
	in := baseInput()
	in.Settings.WeekendMode = payroll.WeekendSunOnly
	in.Period = payroll.Period{Start: date("2024-06-01"), End: date("2024-06-09")}
	in.Punches = fullWeekPunches()
	in.Punches = append(in.Punches, workday("2024-06-01")...)
	in.Punches = append(in.Punches, workday("2024-06-08")...)

	m := ComputePeriodMetrics(in)

	// Both Saturdays are working days; the Sundays are not.
	assert.Equal(t, 7, m.Attendance.ScheduledWorkDays)
	assert.Equal(t, 7.0, m.Attendance.PresentDays)
}

func TestComputeHireBoundsExcludeDays(t *testing.T) {
	start := date("2024-06-05")
	in := baseInput()
	in.Employee.StartDate = &start
	in.Punches = fullWeekPunches()

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 3, m.Attendance.ScheduledWorkDays)
	assert.Equal(t, 3.0, m.Attendance.PresentDays)
}

func TestComputeFutureDaysNotEvaluated(t *testing.T) {
	in := baseInput()
	in.Today = date("2024-06-05")
	in.Punches = fullWeekPunches()

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 3, m.Attendance.ScheduledWorkDays, "Thu and Fri are still in the future")
	assert.Equal(t, 3.0, m.Attendance.PresentDays)
	assert.Empty(t, m.Warnings)
}

func TestComputeNoScanEmployeeAssumedPresent(t *testing.T) {
	in := baseInput()
	in.Employee.PayType = employee.PayTypeMonthlyNoScan

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 5.0, m.Attendance.PresentDays)
	assert.Equal(t, 5.0, m.Attendance.PayableUnits)
	assert.Equal(t, 0.0, m.Attendance.AbsentUnits)
	assert.Empty(t, m.Deductions)
}

func TestComputeDailyEmployeeNoSalaryDeductions(t *testing.T) {
	in := baseInput()
	in.Employee.PayType = employee.PayTypeDaily
	in.Employee.MonthlySalary = decimal.Zero
	in.Employee.DailyRate = decimal.NewFromInt(600)
	in.Punches = weekPunchesExcept("2024-06-05")

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 1.0, m.Attendance.AbsentUnits)
	assert.Equal(t, 4.0, m.Attendance.PayableUnits)
	// Daily staff lose the unit's pay directly; no deduction lines.
	assert.Empty(t, m.Deductions)
}

func TestComputeOverLimitLeaveDeduction(t *testing.T) {
	in := baseInput()
	// 4 working days of SICK against an entitlement of 3.
	in.Leaves = []leave.LeaveRequest{{
		EmployeeID: "emp-1", LeaveType: "SICK",
		StartDate: date("2024-06-03"), EndDate: date("2024-06-06"),
		Status: leave.RequestStatusApproved, Year: 2024,
	}}
	in.Punches = workday("2024-06-07")

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 4.0, m.Attendance.LeaveDays)
	assert.Equal(t, 4.0, m.Leave.DaysByType["SICK"])
	assert.Equal(t, 1.0, m.Leave.OverLimitDays["SICK"])

	item := deductionByName(t, m, "Over-limit SICK leave")
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(1000)), "got %s", item.Amount)
}

func TestComputeHalfDayFlagOnMultiDayLeaveCountsFullDays(t *testing.T) {
	session := leave.SessionMorning
	in := baseInput()
	// The half-day flag is only honored on single-date requests. This
	// malformed 4-day request must consume 1.0 per day in both the period
	// summary and the entitlement walk, tipping the 3-day SICK limit.
	in.Leaves = []leave.LeaveRequest{{
		EmployeeID: "emp-1", LeaveType: "SICK",
		StartDate: date("2024-06-03"), EndDate: date("2024-06-06"),
		IsHalfDay: true, HalfDaySession: &session,
		Status: leave.RequestStatusApproved, Year: 2024,
	}}
	in.Punches = workday("2024-06-07")

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 4.0, m.Attendance.LeaveDays)
	assert.Equal(t, 4.0, m.Leave.DaysByType["SICK"])
	assert.Equal(t, 1.0, m.Leave.OverLimitDays["SICK"])

	item := deductionByName(t, m, "Over-limit SICK leave")
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(1000)), "got %s", item.Amount)
}

func TestComputeOverLimitCountsYearToDateConsumption(t *testing.T) {
	in := baseInput()
	// Two SICK days consumed in May; two more in the period tip the total
	// over the 3-day entitlement by one day, inside this period.
	in.Leaves = []leave.LeaveRequest{
		{
			EmployeeID: "emp-1", LeaveType: "SICK",
			StartDate: date("2024-05-01"), EndDate: date("2024-05-02"),
			Status: leave.RequestStatusApproved, Year: 2024,
		},
		{
			EmployeeID: "emp-1", LeaveType: "SICK",
			StartDate: date("2024-06-03"), EndDate: date("2024-06-04"),
			Status: leave.RequestStatusApproved, Year: 2024,
		},
	}
	in.Punches = append(workday("2024-06-05"), append(workday("2024-06-06"), workday("2024-06-07")...)...)

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 2.0, m.Leave.DaysByType["SICK"], "only period days count toward the period summary")
	assert.Equal(t, 1.0, m.Leave.OverLimitDays["SICK"])

	item := deductionByName(t, m, "Over-limit SICK leave")
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(1000)), "got %s", item.Amount)
}

func TestComputeOverLimitDisallowProducesNoteNotDeduction(t *testing.T) {
	in := baseInput()
	// VACATION entitlement is 1 day with DISALLOW.
	in.Leaves = []leave.LeaveRequest{{
		EmployeeID: "emp-1", LeaveType: "VACATION",
		StartDate: date("2024-06-03"), EndDate: date("2024-06-04"),
		Status: leave.RequestStatusApproved, Year: 2024,
	}}
	in.Punches = append(workday("2024-06-05"), append(workday("2024-06-06"), workday("2024-06-07")...)...)

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 1.0, m.Leave.OverLimitDays["VACATION"])
	assertNoDeduction(t, m, "Over-limit VACATION leave")
	require.NotEmpty(t, m.CalcNotes)
	assert.Contains(t, m.CalcNotes[0], "VACATION")
	assert.Contains(t, m.CalcNotes[0], "DISALLOW")
}

func TestComputeSSOAppliedOnSecondHalfPeriod(t *testing.T) {
	in := baseInput()
	in.Employee.PayType = employee.PayTypeMonthlyNoScan
	in.Period = payroll.Period{Start: date("2024-06-16"), End: date("2024-06-30")}

	m := ComputePeriodMetrics(in)

	// 5% of the capped base 15000.
	item := deductionByName(t, m, "Social security")
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(750)), "got %s", item.Amount)
}

func TestComputeSSONotAppliedOnFirstHalfPeriod(t *testing.T) {
	in := baseInput()
	in.Employee.PayType = employee.PayTypeMonthlyNoScan
	in.Period = payroll.Period{Start: date("2024-06-01"), End: date("2024-06-15")}

	m := ComputePeriodMetrics(in)

	assertNoDeduction(t, m, "Social security")
}

func TestComputeSSOUncappedWhenSalaryBelowCap(t *testing.T) {
	in := baseInput()
	in.Employee.PayType = employee.PayTypeMonthlyNoScan
	in.Employee.MonthlySalary = decimal.NewFromInt(12000)
	in.Period = payroll.Period{Start: date("2024-06-16"), End: date("2024-06-30")}

	m := ComputePeriodMetrics(in)

	item := deductionByName(t, m, "Social security")
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(600)), "got %s", item.Amount)
}

func TestComputeInvalidPolicyTimesDegradeToDefaults(t *testing.T) {
	in := baseInput()
	in.Settings.WorkStart = "9am"
	in.Punches = fullWeekPunches()

	m := ComputePeriodMetrics(in)

	assert.Equal(t, 5.0, m.Attendance.PresentDays)
	require.NotEmpty(t, m.CalcNotes)
	assert.Contains(t, m.CalcNotes[0], "9am")
}
