package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/attendance"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/employee"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/leave"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	employees   employee.EmployeeRepository
	settings    payroll.HRSettingsRepository
	holidays    payroll.HolidayRepository
	leaves      leave.LeaveRequestRepository
	punches     attendance.PunchRepository
	adjustments attendance.AdjustmentRepository
	payslips    payroll.PayslipRepository

	// now is swappable in tests; period evaluation never looks past it.
	now func() time.Time
}

func NewPayrollService(
	employees employee.EmployeeRepository,
	settings payroll.HRSettingsRepository,
	holidays payroll.HolidayRepository,
	leaves leave.LeaveRequestRepository,
	punches attendance.PunchRepository,
	adjustments attendance.AdjustmentRepository,
	payslips payroll.PayslipRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		employees:   employees,
		settings:    settings,
		holidays:    holidays,
		leaves:      leaves,
		punches:     punches,
		adjustments: adjustments,
		payslips:    payslips,
		now:         time.Now,
	}
}

// PreviewMetrics implements payroll.PayrollService.
func (s *PayrollServiceImpl) PreviewMetrics(ctx context.Context, req payroll.GeneratePayslipRequest) (payroll.PeriodMetrics, error) {
	in, err := s.loadInput(ctx, req)
	if err != nil {
		return payroll.PeriodMetrics{}, err
	}
	return ComputePeriodMetrics(in), nil
}

// GeneratePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, req payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error) {
	in, err := s.loadInput(ctx, req)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	metrics := ComputePeriodMetrics(in)

	basePay := basePayFor(in.Employee, metrics)
	totalDeductions := decimal.Zero
	for _, d := range metrics.Deductions {
		totalDeductions = totalDeductions.Add(d.Amount)
	}

	slip := payroll.Payslip{
		EmployeeID:      in.Employee.ID,
		PeriodStart:     in.Period.Start,
		PeriodEnd:       in.Period.End,
		BasePay:         basePay,
		TotalDeductions: totalDeductions,
		NetPay:          basePay.Sub(totalDeductions),
		Metrics:         metrics,
		Status:          payroll.PayslipStatusDraft,
	}

	saved, err := s.payslips.Upsert(ctx, slip)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to save payslip: %w", err)
	}

	if saved.EmployeeName == nil {
		saved.EmployeeName = &in.Employee.FullName
	}
	return payroll.MapToPayslipResponse(saved), nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	slip, err := s.payslips.GetByID(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.MapToPayslipResponse(slip), nil
}

// ListPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) (payroll.ListPayslipResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	slips, total, err := s.payslips.List(ctx, filter)
	if err != nil {
		return payroll.ListPayslipResponse{}, err
	}

	responses := make([]payroll.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		responses = append(responses, payroll.MapToPayslipResponse(slip))
	}

	return payroll.ListPayslipResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// GetHRSettings implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetHRSettings(ctx context.Context) (payroll.HRSettingsResponse, error) {
	settings, err := s.effectiveSettings(ctx)
	if err != nil {
		return payroll.HRSettingsResponse{}, err
	}

	return payroll.HRSettingsResponse{
		WorkStart:               settings.WorkStart,
		GraceMinutes:            settings.GraceMinutes,
		AbsentCutoff:            settings.AbsentCutoff,
		WeekendMode:             string(settings.WeekendMode),
		Entitlements:            settings.Entitlements,
		SSOEmployeePercent:      settings.SSOEmployeePercent,
		SSOMonthlyCap:           settings.SSOMonthlyCap,
		SalaryDeductionBaseDays: settings.SalaryDeductionBaseDays,
	}, nil
}

// loadInput validates the request and fetches every record the metrics engine
// needs: policy settings, holidays and attendance for the period, plus the
// whole year's approved leave for entitlement tracking.
func (s *PayrollServiceImpl) loadInput(ctx context.Context, req payroll.GeneratePayslipRequest) (MetricsInput, error) {
	if err := req.Validate(); err != nil {
		return MetricsInput{}, err
	}
	period := req.Period()

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return MetricsInput{}, err
	}

	settings, err := s.effectiveSettings(ctx)
	if err != nil {
		return MetricsInput{}, err
	}

	// The entitlement walk spans the whole calendar year, so holiday
	// exclusions must too: a leave day landing on an out-of-period holiday is
	// not consumption and must not tip a later period over the limit.
	yearStart := time.Date(period.Start.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(period.Start.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	holidays, err := s.holidays.ListBetween(ctx, yearStart, yearEnd)
	if err != nil {
		return MetricsInput{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	leaves, err := s.leaves.ListApprovedByEmployeeYear(ctx, emp.ID, period.Start.Year())
	if err != nil {
		return MetricsInput{}, fmt.Errorf("failed to load leave requests: %w", err)
	}

	// Punches are timestamps; include the whole last day.
	punchesTo := period.End.AddDate(0, 0, 1)
	punches, err := s.punches.ListByEmployeeBetween(ctx, emp.ID, period.Start, punchesTo)
	if err != nil {
		return MetricsInput{}, fmt.Errorf("failed to load punches: %w", err)
	}

	adjustments, err := s.adjustments.ListByEmployeeBetween(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return MetricsInput{}, fmt.Errorf("failed to load adjustments: %w", err)
	}

	return MetricsInput{
		Employee:    emp,
		Period:      period,
		Settings:    settings,
		Holidays:    holidays,
		Leaves:      leaves,
		Punches:     punches,
		Adjustments: adjustments,
		Today:       s.now(),
	}, nil
}

// effectiveSettings returns the stored policy, or the company defaults when
// no settings row has ever been saved. Payroll must stay runnable for a
// freshly provisioned company.
func (s *PayrollServiceImpl) effectiveSettings(ctx context.Context) (payroll.HRSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrHRSettingsNotFound) {
			return defaultHRSettings(), nil
		}
		return payroll.HRSettings{}, err
	}
	return settings, nil
}

// defaultHRSettings mirrors the statutory Thai social-insurance figures and
// the common office schedule.
func defaultHRSettings() payroll.HRSettings {
	return payroll.HRSettings{
		WorkStart:               defaultWorkStart,
		GraceMinutes:            15,
		AbsentCutoff:            defaultAbsentCutoff,
		WeekendMode:             payroll.WeekendSatSun,
		SSOEmployeePercent:      decimal.NewFromInt(5),
		SSOMonthlyCap:           decimal.NewFromInt(15000),
		SalaryDeductionBaseDays: defaultBaseDays,
	}
}

// basePayFor is the gross pay before deductions. Monthly staff earn the full
// salary regardless of attendance (absence is handled as a deduction); daily
// staff earn their rate per payable unit.
func basePayFor(emp employee.Employee, metrics payroll.PeriodMetrics) decimal.Decimal {
	switch emp.PayType {
	case employee.PayTypeDaily:
		return emp.DailyRate.Mul(decimal.NewFromFloat(metrics.Attendance.PayableUnits))
	default:
		return emp.MonthlySalary
	}
}
