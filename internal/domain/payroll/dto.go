package payroll

import (
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayslipRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"` // YYYY-MM-DD
	PeriodEnd   string `json:"period_end"`   // YYYY-MM-DD
}

func (r GeneratePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
		}
		if start.Year() != end.Year() {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period must not span calendar years"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the parsed pay period. Call only after Validate.
func (r GeneratePayslipRequest) Period() Period {
	start, _ := time.Parse("2006-01-02", r.PeriodStart)
	end, _ := time.Parse("2006-01-02", r.PeriodEnd)
	return Period{Start: start, End: end}
}

type PayslipResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	BasePay         decimal.Decimal `json:"base_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
	Metrics         PeriodMetrics   `json:"metrics"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
}

type ListPayslipResponse struct {
	Data       []PayslipResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type PayslipFilter struct {
	EmployeeID string
	Year       int
	Page       int
	Limit      int
}

type HRSettingsResponse struct {
	WorkStart               string          `json:"work_start"`
	GraceMinutes            int             `json:"grace_minutes"`
	AbsentCutoff            string          `json:"absent_cutoff"`
	WeekendMode             string          `json:"weekend_mode"`
	Entitlements            Entitlements    `json:"entitlements"`
	SSOEmployeePercent      decimal.Decimal `json:"sso_employee_percent"`
	SSOMonthlyCap           decimal.Decimal `json:"sso_monthly_cap"`
	SalaryDeductionBaseDays int             `json:"salary_deduction_base_days"`
}

// MapToPayslipResponse converts a Payslip entity to its response shape.
func MapToPayslipResponse(p Payslip) PayslipResponse {
	employeeName := ""
	if p.EmployeeName != nil {
		employeeName = *p.EmployeeName
	}

	return PayslipResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		EmployeeName:    employeeName,
		PeriodStart:     p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       p.PeriodEnd.Format("2006-01-02"),
		BasePay:         p.BasePay,
		TotalDeductions: p.TotalDeductions,
		NetPay:          p.NetPay,
		Metrics:         p.Metrics,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}
