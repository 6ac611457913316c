package payroll

import "context"

type PayrollService interface {
	// PreviewMetrics computes period metrics without persisting anything.
	PreviewMetrics(ctx context.Context, req GeneratePayslipRequest) (PeriodMetrics, error)
	// GeneratePayslip computes metrics and persists a draft payslip,
	// overwriting an existing draft for the same employee and period.
	GeneratePayslip(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)
	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, filter PayslipFilter) (ListPayslipResponse, error)
	GetHRSettings(ctx context.Context) (HRSettingsResponse, error)
}
