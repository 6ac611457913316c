package payroll

import "errors"

var (
	ErrPayslipNotFound      = errors.New("Payslip not found")
	ErrPayslipAlreadyFinal  = errors.New("Payslip is already finalized")
	ErrHRSettingsNotFound   = errors.New("HR settings not found")
	ErrInvalidPayrollPeriod = errors.New("Invalid payroll period")
)
