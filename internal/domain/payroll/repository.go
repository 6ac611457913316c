package payroll

import (
	"context"
	"time"
)

type HRSettingsRepository interface {
	// Get returns the singleton policy row, or ErrHRSettingsNotFound when the
	// company has never saved settings.
	Get(ctx context.Context) (HRSettings, error)
}

type HolidayRepository interface {
	// ListBetween returns configured holiday dates in [from, to].
	ListBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

type PayslipRepository interface {
	// Upsert inserts the payslip or, when a draft already exists for the same
	// (employee, period), overwrites it in place keeping its id.
	Upsert(ctx context.Context, slip Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	List(ctx context.Context, filter PayslipFilter) ([]Payslip, int64, error)
}
