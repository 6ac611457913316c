package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/payroll"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type hrSettingsRepositoryImpl struct {
	db *database.DB
}

func NewHRSettingsRepository(db *database.DB) payroll.HRSettingsRepository {
	return &hrSettingsRepositoryImpl{db: db}
}

// Get implements payroll.HRSettingsRepository. The table holds a single
// policy row; id = 1 by convention.
func (r *hrSettingsRepositoryImpl) Get(ctx context.Context) (payroll.HRSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT work_start, grace_minutes, absent_cutoff, weekend_mode,
			   entitlements, sso_employee_percent, sso_monthly_cap,
			   salary_deduction_base_days, updated_at
		FROM hr_settings
		WHERE id = 1
	`

	var settings payroll.HRSettings
	err := q.QueryRow(ctx, query).Scan(
		&settings.WorkStart, &settings.GraceMinutes, &settings.AbsentCutoff, &settings.WeekendMode,
		&settings.Entitlements, &settings.SSOEmployeePercent, &settings.SSOMonthlyCap,
		&settings.SalaryDeductionBaseDays, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.HRSettings{}, payroll.ErrHRSettingsNotFound
		}
		return payroll.HRSettings{}, err
	}

	return settings, nil
}

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) payroll.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// ListBetween implements payroll.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT holiday_date FROM company_holidays WHERE holiday_date >= $1 AND holiday_date <= $2 ORDER BY holiday_date`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		holidays = append(holidays, d)
	}

	return holidays, rows.Err()
}
