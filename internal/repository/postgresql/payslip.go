package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/payroll"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

// Upsert implements payroll.PayslipRepository. A regenerated draft for the
// same (employee, period) keeps the original row id.
func (r *payslipRepositoryImpl) Upsert(ctx context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	if slip.ID == "" {
		slip.ID = uuid.NewString()
	}

	query := `
		INSERT INTO payslips (id, employee_id, period_start, period_end, base_pay, total_deductions, net_pay, metrics, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (employee_id, period_start, period_end)
		DO UPDATE SET base_pay = EXCLUDED.base_pay,
					  total_deductions = EXCLUDED.total_deductions,
					  net_pay = EXCLUDED.net_pay,
					  metrics = EXCLUDED.metrics,
					  status = EXCLUDED.status,
					  updated_at = NOW()
		RETURNING id, employee_id, period_start, period_end, base_pay, total_deductions, net_pay, metrics, status, created_at, updated_at
	`

	var created payroll.Payslip
	err := q.QueryRow(ctx, query,
		slip.ID, slip.EmployeeID, slip.PeriodStart, slip.PeriodEnd,
		slip.BasePay, slip.TotalDeductions, slip.NetPay, slip.Metrics, slip.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.PeriodStart, &created.PeriodEnd,
		&created.BasePay, &created.TotalDeductions, &created.NetPay, &created.Metrics,
		&created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("upsert payslip: %w", err)
	}

	return created, nil
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.period_start, p.period_end,
			   p.base_pay, p.total_deductions, p.net_pay, p.metrics, p.status,
			   p.created_at, p.updated_at,
			   e.full_name AS employee_name
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.id = $1
	`

	var slip payroll.Payslip
	err := q.QueryRow(ctx, query, id).Scan(
		&slip.ID, &slip.EmployeeID, &slip.PeriodStart, &slip.PeriodEnd,
		&slip.BasePay, &slip.TotalDeductions, &slip.NetPay, &slip.Metrics, &slip.Status,
		&slip.CreatedAt, &slip.UpdatedAt, &slip.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, err
	}

	return slip, nil
}

// List implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) List(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argPos))
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM p.period_start) = $%d", argPos))
		args = append(args, filter.Year)
		argPos++
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM payslips p WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.employee_id, p.period_start, p.period_end,
			   p.base_pay, p.total_deductions, p.net_pay, p.metrics, p.status,
			   p.created_at, p.updated_at,
			   e.full_name AS employee_name
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		WHERE %s
		ORDER BY p.period_start DESC, e.full_name
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	slips := make([]payroll.Payslip, 0)
	for rows.Next() {
		var slip payroll.Payslip
		if err := rows.Scan(
			&slip.ID, &slip.EmployeeID, &slip.PeriodStart, &slip.PeriodEnd,
			&slip.BasePay, &slip.TotalDeductions, &slip.NetPay, &slip.Metrics, &slip.Status,
			&slip.CreatedAt, &slip.UpdatedAt, &slip.EmployeeName,
		); err != nil {
			return nil, 0, err
		}
		slips = append(slips, slip)
	}

	return slips, total, rows.Err()
}
