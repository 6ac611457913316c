package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/attendance"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// Create implements attendance.PunchRepository.
func (r *punchRepositoryImpl) Create(ctx context.Context, punch attendance.Punch) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	if punch.ID == "" {
		punch.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_punches (id, employee_id, punch_type, punched_at, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, employee_id, punch_type, punched_at, created_at
	`

	var created attendance.Punch
	err := q.QueryRow(ctx, query, punch.ID, punch.EmployeeID, punch.Type, punch.PunchedAt).Scan(
		&created.ID, &created.EmployeeID, &created.Type, &created.PunchedAt, &created.CreatedAt,
	)
	if err != nil {
		return attendance.Punch{}, fmt.Errorf("create punch: %w", err)
	}

	return created, nil
}

// ListByEmployeeBetween implements attendance.PunchRepository.
func (r *punchRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, punch_type, punched_at, created_at
		FROM attendance_punches
		WHERE employee_id = $1 AND punched_at >= $2 AND punched_at <= $3
		ORDER BY punched_at
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	punches := make([]attendance.Punch, 0)
	for rows.Next() {
		var p attendance.Punch
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Type, &p.PunchedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}

	return punches, rows.Err()
}

type adjustmentRepositoryImpl struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) attendance.AdjustmentRepository {
	return &adjustmentRepositoryImpl{db: db}
}

// Upsert implements attendance.AdjustmentRepository. One adjustment per
// employee per date; a later correction replaces the earlier one.
func (r *adjustmentRepositoryImpl) Upsert(ctx context.Context, adj attendance.Adjustment) (attendance.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	if adj.ID == "" {
		adj.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_adjustments (id, employee_id, adjust_date, adjust_type, adjusted_in, adjusted_out, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (employee_id, adjust_date)
		DO UPDATE SET adjust_type = EXCLUDED.adjust_type,
					  adjusted_in = EXCLUDED.adjusted_in,
					  adjusted_out = EXCLUDED.adjusted_out,
					  created_by = EXCLUDED.created_by
		RETURNING id, employee_id, adjust_date, adjust_type, adjusted_in, adjusted_out, created_by, created_at
	`

	var created attendance.Adjustment
	err := q.QueryRow(ctx, query,
		adj.ID, adj.EmployeeID, adj.Date, adj.Type, adj.AdjustedIn, adj.AdjustedOut, adj.CreatedBy,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Date, &created.Type,
		&created.AdjustedIn, &created.AdjustedOut, &created.CreatedBy, &created.CreatedAt,
	)
	if err != nil {
		return attendance.Adjustment{}, fmt.Errorf("upsert adjustment: %w", err)
	}

	return created, nil
}

// ListByEmployeeBetween implements attendance.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, adjust_date, adjust_type, adjusted_in, adjusted_out, created_by, created_at
		FROM attendance_adjustments
		WHERE employee_id = $1 AND adjust_date >= $2 AND adjust_date <= $3
		ORDER BY adjust_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	adjustments := make([]attendance.Adjustment, 0)
	for rows.Next() {
		var a attendance.Adjustment
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.Type,
			&a.AdjustedIn, &a.AdjustedOut, &a.CreatedBy, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}

	return adjustments, rows.Err()
}
