package postgresql

import (
	"context"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/leave"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// ListApprovedByEmployeeYear implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, start_date, end_date,
			   is_half_day, half_day_session, reason, status, year,
			   approved_by, approved_at, submitted_at, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1 AND year = $2 AND status = $3
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, year, leave.RequestStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.LeaveType, &lr.StartDate, &lr.EndDate,
			&lr.IsHalfDay, &lr.HalfDaySession, &lr.Reason, &lr.Status, &lr.Year,
			&lr.ApprovedBy, &lr.ApprovedAt, &lr.SubmittedAt, &lr.CreatedAt, &lr.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}
