package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/attendance"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/employee"
)

type AttendanceServiceImpl struct {
	employees   employee.EmployeeRepository
	punches     attendance.PunchRepository
	adjustments attendance.AdjustmentRepository
}

func NewAttendanceService(
	employees employee.EmployeeRepository,
	punches attendance.PunchRepository,
	adjustments attendance.AdjustmentRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		employees:   employees,
		punches:     punches,
		adjustments: adjustments,
	}
}

// RecordPunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordPunch(ctx context.Context, req attendance.RecordPunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.PunchResponse{}, err
	}

	punchedAt, _ := time.Parse(time.RFC3339, req.PunchedAt)
	created, err := s.punches.Create(ctx, attendance.Punch{
		EmployeeID: req.EmployeeID,
		Type:       attendance.PunchType(req.Type),
		PunchedAt:  punchedAt,
	})
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("create punch: %w", err)
	}

	return attendance.MapToPunchResponse(created), nil
}

// UpsertAdjustment implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpsertAdjustment(ctx context.Context, req attendance.UpsertAdjustmentRequest, createdBy *string) (attendance.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AdjustmentResponse{}, err
	}

	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AdjustmentResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	adj := attendance.Adjustment{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Type:       attendance.AdjustmentType(req.Type),
		CreatedBy:  createdBy,
	}
	if req.AdjustedIn != nil {
		in, _ := time.Parse(time.RFC3339, *req.AdjustedIn)
		adj.AdjustedIn = &in
	}
	if req.AdjustedOut != nil {
		out, _ := time.Parse(time.RFC3339, *req.AdjustedOut)
		adj.AdjustedOut = &out
	}

	stored, err := s.adjustments.Upsert(ctx, adj)
	if err != nil {
		return attendance.AdjustmentResponse{}, fmt.Errorf("upsert adjustment: %w", err)
	}

	return attendance.MapToAdjustmentResponse(stored), nil
}
