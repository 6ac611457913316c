package attendance

import "context"

type AttendanceService interface {
	// RecordPunch appends a raw clock action for an employee.
	RecordPunch(ctx context.Context, req RecordPunchRequest) (PunchResponse, error)
	// UpsertAdjustment stores an HR correction for one employee on one date,
	// replacing an earlier correction for the same date. createdBy is the
	// acting HR user, when known.
	UpsertAdjustment(ctx context.Context, req UpsertAdjustmentRequest, createdBy *string) (AdjustmentResponse, error)
}
