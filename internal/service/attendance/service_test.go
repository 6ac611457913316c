package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/attendance"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/employee"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakePunchRepo struct {
	punches []attendance.Punch
}

func (f *fakePunchRepo) Create(_ context.Context, p attendance.Punch) (attendance.Punch, error) {
	p.ID = "punch-1"
	p.CreatedAt = time.Now()
	f.punches = append(f.punches, p)
	return p, nil
}

func (f *fakePunchRepo) ListByEmployeeBetween(context.Context, string, time.Time, time.Time) ([]attendance.Punch, error) {
	return f.punches, nil
}

type fakeAdjustmentRepo struct {
	byDate map[string]attendance.Adjustment
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{byDate: make(map[string]attendance.Adjustment)}
}

func (f *fakeAdjustmentRepo) Upsert(_ context.Context, a attendance.Adjustment) (attendance.Adjustment, error) {
	key := a.EmployeeID + "/" + a.Date.Format("2006-01-02")
	if existing, ok := f.byDate[key]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	} else {
		a.ID = "adj-" + key
		a.CreatedAt = time.Now()
	}
	f.byDate[key] = a
	return a, nil
}

func (f *fakeAdjustmentRepo) ListByEmployeeBetween(context.Context, string, time.Time, time.Time) ([]attendance.Adjustment, error) {
	out := make([]attendance.Adjustment, 0, len(f.byDate))
	for _, a := range f.byDate {
		out = append(out, a)
	}
	return out, nil
}

type attendanceFixture struct {
	service     attendance.AttendanceService
	punches     *fakePunchRepo
	adjustments *fakeAdjustmentRepo
}

func newAttendanceFixture() attendanceFixture {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", FullName: "Somsri Jaidee", IsActive: true},
	}}
	punches := &fakePunchRepo{}
	adjustments := newFakeAdjustmentRepo()

	return attendanceFixture{
		service:     NewAttendanceService(employees, punches, adjustments),
		punches:     punches,
		adjustments: adjustments,
	}
}

func strPtr(s string) *string { return &s }

func TestRecordPunch(t *testing.T) {
	fx := newAttendanceFixture()

	resp, err := fx.service.RecordPunch(context.Background(), attendance.RecordPunchRequest{
		EmployeeID: "emp-1",
		Type:       "IN",
		PunchedAt:  "2024-06-03T08:55:00+07:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "punch-1", resp.ID)
	assert.Equal(t, "IN", resp.Type)
	require.Len(t, fx.punches.punches, 1)
	assert.Equal(t, attendance.PunchIn, fx.punches.punches[0].Type)
}

func TestRecordPunchUnknownEmployee(t *testing.T) {
	fx := newAttendanceFixture()

	_, err := fx.service.RecordPunch(context.Background(), attendance.RecordPunchRequest{
		EmployeeID: "ghost",
		Type:       "IN",
		PunchedAt:  "2024-06-03T08:55:00+07:00",
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, fx.punches.punches)
}

func TestRecordPunchInvalidRequest(t *testing.T) {
	fx := newAttendanceFixture()

	_, err := fx.service.RecordPunch(context.Background(), attendance.RecordPunchRequest{
		EmployeeID: "emp-1",
		Type:       "SIDEWAYS",
		PunchedAt:  "not-a-timestamp",
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "punched_at")
	assert.Empty(t, fx.punches.punches)
}

func TestUpsertAdjustmentAddRecord(t *testing.T) {
	fx := newAttendanceFixture()

	resp, err := fx.service.UpsertAdjustment(context.Background(), attendance.UpsertAdjustmentRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-03",
		Type:       "ADD_RECORD",
		AdjustedIn: strPtr("2024-06-03T09:00:00+07:00"),
	}, strPtr("hr-1"))

	require.NoError(t, err)
	assert.Equal(t, "ADD_RECORD", resp.Type)
	require.NotNil(t, resp.AdjustedIn)
	require.NotNil(t, resp.CreatedBy)
	assert.Equal(t, "hr-1", *resp.CreatedBy)

	stored := fx.adjustments.byDate["emp-1/2024-06-03"]
	require.NotNil(t, stored.AdjustedIn)
	assert.Nil(t, stored.AdjustedOut)
}

func TestUpsertAdjustmentReplacesSameDate(t *testing.T) {
	fx := newAttendanceFixture()

	first, err := fx.service.UpsertAdjustment(context.Background(), attendance.UpsertAdjustmentRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-03",
		Type:       "ADD_RECORD",
		AdjustedIn: strPtr("2024-06-03T09:00:00+07:00"),
	}, nil)
	require.NoError(t, err)

	second, err := fx.service.UpsertAdjustment(context.Background(), attendance.UpsertAdjustmentRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-03",
		Type:       "FORGIVE_LATE",
	}, strPtr("hr-1"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, fx.adjustments.byDate, 1)
	assert.Equal(t, attendance.AdjustmentForgiveLate, fx.adjustments.byDate["emp-1/2024-06-03"].Type)
}

func TestUpsertAdjustmentAddRecordRequiresATime(t *testing.T) {
	fx := newAttendanceFixture()

	_, err := fx.service.UpsertAdjustment(context.Background(), attendance.UpsertAdjustmentRequest{
		EmployeeID: "emp-1",
		Date:       "2024-06-03",
		Type:       "ADD_RECORD",
	}, nil)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "adjusted_in")
	assert.Empty(t, fx.adjustments.byDate)
}

func TestUpsertAdjustmentUnknownEmployee(t *testing.T) {
	fx := newAttendanceFixture()

	_, err := fx.service.UpsertAdjustment(context.Background(), attendance.UpsertAdjustmentRequest{
		EmployeeID: "ghost",
		Date:       "2024-06-03",
		Type:       "FORGIVE_LATE",
	}, nil)

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, fx.adjustments.byDate)
}
