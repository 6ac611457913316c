package attendance

import (
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/validator"
)

type RecordPunchRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`       // IN or OUT
	PunchedAt  string `json:"punched_at"` // RFC3339
}

func (r RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if t := PunchType(r.Type); t != PunchIn && t != PunchOut {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be IN or OUT"})
	}
	if _, err := time.Parse(time.RFC3339, r.PunchedAt); err != nil {
		errs = append(errs, validator.ValidationError{Field: "punched_at", Message: "must be a valid RFC3339 timestamp"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertAdjustmentRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Type        string  `json:"type"` // ADD_RECORD or FORGIVE_LATE
	AdjustedIn  *string `json:"adjusted_in,omitempty"`  // RFC3339
	AdjustedOut *string `json:"adjusted_out,omitempty"` // RFC3339
}

func (r UpsertAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	adjType := AdjustmentType(r.Type)
	if adjType != AdjustmentAddRecord && adjType != AdjustmentForgiveLate {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be ADD_RECORD or FORGIVE_LATE"})
	}
	if adjType == AdjustmentAddRecord && r.AdjustedIn == nil && r.AdjustedOut == nil {
		errs = append(errs, validator.ValidationError{Field: "adjusted_in", Message: "ADD_RECORD requires adjusted_in or adjusted_out"})
	}
	if r.AdjustedIn != nil {
		if _, err := time.Parse(time.RFC3339, *r.AdjustedIn); err != nil {
			errs = append(errs, validator.ValidationError{Field: "adjusted_in", Message: "must be a valid RFC3339 timestamp"})
		}
	}
	if r.AdjustedOut != nil {
		if _, err := time.Parse(time.RFC3339, *r.AdjustedOut); err != nil {
			errs = append(errs, validator.ValidationError{Field: "adjusted_out", Message: "must be a valid RFC3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	PunchedAt  string `json:"punched_at"`
	CreatedAt  string `json:"created_at"`
}

type AdjustmentResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	AdjustedIn  *string `json:"adjusted_in,omitempty"`
	AdjustedOut *string `json:"adjusted_out,omitempty"`
	CreatedBy   *string `json:"created_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// MapToPunchResponse converts a Punch entity to its response shape.
func MapToPunchResponse(p Punch) PunchResponse {
	return PunchResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		Type:       string(p.Type),
		PunchedAt:  p.PunchedAt.Format(time.RFC3339),
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}

// MapToAdjustmentResponse converts an Adjustment entity to its response shape.
func MapToAdjustmentResponse(a Adjustment) AdjustmentResponse {
	var in, out *string
	if a.AdjustedIn != nil {
		s := a.AdjustedIn.Format(time.RFC3339)
		in = &s
	}
	if a.AdjustedOut != nil {
		s := a.AdjustedOut.Format(time.RFC3339)
		out = &s
	}

	return AdjustmentResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Date:        a.Date.Format("2006-01-02"),
		Type:        string(a.Type),
		AdjustedIn:  in,
		AdjustedOut: out,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}
