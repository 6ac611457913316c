package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/attendance"
	"github.com/backoffice-th/backoffice-backend-go/internal/handler/http/response"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/jwt"
)

type AttendanceHandler interface {
	RecordPunch(w http.ResponseWriter, r *http.Request)
	UpsertAdjustment(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
	}
}

// RecordPunch implements AttendanceHandler.
func (h *AttendanceHandlerImpl) RecordPunch(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordPunchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordPunch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	punch, err := h.attendanceService.RecordPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded successfully", punch)
}

// UpsertAdjustment implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpsertAdjustment(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertAdjustmentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertAdjustment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var createdBy *string
	if userID, ok := h.jwtService.UserIDFromContext(r.Context()); ok {
		createdBy = &userID
	}

	adj, err := h.attendanceService.UpsertAdjustment(r.Context(), req, createdBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment saved successfully", adj)
}
