package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/payroll"
	"github.com/backoffice-th/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	PreviewMetrics(w http.ResponseWriter, r *http.Request)
	GeneratePayslip(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	GetHRSettings(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// PreviewMetrics implements PayrollHandler. Computes period metrics without
// persisting anything, for the HR review screen.
func (h *PayrollHandlerImpl) PreviewMetrics(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayslipRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("PreviewMetrics decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	metrics, err := h.payrollService.PreviewMetrics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, metrics)
}

// GeneratePayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) GeneratePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayslipRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GeneratePayslip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	slip, err := h.payrollService.GeneratePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip draft generated successfully", slip)
}

// GetPayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	slip, err := h.payrollService.GetPayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slip)
}

// ListPayslips implements PayrollHandler.
func (h *PayrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	year, _ := strconv.Atoi(query.Get("year"))

	filter := payroll.PayslipFilter{
		EmployeeID: query.Get("employee_id"),
		Year:       year,
		Page:       page,
		Limit:      limit,
	}

	list, err := h.payrollService.ListPayslips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((list.TotalCount + int64(list.Limit) - 1) / int64(list.Limit))
	response.SuccessWithMeta(w, list.Data, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: totalPages,
	})
}

// GetHRSettings implements PayrollHandler.
func (h *PayrollHandlerImpl) GetHRSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.payrollService.GetHRSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}
