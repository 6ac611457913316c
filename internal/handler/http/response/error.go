package response

import (
	"errors"
	"net/http"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/document"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/employee"
	"github.com/backoffice-th/backoffice-backend-go/internal/domain/payroll"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Document domain errors
	case errors.Is(err, document.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, document.ErrPrefixNotConfigured):
		BadRequest(w, "Document numbering is not configured for this category", nil)
	case errors.Is(err, document.ErrSequenceExhausted):
		Conflict(w, "Document number sequence exhausted; contact an administrator")
	case errors.Is(err, document.ErrInvalidCategory):
		BadRequest(w, "Invalid document category", nil)
	case errors.Is(err, document.ErrInvalidStatusTransition):
		Conflict(w, "Document status transition not allowed")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipAlreadyFinal):
		Conflict(w, "Payslip is already finalized")
	case errors.Is(err, payroll.ErrHRSettingsNotFound):
		NotFound(w, "HR settings have not been configured")
	case errors.Is(err, payroll.ErrInvalidPayrollPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
