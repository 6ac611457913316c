package document

import (
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateDocumentRequest struct {
	Category  string          `json:"category"`
	DocDate   string          `json:"doc_date"` // YYYY-MM-DD
	Title     string          `json:"title"`
	PartyName string          `json:"party_name"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     *string         `json:"notes,omitempty"`

	// ProvidedDocID makes retried submissions idempotent: resubmitting with
	// the same id returns the already-created document without consuming a
	// new number.
	ProvidedDocID *string `json:"provided_doc_id,omitempty"`
}

func (r CreateDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Category(r.Category).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be one of PURCHASE, INVOICE, RECEIPT, BILLING_NOTE, QUOTATION"})
	}
	if _, ok := validator.IsValidDate(r.DocDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "doc_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDocumentStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r UpdateDocumentStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	switch Status(r.Status) {
	case StatusIssued, StatusCancelled:
	default:
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be issued or cancelled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DocumentResponse struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	DocNo     string          `json:"doc_no"`
	DocDate   string          `json:"doc_date"`
	Title     string          `json:"title"`
	PartyName string          `json:"party_name"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     *string         `json:"notes,omitempty"`
	Status    string          `json:"status"`
	CreatedBy *string         `json:"created_by,omitempty"`
	CreatedAt string          `json:"created_at"`
}

type ListDocumentResponse struct {
	Data       []DocumentResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type DocumentFilter struct {
	Category Category
	Page     int
	Limit    int
}

// MapToResponse converts a BusinessDocument entity to its response shape.
func MapToResponse(doc BusinessDocument) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		Category:  string(doc.Category),
		DocNo:     doc.DocNo,
		DocDate:   doc.DocDate.Format("2006-01-02"),
		Title:     doc.Title,
		PartyName: doc.PartyName,
		Amount:    doc.Amount,
		Notes:     doc.Notes,
		Status:    string(doc.Status),
		CreatedBy: doc.CreatedBy,
		CreatedAt: doc.CreatedAt.Format(time.RFC3339),
	}
}
