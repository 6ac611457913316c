package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/document"
	"github.com/backoffice-th/backoffice-backend-go/internal/handler/http/response"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type DocumentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Lookup(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type DocumentHandlerImpl struct {
	documentService document.DocumentService
	jwtService      jwt.Service
}

func NewDocumentHandler(documentService document.DocumentService, jwtService jwt.Service) DocumentHandler {
	return &DocumentHandlerImpl{
		documentService: documentService,
		jwtService:      jwtService,
	}
}

// Create implements DocumentHandler. Allocates the next document number and
// persists the document in one call.
func (h *DocumentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req document.CreateDocumentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create document decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var createdBy *string
	if userID, ok := h.jwtService.UserIDFromContext(r.Context()); ok {
		createdBy = &userID
	}

	doc, err := h.documentService.Allocate(r.Context(), req, createdBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document created successfully", doc)
}

// GetByID implements DocumentHandler.
func (h *DocumentHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Document ID is required", nil)
		return
	}

	doc, err := h.documentService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, doc)
}

// Lookup implements DocumentHandler. Finds a document by its assigned number.
func (h *DocumentHandlerImpl) Lookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	docNo := query.Get("doc_no")
	if docNo == "" {
		response.BadRequest(w, "doc_no is required", nil)
		return
	}

	doc, err := h.documentService.GetByDocNo(r.Context(), document.Category(query.Get("category")), docNo)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, doc)
}

// List implements DocumentHandler.
func (h *DocumentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := document.DocumentFilter{
		Category: document.Category(query.Get("category")),
		Page:     page,
		Limit:    limit,
	}

	list, err := h.documentService.List(r.Context(), filter)
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

// UpdateStatus implements DocumentHandler.
func (h *DocumentHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Document ID is required", nil)
		return
	}

	var req document.UpdateDocumentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update document status decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	doc, err := h.documentService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document status updated successfully", doc)
}
