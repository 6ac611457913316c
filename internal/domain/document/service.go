package document

import "context"

type DocumentService interface {
	// Allocate assigns the next document number for the request's category and
	// fiscal year and persists the document atomically.
	Allocate(ctx context.Context, req CreateDocumentRequest, createdBy *string) (DocumentResponse, error)
	GetByID(ctx context.Context, id string) (DocumentResponse, error)
	GetByDocNo(ctx context.Context, category Category, docNo string) (DocumentResponse, error)
	List(ctx context.Context, filter DocumentFilter) (ListDocumentResponse, error)
	UpdateStatus(ctx context.Context, req UpdateDocumentStatusRequest) (DocumentResponse, error)
}
