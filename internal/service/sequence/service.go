package sequence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/document"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/database"
)

// defaultMaxAttempts bounds the advisory collision probe. The probe is
// best-effort only; uniqueness is guaranteed by the monotonic counter inside
// the transaction plus the unique (category, doc_no) index.
const defaultMaxAttempts = 50

type SequenceServiceImpl struct {
	tx          database.Transactor
	docs        document.DocumentRepository
	counters    document.CounterRepository
	settings    document.NumberSettingsRepository
	maxAttempts int
}

func NewSequenceService(
	tx database.Transactor,
	docs document.DocumentRepository,
	counters document.CounterRepository,
	settings document.NumberSettingsRepository,
) document.DocumentService {
	return &SequenceServiceImpl{
		tx:          tx,
		docs:        docs,
		counters:    counters,
		settings:    settings,
		maxAttempts: defaultMaxAttempts,
	}
}

// Allocate implements document.DocumentService.
//
// The allocation runs in three phases:
//  1. outside the transaction, scan the collection for the highest doc_no
//     under the (prefix, year) number prefix - this baseline restores
//     monotonicity after a counter reset or a crash mid-write;
//  2. still outside, probe forward past any numbers already taken (bounded,
//     advisory only);
//  3. inside one transaction, take max(counter, probe)+1, insert the document
//     and move the counter. Concurrent allocations of the same key serialize
//     through the transactor's conflict retry.
func (s *SequenceServiceImpl) Allocate(ctx context.Context, req document.CreateDocumentRequest, createdBy *string) (document.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return document.DocumentResponse{}, err
	}

	category := document.Category(req.Category)
	docDate, _ := time.Parse("2006-01-02", req.DocDate)
	year := NormalizeFiscalYear(docDate.Year())

	// Idempotent retry: a caller re-submitting with the same provided id gets
	// the already-created document back, with no counter movement.
	if req.ProvidedDocID != nil && *req.ProvidedDocID != "" {
		existing, err := s.docs.GetByID(ctx, *req.ProvidedDocID)
		if err == nil {
			return document.MapToResponse(existing), nil
		}
		if !errors.Is(err, document.ErrDocumentNotFound) {
			return document.DocumentResponse{}, fmt.Errorf("failed to check provided document id: %w", err)
		}
	}

	settings, err := s.settings.GetByCategory(ctx, category)
	if err != nil {
		// Missing prefix configuration fails before any write. Allocating
		// under a silent default prefix would scatter unrelated number series
		// through the collection.
		return document.DocumentResponse{}, err
	}
	prefix := settings.Prefix
	numberPrefix := document.NumberPrefix(prefix, year)

	baseline, err := s.collectionBaseline(ctx, category, numberPrefix)
	if err != nil {
		return document.DocumentResponse{}, err
	}

	probe, err := s.probePastCollisions(ctx, category, prefix, year, baseline)
	if err != nil {
		return document.DocumentResponse{}, err
	}

	counterKey := document.CounterKey(category, prefix)

	var created document.BusinessDocument
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		counter, err := s.counters.Get(txCtx, year, counterKey)
		if err != nil {
			return fmt.Errorf("failed to read counter: %w", err)
		}

		next := max(counter, probe) + 1
		docNo := document.FormatDocNo(prefix, year, next)

		doc := document.BusinessDocument{
			Category:  category,
			DocNo:     docNo,
			DocDate:   docDate,
			Title:     req.Title,
			PartyName: req.PartyName,
			Amount:    req.Amount,
			Notes:     req.Notes,
			Status:    document.StatusDraft,
			CreatedBy: createdBy,
		}
		if req.ProvidedDocID != nil && *req.ProvidedDocID != "" {
			doc.ID = *req.ProvidedDocID
		}

		created, err = s.docs.Create(txCtx, doc)
		if err != nil {
			return err
		}

		return s.counters.Set(txCtx, year, counterKey, next)
	})
	if err != nil {
		return document.DocumentResponse{}, err
	}

	return document.MapToResponse(created), nil
}

// collectionBaseline returns the highest sequence present on a persisted
// document for the number prefix, or 0 when none exist. The counter may lag
// behind this value after a reset; it must never fall below it again.
func (s *SequenceServiceImpl) collectionBaseline(ctx context.Context, category document.Category, numberPrefix string) (int, error) {
	maxDocNo, err := s.docs.MaxDocNo(ctx, category, numberPrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to scan document baseline: %w", err)
	}
	if maxDocNo == "" {
		return 0, nil
	}

	seq, ok := document.ParseSequence(maxDocNo, numberPrefix)
	if !ok {
		// A malformed doc_no under our prefix should not poison allocation.
		return 0, nil
	}
	return seq, nil
}

// probePastCollisions walks forward from baseline until a free number is
// found, returning the highest sequence known to be taken. Bounded so that a
// pathological collection cannot loop the allocator forever.
func (s *SequenceServiceImpl) probePastCollisions(ctx context.Context, category document.Category, prefix string, year, baseline int) (int, error) {
	probe := baseline
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		candidate := document.FormatDocNo(prefix, year, probe+1)
		exists, err := s.docs.ExistsByDocNo(ctx, category, candidate)
		if err != nil {
			return 0, fmt.Errorf("failed to check doc_no collision: %w", err)
		}
		if !exists {
			return probe, nil
		}
		probe++
	}
	return 0, document.ErrSequenceExhausted
}

// GetByID implements document.DocumentService.
func (s *SequenceServiceImpl) GetByID(ctx context.Context, id string) (document.DocumentResponse, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return document.DocumentResponse{}, err
	}
	return document.MapToResponse(doc), nil
}

// GetByDocNo implements document.DocumentService.
func (s *SequenceServiceImpl) GetByDocNo(ctx context.Context, category document.Category, docNo string) (document.DocumentResponse, error) {
	if !category.IsValid() {
		return document.DocumentResponse{}, document.ErrInvalidCategory
	}

	doc, err := s.docs.GetByDocNo(ctx, category, docNo)
	if err != nil {
		return document.DocumentResponse{}, err
	}
	return document.MapToResponse(doc), nil
}

// List implements document.DocumentService.
func (s *SequenceServiceImpl) List(ctx context.Context, filter document.DocumentFilter) (document.ListDocumentResponse, error) {
	if !filter.Category.IsValid() {
		return document.ListDocumentResponse{}, document.ErrInvalidCategory
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	docs, total, err := s.docs.List(ctx, filter)
	if err != nil {
		return document.ListDocumentResponse{}, err
	}

	responses := make([]document.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, document.MapToResponse(doc))
	}

	return document.ListDocumentResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateStatus implements document.DocumentService.
func (s *SequenceServiceImpl) UpdateStatus(ctx context.Context, req document.UpdateDocumentStatusRequest) (document.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return document.DocumentResponse{}, err
	}

	doc, err := s.docs.GetByID(ctx, req.ID)
	if err != nil {
		return document.DocumentResponse{}, err
	}

	target := document.Status(req.Status)
	if !statusTransitionAllowed(doc.Status, target) {
		return document.DocumentResponse{}, document.ErrInvalidStatusTransition
	}

	if err := s.docs.UpdateStatus(ctx, req.ID, target); err != nil {
		return document.DocumentResponse{}, err
	}

	doc.Status = target
	return document.MapToResponse(doc), nil
}

func statusTransitionAllowed(from, to document.Status) bool {
	switch from {
	case document.StatusDraft:
		return to == document.StatusIssued || to == document.StatusCancelled
	case document.StatusIssued:
		return to == document.StatusCancelled
	}
	return false
}
