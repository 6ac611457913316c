package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/document"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) document.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

const documentColumns = `id, category, doc_no, doc_date, title, party_name, amount, notes, status, created_by, created_at, updated_at`

func scanDocument(row pgx.Row) (document.BusinessDocument, error) {
	var doc document.BusinessDocument
	err := row.Scan(
		&doc.ID, &doc.Category, &doc.DocNo, &doc.DocDate, &doc.Title, &doc.PartyName,
		&doc.Amount, &doc.Notes, &doc.Status, &doc.CreatedBy, &doc.CreatedAt, &doc.UpdatedAt,
	)
	return doc, err
}

// Create implements document.DocumentRepository.
func (r *documentRepositoryImpl) Create(ctx context.Context, doc document.BusinessDocument) (document.BusinessDocument, error) {
	q := GetQuerier(ctx, r.db)

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	query := `
		INSERT INTO documents (id, category, doc_no, doc_date, title, party_name, amount, notes, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + documentColumns

	created, err := scanDocument(q.QueryRow(ctx, query,
		doc.ID, doc.Category, doc.DocNo, doc.DocDate, doc.Title, doc.PartyName,
		doc.Amount, doc.Notes, doc.Status, doc.CreatedBy,
	))
	if err != nil {
		return document.BusinessDocument{}, fmt.Errorf("create document: %w", err)
	}

	return created, nil
}

// GetByID implements document.DocumentRepository.
func (r *documentRepositoryImpl) GetByID(ctx context.Context, id string) (document.BusinessDocument, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	doc, err := scanDocument(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.BusinessDocument{}, document.ErrDocumentNotFound
		}
		return document.BusinessDocument{}, err
	}

	return doc, nil
}

// GetByDocNo implements document.DocumentRepository.
func (r *documentRepositoryImpl) GetByDocNo(ctx context.Context, category document.Category, docNo string) (document.BusinessDocument, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + documentColumns + ` FROM documents WHERE category = $1 AND doc_no = $2`

	doc, err := scanDocument(q.QueryRow(ctx, query, category, docNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.BusinessDocument{}, document.ErrDocumentNotFound
		}
		return document.BusinessDocument{}, err
	}

	return doc, nil
}

// ExistsByDocNo implements document.DocumentRepository.
func (r *documentRepositoryImpl) ExistsByDocNo(ctx context.Context, category document.Category, docNo string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE category = $1 AND doc_no = $2)`,
		category, docNo,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// MaxDocNo implements document.DocumentRepository. The descending range scan
// over the number prefix recovers the true sequence baseline even when the
// counter record has been reset.
func (r *documentRepositoryImpl) MaxDocNo(ctx context.Context, category document.Category, numberPrefix string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT doc_no
		FROM documents
		WHERE category = $1 AND doc_no >= $2 AND doc_no < $2 || chr(1114111)
		ORDER BY doc_no DESC
		LIMIT 1
	`

	var docNo string
	err := q.QueryRow(ctx, query, category, numberPrefix).Scan(&docNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	return docNo, nil
}

// List implements document.DocumentRepository.
func (r *documentRepositoryImpl) List(ctx context.Context, filter document.DocumentFilter) ([]document.BusinessDocument, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM documents WHERE category = $1`, filter.Category,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE category = $1
		ORDER BY doc_no DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, filter.Category, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	docs := make([]document.BusinessDocument, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, doc)
	}

	return docs, total, rows.Err()
}

// UpdateStatus implements document.DocumentRepository.
func (r *documentRepositoryImpl) UpdateStatus(ctx context.Context, id string, status document.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}

	return nil
}
