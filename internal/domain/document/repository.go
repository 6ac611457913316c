package document

import "context"

type DocumentRepository interface {
	Create(ctx context.Context, doc BusinessDocument) (BusinessDocument, error)
	GetByID(ctx context.Context, id string) (BusinessDocument, error)
	GetByDocNo(ctx context.Context, category Category, docNo string) (BusinessDocument, error)
	ExistsByDocNo(ctx context.Context, category Category, docNo string) (bool, error)
	// MaxDocNo returns the lexicographically highest doc_no in the category
	// under the given number prefix, or "" when none exist. Zero-padded
	// suffixes make lexicographic and numeric order agree.
	MaxDocNo(ctx context.Context, category Category, numberPrefix string) (string, error)
	List(ctx context.Context, filter DocumentFilter) ([]BusinessDocument, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type CounterRepository interface {
	// Get returns the counter value for the key, or 0 when no row exists.
	Get(ctx context.Context, year int, counterKey string) (int, error)
	Set(ctx context.Context, year int, counterKey string, value int) error
}

type NumberSettingsRepository interface {
	// GetByCategory returns ErrPrefixNotConfigured when the category has no
	// numbering configuration. Allocation must fail rather than invent a
	// default prefix.
	GetByCategory(ctx context.Context, category Category) (NumberSettings, error)
}
