package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/document"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type counterRepositoryImpl struct {
	db *database.DB
}

func NewCounterRepository(db *database.DB) document.CounterRepository {
	return &counterRepositoryImpl{db: db}
}

// Get implements document.CounterRepository. An absent row reads as zero, the
// conceptual empty counter for a fresh (year, key).
func (r *counterRepositoryImpl) Get(ctx context.Context, year int, key string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var value int
	err := q.QueryRow(ctx,
		`SELECT value FROM doc_counters WHERE year = $1 AND counter_key = $2`,
		year, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	return value, nil
}

// Set implements document.CounterRepository. One row per (year, key) keeps
// the upsert from clobbering sibling category/prefix counters of the same
// year.
func (r *counterRepositoryImpl) Set(ctx context.Context, year int, key string, value int) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO doc_counters (year, counter_key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (year, counter_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, year, key, value)
	if err != nil {
		return fmt.Errorf("set counter %d/%s: %w", year, key, err)
	}

	return nil
}
