package postgresql

import (
	"context"
	"errors"

	"github.com/backoffice-th/backoffice-backend-go/internal/domain/document"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type numberSettingsRepositoryImpl struct {
	db *database.DB
}

func NewNumberSettingsRepository(db *database.DB) document.NumberSettingsRepository {
	return &numberSettingsRepositoryImpl{db: db}
}

// GetByCategory implements document.NumberSettingsRepository.
func (r *numberSettingsRepositoryImpl) GetByCategory(ctx context.Context, category document.Category) (document.NumberSettings, error) {
	q := GetQuerier(ctx, r.db)

	var settings document.NumberSettings
	err := q.QueryRow(ctx,
		`SELECT category, prefix, updated_at FROM doc_number_settings WHERE category = $1`,
		category,
	).Scan(&settings.Category, &settings.Prefix, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.NumberSettings{}, document.ErrPrefixNotConfigured
		}
		return document.NumberSettings{}, err
	}

	return settings, nil
}
