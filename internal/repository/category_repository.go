package repository

import (
	"context"

	"gastonauta/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

// ListActive returns the categories available for classification. Categories
// are edited through the dashboard settings; the ingestion core only reads
// them.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	query := squirrel.Select("id", "name", "description", "keywords", "is_active").
		From("categories").
		Where("is_active = true").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.Keywords, &cat.IsActive); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// Upsert inserts a category or refreshes its description and keywords,
// keyed by name. Used by the seed command.
func (r *CategoryRepository) Upsert(ctx context.Context, cat *models.Category) error {
	query := squirrel.Insert("categories").
		Columns("id", "name", "description", "keywords", "is_active").
		Values(cat.ID, cat.Name, cat.Description, cat.Keywords, cat.IsActive).
		Suffix("ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, keywords = EXCLUDED.keywords, is_active = EXCLUDED.is_active").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
