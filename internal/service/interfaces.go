package service

import (
	"context"

	"gastonauta/internal/categorizer"
	"gastonauta/internal/models"

	"github.com/google/uuid"
)

// TransactionStore is the persistence surface the services need. The pgx
// repository satisfies it in production; tests substitute in-memory fakes.
type TransactionStore interface {
	Insert(ctx context.Context, tx *models.Transaction) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListUncategorized(ctx context.Context, limit int) ([]*models.Transaction, error)
	MarkCategorized(ctx context.Context, id uuid.UUID, category, model string, confidence float64) error
}

// CategoryStore reads the live category list.
type CategoryStore interface {
	ListActive(ctx context.Context) ([]models.Category, error)
}

// AICategorizer is the fallback classifier, satisfied by LLMService.
type AICategorizer interface {
	Categorize(ctx context.Context, bodyPlain string, merchant *string, amount *float64, categories []models.Category) (*categorizer.Result, error)
}
