package repository

import (
	"context"
	"errors"
	"time"

	"gastonauta/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var transactionColumns = []string{
	"id", "message_id", "email_date", "from_name", "from_email", "subject",
	"body_raw", "body_plain", "body_html",
	"customer_name", "amount", "account_last4", "merchant", "transaction_date",
	"sender_bank", "email_type",
	"category_id", "is_categorized", "categorized_at",
	"categorization_model", "categorization_confidence",
	"created_at",
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a new transaction keyed by message_id. A row that already
// exists for the same message_id is left untouched and reported via the
// returned flag: duplicate delivery is an idempotent success, not an error.
func (r *TransactionRepository) Insert(ctx context.Context, tx *models.Transaction) (bool, error) {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(
			tx.ID, tx.MessageID, tx.EmailDate, tx.FromName, tx.FromEmail, tx.Subject,
			tx.BodyRaw, tx.BodyPlain, tx.BodyHTML,
			tx.CustomerName, tx.Amount, tx.AccountLast4, tx.Merchant, tx.TransactionDate,
			tx.SenderBank, tx.EmailType,
			tx.CategoryID, tx.IsCategorized, tx.CategorizedAt,
			tx.CategorizationModel, tx.CategorizationConfidence,
			tx.CreatedAt,
		).
		Suffix("ON CONFLICT (message_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetByID returns one transaction, or nil when it does not exist.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, sql, args...)
	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ListUncategorized returns up to limit transactions that still need a
// category and have a body worth analyzing, oldest first.
func (r *TransactionRepository) ListUncategorized(ctx context.Context, limit int) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where("is_categorized = false").
		Where("category_id IS NULL").
		Where("body_plain IS NOT NULL").
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
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

	var transactions []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// MarkCategorized records a categorization result on the transaction.
// category holds the resolved category name.
func (r *TransactionRepository) MarkCategorized(ctx context.Context, id uuid.UUID, category, model string, confidence float64) error {
	query := squirrel.Update("transactions").
		Set("category_id", category).
		Set("is_categorized", true).
		Set("categorized_at", time.Now()).
		Set("categorization_model", model).
		Set("categorization_confidence", confidence).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(
		&tx.ID, &tx.MessageID, &tx.EmailDate, &tx.FromName, &tx.FromEmail, &tx.Subject,
		&tx.BodyRaw, &tx.BodyPlain, &tx.BodyHTML,
		&tx.CustomerName, &tx.Amount, &tx.AccountLast4, &tx.Merchant, &tx.TransactionDate,
		&tx.SenderBank, &tx.EmailType,
		&tx.CategoryID, &tx.IsCategorized, &tx.CategorizedAt,
		&tx.CategorizationModel, &tx.CategorizationConfidence,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
