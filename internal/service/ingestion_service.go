package service

import (
	"context"
	"errors"
	"time"

	"gastonauta/internal/dto"
	"gastonauta/internal/models"
	"gastonauta/internal/parser"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IngestionService is the webhook entry sequence: validate the payload,
// parse the email into a draft, persist it keyed by message_id, categorize,
// and dispatch a summary notification.
type IngestionService struct {
	txStore        TransactionStore
	categorization *CategorizationService
	notifier       *Notifier
	logger         *zap.Logger
}

func NewIngestionService(
	txStore TransactionStore,
	categorization *CategorizationService,
	notifier *Notifier,
	logger *zap.Logger,
) *IngestionService {
	return &IngestionService{
		txStore:        txStore,
		categorization: categorization,
		notifier:       notifier,
		logger:         logger,
	}
}

// Ingest processes one inbound email end to end. Validation problems are
// returned as errors for the handler to reject; everything past validation
// is reported inside the response so the webhook always gets an answer.
func (s *IngestionService) Ingest(ctx context.Context, email *dto.InboundEmail) (*dto.IngestResponse, error) {
	if email.MessageID == "" {
		return nil, ErrMissingMessageID
	}
	if email.Body() == "" {
		return nil, ErrMissingBody
	}

	draft := parser.Route(email.FromEmail, email.Subject, email.Body())
	tx := buildTransaction(email, draft)

	created, err := s.txStore.Insert(ctx, tx)
	if err != nil {
		s.logger.Error("Failed to store transaction",
			zap.String("message_id", email.MessageID),
			zap.Error(err),
		)
		s.notifier.NotifyFailure(ctx, email.MessageID, err.Error())
		return &dto.IngestResponse{
			Success:   false,
			MessageID: email.MessageID,
			Error:     err.Error(),
		}, nil
	}

	resp := &dto.IngestResponse{
		Success:       true,
		MessageID:     email.MessageID,
		TransactionID: tx.ID.String(),
		Parsed:        &draft,
	}

	if !created {
		// Same message delivered twice: idempotent success, nothing
		// more to do.
		resp.Duplicate = true
		resp.TransactionID = ""
		resp.Message = "Duplicate transaction already exists"
		return resp, nil
	}

	result, err := s.categorization.CategorizeTransaction(ctx, tx)
	if err != nil {
		// The transaction is stored; it just stays uncategorized.
		if errors.Is(err, ErrAIUnavailable) || errors.Is(err, ErrNoCategories) {
			s.logger.Warn("Categorization unavailable",
				zap.String("message_id", email.MessageID),
				zap.Error(err),
			)
		} else {
			s.logger.Error("Categorization failed",
				zap.String("message_id", email.MessageID),
				zap.Error(err),
			)
		}
	} else {
		resp.Categorization = result
	}

	s.notifier.NotifySuccess(ctx, tx, resp.Categorization)
	return resp, nil
}

func buildTransaction(email *dto.InboundEmail, draft parser.Draft) *models.Transaction {
	return &models.Transaction{
		ID:        uuid.New(),
		MessageID: email.MessageID,

		EmailDate: parseEmailDate(email.Date),
		FromName:  optional(email.FromName),
		FromEmail: optional(email.FromEmail),
		Subject:   optional(email.Subject),
		BodyRaw:   optional(email.BodyRaw),
		BodyPlain: optional(email.BodyPlain),
		BodyHTML:  optional(email.BodyHTML),

		CustomerName:    draft.CustomerName,
		Amount:          draft.Amount,
		AccountLast4:    draft.AccountLast4,
		Merchant:        draft.Merchant,
		TransactionDate: draft.TransactionDate,
		SenderBank:      draft.SenderBank,
		EmailType:       draft.EmailType,

		CreatedAt: time.Now(),
	}
}

// parseEmailDate tries the date layouts mail gateways actually emit; a
// header that parses as none of them is simply dropped.
func parseEmailDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	layouts := []string{
		time.RFC3339,
		time.RFC1123Z,
		time.RFC1123,
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
