package service

import (
	"context"
	"fmt"

	"gastonauta/internal/categorizer"
	"gastonauta/internal/dto"
	"gastonauta/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategorizationService resolves a category for parsed transactions:
// keyword matching first, the AI completion service only on a miss, and the
// result persisted onto the transaction row.
type CategorizationService struct {
	txStore    TransactionStore
	catStore   CategoryStore
	matcher    *categorizer.KeywordMatcher
	ai         AICategorizer
	batchLimit int
	logger     *zap.Logger
}

func NewCategorizationService(
	txStore TransactionStore,
	catStore CategoryStore,
	matcher *categorizer.KeywordMatcher,
	ai AICategorizer,
	batchLimit int,
	logger *zap.Logger,
) *CategorizationService {
	if batchLimit <= 0 {
		batchLimit = 10
	}
	return &CategorizationService{
		txStore:    txStore,
		catStore:   catStore,
		matcher:    matcher,
		ai:         ai,
		batchLimit: batchLimit,
		logger:     logger,
	}
}

// CategorizeTransaction classifies one transaction and persists the result.
// An AI failure leaves the row uncategorized and is returned to the caller;
// it is never fatal to the surrounding flow.
func (s *CategorizationService) CategorizeTransaction(ctx context.Context, tx *models.Transaction) (*categorizer.Result, error) {
	categories, err := s.catStore.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	body := ""
	if tx.BodyPlain != nil {
		body = *tx.BodyPlain
	}
	merchant := ""
	if tx.Merchant != nil {
		merchant = *tx.Merchant
	}

	result := s.matcher.Match(body, merchant, categories)
	if result == nil {
		result, err = s.ai.Categorize(ctx, body, tx.Merchant, tx.Amount, categories)
		if err != nil {
			return nil, err
		}
	}

	if err := s.txStore.MarkCategorized(ctx, tx.ID, result.Category, result.Model, result.Confidence); err != nil {
		return nil, fmt.Errorf("persist categorization: %w", err)
	}

	s.logger.Info("Transaction categorized",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("category", result.Category),
		zap.String("model", result.Model),
		zap.Float64("confidence", result.Confidence),
	)

	return result, nil
}

// Run handles the categorization endpoint: one transaction when a
// transaction_id is given, otherwise a bounded batch of uncategorized rows,
// processed sequentially. Per-row failures land in the result list; only
// lookup problems abort the run.
func (s *CategorizationService) Run(ctx context.Context, req dto.CategorizeRequest) (*dto.CategorizeResponse, error) {
	var transactions []*models.Transaction

	if req.TransactionID != "" {
		id, err := uuid.Parse(req.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction_id: %w", err)
		}
		tx, err := s.txStore.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load transaction: %w", err)
		}
		if tx == nil {
			return nil, fmt.Errorf("transaction %s not found", req.TransactionID)
		}
		transactions = []*models.Transaction{tx}
	} else {
		limit := req.Limit
		if limit <= 0 {
			limit = s.batchLimit
		}
		var err error
		transactions, err = s.txStore.ListUncategorized(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("list uncategorized: %w", err)
		}
	}

	resp := &dto.CategorizeResponse{Success: true}
	for _, tx := range transactions {
		item := dto.CategorizeItemResult{TransactionID: tx.ID.String()}

		if (tx.BodyPlain == nil || *tx.BodyPlain == "") && (tx.Merchant == nil || *tx.Merchant == "") {
			item.Error = "no body_plain or merchant to analyze"
			resp.Results = append(resp.Results, item)
			continue
		}

		result, err := s.CategorizeTransaction(ctx, tx)
		if err != nil {
			s.logger.Warn("Categorization failed",
				zap.String("transaction_id", tx.ID.String()),
				zap.Error(err),
			)
			item.Error = err.Error()
		} else {
			item.Success = true
			item.Category = result.Category
			item.Confidence = result.Confidence
			item.Model = result.Model
		}
		resp.Results = append(resp.Results, item)
	}

	resp.Processed = len(resp.Results)
	return resp, nil
}
