package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"gastonauta/internal/categorizer"
	"gastonauta/internal/models"
)

type markCall struct {
	id         uuid.UUID
	category   string
	model      string
	confidence float64
}

type fakeTxStore struct {
	byMessageID map[string]*models.Transaction
	insertErr   error
	markErr     error
	marked      []markCall
}

func newFakeTxStore() *fakeTxStore {
	return &fakeTxStore{byMessageID: make(map[string]*models.Transaction)}
}

func (f *fakeTxStore) Insert(_ context.Context, tx *models.Transaction) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	if _, exists := f.byMessageID[tx.MessageID]; exists {
		return false, nil
	}
	f.byMessageID[tx.MessageID] = tx
	return true, nil
}

func (f *fakeTxStore) GetByID(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	for _, tx := range f.byMessageID {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, nil
}

func (f *fakeTxStore) ListUncategorized(_ context.Context, limit int) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, tx := range f.byMessageID {
		if !tx.IsCategorized && tx.BodyPlain != nil {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTxStore) MarkCategorized(_ context.Context, id uuid.UUID, category, model string, confidence float64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, markCall{id: id, category: category, model: model, confidence: confidence})
	for _, tx := range f.byMessageID {
		if tx.ID == id {
			tx.CategoryID = &category
			tx.IsCategorized = true
		}
	}
	return nil
}

type fakeCatStore struct {
	categories []models.Category
	err        error
}

func (f *fakeCatStore) ListActive(_ context.Context) ([]models.Category, error) {
	return f.categories, f.err
}

type fakeAI struct {
	result *categorizer.Result
	err    error
	calls  int
}

func (f *fakeAI) Categorize(_ context.Context, _ string, _ *string, _ *float64, _ []models.Category) (*categorizer.Result, error) {
	f.calls++
	return f.result, f.err
}

var errStoreDown = errors.New("connection refused")
