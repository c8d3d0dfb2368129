package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gastonauta/internal/categorizer"
	"gastonauta/internal/dto"
	"gastonauta/internal/models"
)

func newTestCategorization(txStore *fakeTxStore, catStore *fakeCatStore, ai *fakeAI) *CategorizationService {
	return NewCategorizationService(txStore, catStore, categorizer.NewDefaultKeywordMatcher(), ai, 10, zap.NewNop())
}

func storedTransaction(txStore *fakeTxStore, messageID, bodyPlain string, createdAt time.Time) *models.Transaction {
	body := bodyPlain
	tx := &models.Transaction{
		ID:        uuid.New(),
		MessageID: messageID,
		BodyPlain: &body,
		CreatedAt: createdAt,
	}
	txStore.byMessageID[messageID] = tx
	return tx
}

func TestCategorizeTransactionKeywordFirst(t *testing.T) {
	txStore := newFakeTxStore()
	ai := &fakeAI{}
	svc := newTestCategorization(txStore, &fakeCatStore{categories: testCategories()}, ai)

	tx := storedTransaction(txStore, "m-1", "carga de bencina en COPEC LAS CONDES", time.Now())

	result, err := svc.CategorizeTransaction(context.Background(), tx)

	require.NoError(t, err)
	assert.Equal(t, "Combustible", result.Category)
	assert.Equal(t, categorizer.ModelKeyword, result.Model)
	assert.Zero(t, ai.calls)
	require.Len(t, txStore.marked, 1)
	assert.Equal(t, tx.ID, txStore.marked[0].id)
}

func TestCategorizeTransactionNoCategories(t *testing.T) {
	svc := newTestCategorization(newFakeTxStore(), &fakeCatStore{}, &fakeAI{})

	_, err := svc.CategorizeTransaction(context.Background(), &models.Transaction{ID: uuid.New()})

	assert.ErrorIs(t, err, ErrNoCategories)
}

func TestCategorizeTransactionPersistFailure(t *testing.T) {
	txStore := newFakeTxStore()
	txStore.markErr = errStoreDown
	svc := newTestCategorization(txStore, &fakeCatStore{categories: testCategories()}, &fakeAI{})

	tx := storedTransaction(txStore, "m-1", "compra en JUMBO", time.Now())

	_, err := svc.CategorizeTransaction(context.Background(), tx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist categorization")
}

func TestRunSingleTransaction(t *testing.T) {
	txStore := newFakeTxStore()
	svc := newTestCategorization(txStore, &fakeCatStore{categories: testCategories()}, &fakeAI{})

	tx := storedTransaction(txStore, "m-1", "compra en TOTTUS", time.Now())

	resp, err := svc.Run(context.Background(), dto.CategorizeRequest{TransactionID: tx.ID.String()})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Processed)
	require.Len(t, resp.Results, 1)
	assert.True(t, resp.Results[0].Success)
	assert.Equal(t, "Supermercado", resp.Results[0].Category)
}

func TestRunTransactionNotFound(t *testing.T) {
	svc := newTestCategorization(newFakeTxStore(), &fakeCatStore{categories: testCategories()}, &fakeAI{})

	_, err := svc.Run(context.Background(), dto.CategorizeRequest{TransactionID: uuid.NewString()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRunInvalidTransactionID(t *testing.T) {
	svc := newTestCategorization(newFakeTxStore(), &fakeCatStore{categories: testCategories()}, &fakeAI{})

	_, err := svc.Run(context.Background(), dto.CategorizeRequest{TransactionID: "not-a-uuid"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transaction_id")
}

func TestRunBatch(t *testing.T) {
	txStore := newFakeTxStore()
	ai := &fakeAI{result: &categorizer.Result{Category: "Otros", Confidence: 0.8, Model: "openrouter/free"}}
	svc := newTestCategorization(txStore, &fakeCatStore{categories: testCategories()}, ai)

	base := time.Now()
	storedTransaction(txStore, "m-1", "compra en TOTTUS", base)
	storedTransaction(txStore, "m-2", "pago FARMACIA CRUZ VERDE", base.Add(time.Second))

	resp, err := svc.Run(context.Background(), dto.CategorizeRequest{})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Processed)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Supermercado", resp.Results[0].Category)
	assert.Equal(t, "Otros", resp.Results[1].Category)
	assert.Equal(t, 1, ai.calls)
}

func TestRunBatchRespectsLimit(t *testing.T) {
	txStore := newFakeTxStore()
	svc := newTestCategorization(txStore, &fakeCatStore{categories: testCategories()}, &fakeAI{})

	base := time.Now()
	storedTransaction(txStore, "m-1", "compra en TOTTUS", base)
	storedTransaction(txStore, "m-2", "compra en JUMBO", base.Add(time.Second))
	storedTransaction(txStore, "m-3", "compra en UNIMARC", base.Add(2*time.Second))

	resp, err := svc.Run(context.Background(), dto.CategorizeRequest{Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Processed)
}

func TestRunSkipsEmptyTransactions(t *testing.T) {
	txStore := newFakeTxStore()
	svc := newTestCategorization(txStore, &fakeCatStore{categories: testCategories()}, &fakeAI{})

	tx := storedTransaction(txStore, "m-1", "", time.Now())

	resp, err := svc.Run(context.Background(), dto.CategorizeRequest{TransactionID: tx.ID.String()})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.False(t, resp.Results[0].Success)
	assert.Equal(t, "no body_plain or merchant to analyze", resp.Results[0].Error)
	assert.Empty(t, txStore.marked)
}
