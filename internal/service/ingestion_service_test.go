package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gastonauta/internal/categorizer"
	"gastonauta/internal/dto"
	"gastonauta/pkg/config"
)

const cargoBody = "Banco de Chile\n\nJorge Luis Epunan Hernandez: compra por $2.440 con cargo a Cuenta ****5150 en TOTTUS LOS DOMINI el 20/02/2026 16:10."

func newTestIngestion(txStore *fakeTxStore, catStore *fakeCatStore, ai *fakeAI) *IngestionService {
	cat := NewCategorizationService(txStore, catStore, categorizer.NewDefaultKeywordMatcher(), ai, 10, zap.NewNop())
	notifier := NewNotifier(&config.ResendConfig{}, zap.NewNop())
	return NewIngestionService(txStore, cat, notifier, zap.NewNop())
}

func inboundCargo(messageID string) *dto.InboundEmail {
	return &dto.InboundEmail{
		MessageID: messageID,
		FromEmail: "enviodigital@bancochile.cl",
		Subject:   "Cargo en cuenta",
		BodyPlain: cargoBody,
		Date:      "2026-02-20T16:11:00-03:00",
	}
}

func TestIngestValidation(t *testing.T) {
	svc := newTestIngestion(newFakeTxStore(), &fakeCatStore{}, &fakeAI{})

	_, err := svc.Ingest(context.Background(), &dto.InboundEmail{BodyPlain: "algo"})
	assert.True(t, errors.Is(err, ErrMissingMessageID))

	_, err = svc.Ingest(context.Background(), &dto.InboundEmail{MessageID: "m-1"})
	assert.True(t, errors.Is(err, ErrMissingBody))
}

func TestIngestEndToEnd(t *testing.T) {
	txStore := newFakeTxStore()
	catStore := &fakeCatStore{categories: testCategories()}
	ai := &fakeAI{}
	svc := newTestIngestion(txStore, catStore, ai)

	resp, err := svc.Ingest(context.Background(), inboundCargo("m-1"))

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.Duplicate)
	assert.Equal(t, "m-1", resp.MessageID)
	assert.NotEmpty(t, resp.TransactionID)

	require.NotNil(t, resp.Parsed)
	require.NotNil(t, resp.Parsed.Amount)
	assert.Equal(t, 2440.0, *resp.Parsed.Amount)
	require.NotNil(t, resp.Parsed.Merchant)
	assert.Equal(t, "TOTTUS LOS DOMINI", *resp.Parsed.Merchant)
	require.NotNil(t, resp.Parsed.AccountLast4)
	assert.Equal(t, "5150", *resp.Parsed.AccountLast4)
	require.NotNil(t, resp.Parsed.TransactionDate)
	assert.Equal(t, "2026-02-20T16:10:00-03:00", *resp.Parsed.TransactionDate)

	// TOTTUS is a supermercado keyword, so the AI is never consulted
	require.NotNil(t, resp.Categorization)
	assert.Equal(t, "Supermercado", resp.Categorization.Category)
	assert.Equal(t, 1.0, resp.Categorization.Confidence)
	assert.Equal(t, categorizer.ModelKeyword, resp.Categorization.Model)
	assert.Zero(t, ai.calls)

	stored := txStore.byMessageID["m-1"]
	require.NotNil(t, stored)
	assert.True(t, stored.IsCategorized)
	require.NotNil(t, stored.EmailDate)
	require.Len(t, txStore.marked, 1)
	assert.Equal(t, stored.ID, txStore.marked[0].id)
	assert.Equal(t, "Supermercado", txStore.marked[0].category)
}

func TestIngestDuplicate(t *testing.T) {
	txStore := newFakeTxStore()
	svc := newTestIngestion(txStore, &fakeCatStore{categories: testCategories()}, &fakeAI{})

	first, err := svc.Ingest(context.Background(), inboundCargo("m-1"))
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := svc.Ingest(context.Background(), inboundCargo("m-1"))
	require.NoError(t, err)

	assert.True(t, second.Success)
	assert.True(t, second.Duplicate)
	assert.Empty(t, second.TransactionID)
	assert.Equal(t, "Duplicate transaction already exists", second.Message)
	assert.Nil(t, second.Categorization)

	// still a single stored row and a single categorization
	assert.Len(t, txStore.byMessageID, 1)
	assert.Len(t, txStore.marked, 1)
}

func TestIngestAIFallback(t *testing.T) {
	txStore := newFakeTxStore()
	catStore := &fakeCatStore{categories: testCategories()}
	ai := &fakeAI{result: &categorizer.Result{Category: "Otros", Confidence: 0.8, Model: "openrouter/free"}}
	svc := newTestIngestion(txStore, catStore, ai)

	email := inboundCargo("m-2")
	email.BodyPlain = "Banco de Chile\n\nJuan Perez: compra por $9.990 con cargo a Cuenta ****5150 en FARMACIA CRUZ VERDE el 20/02/2026 16:10."

	resp, err := svc.Ingest(context.Background(), email)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, ai.calls)
	require.NotNil(t, resp.Categorization)
	assert.Equal(t, "Otros", resp.Categorization.Category)
	require.Len(t, txStore.marked, 1)
	assert.Equal(t, "openrouter/free", txStore.marked[0].model)
}

func TestIngestAIUnavailableStillStores(t *testing.T) {
	txStore := newFakeTxStore()
	catStore := &fakeCatStore{categories: testCategories()}
	ai := &fakeAI{err: ErrAIUnavailable}
	svc := newTestIngestion(txStore, catStore, ai)

	email := inboundCargo("m-3")
	email.BodyPlain = "Banco de Chile\n\nJuan Perez: compra por $9.990 en FARMACIA CRUZ VERDE el 20/02/2026 16:10."

	resp, err := svc.Ingest(context.Background(), email)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Categorization)

	stored := txStore.byMessageID["m-3"]
	require.NotNil(t, stored)
	assert.False(t, stored.IsCategorized)
	assert.Empty(t, txStore.marked)
}

func TestIngestStoreFailure(t *testing.T) {
	txStore := newFakeTxStore()
	txStore.insertErr = errStoreDown
	svc := newTestIngestion(txStore, &fakeCatStore{categories: testCategories()}, &fakeAI{})

	resp, err := svc.Ingest(context.Background(), inboundCargo("m-4"))

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "connection refused", resp.Error)
	assert.Empty(t, resp.TransactionID)
}

func TestIngestBodyRawFallback(t *testing.T) {
	txStore := newFakeTxStore()
	svc := newTestIngestion(txStore, &fakeCatStore{categories: testCategories()}, &fakeAI{})

	email := &dto.InboundEmail{
		MessageID: "m-5",
		FromEmail: "enviodigital@bancochile.cl",
		Subject:   "Cargo en cuenta",
		BodyRaw:   cargoBody,
	}

	resp, err := svc.Ingest(context.Background(), email)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Parsed.Amount)
	assert.Equal(t, 2440.0, *resp.Parsed.Amount)
}

func TestParseEmailDate(t *testing.T) {
	assert.Nil(t, parseEmailDate(""))
	assert.Nil(t, parseEmailDate("not a date"))

	got := parseEmailDate("2026-02-20T16:11:00-03:00")
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())

	got = parseEmailDate("Fri, 20 Feb 2026 16:11:00 -0300")
	require.NotNil(t, got)
	assert.Equal(t, 20, got.Day())
}
