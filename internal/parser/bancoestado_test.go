package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBancoEstado(t *testing.T) {
	body := "Estimado Juan Perez\n\n" +
		"Realizaste una compra por $15.000 desde tu cuenta corriente ***1234 en FALABELLA el día 20/02/2026 a las 14:30"

	result := ParseBancoEstado(body)

	require.NotNil(t, result.CustomerName)
	assert.Equal(t, "Juan Perez", *result.CustomerName)
	require.NotNil(t, result.Amount)
	assert.Equal(t, float64(15000), *result.Amount)
	require.NotNil(t, result.AccountLast4)
	assert.Equal(t, "1234", *result.AccountLast4)
	require.NotNil(t, result.Merchant)
	assert.Equal(t, "FALABELLA", *result.Merchant)
	require.NotNil(t, result.TransactionDate)
	assert.Equal(t, "2026-02-20T14:30:00-03:00", *result.TransactionDate)
	assert.Equal(t, BankBancoEstado, *result.SenderBank)
	assert.Equal(t, EmailTypeNotification, *result.EmailType)
}

func TestParseBancoEstadoMontoDe(t *testing.T) {
	body := "Estimado Pedro\n\nSe realizó un cargo monto de $100.000 desde tu cuenta ***9876"

	result := ParseBancoEstado(body)

	require.NotNil(t, result.Amount)
	assert.Equal(t, float64(100000), *result.Amount)
	require.NotNil(t, result.AccountLast4)
	assert.Equal(t, "9876", *result.AccountLast4)
}

func TestParseBancoEstadoNameTwoWordsMax(t *testing.T) {
	// the salutation capture is bounded to two capitalized words so it
	// never swallows the rest of the email
	body := "Estimado Juan Perez\nRealizaste una transferencia"

	result := ParseBancoEstado(body)

	require.NotNil(t, result.CustomerName)
	assert.Equal(t, "Juan Perez", *result.CustomerName)
}

func TestParseBancoEstadoEmptyBody(t *testing.T) {
	result := ParseBancoEstado("")

	assert.Nil(t, result.CustomerName)
	assert.Nil(t, result.Amount)
	assert.Nil(t, result.AccountLast4)
	assert.Nil(t, result.Merchant)
	assert.Nil(t, result.TransactionDate)
	assert.Equal(t, BankBancoEstado, *result.SenderBank)
	assert.Equal(t, EmailTypeNotification, *result.EmailType)
}
