// Package parser extracts structured transaction data from Chilean bank
// notification emails. Each bank (and some email sub-formats within a bank)
// has its own body layout, so there is one parse function per format plus a
// router that picks the right one from the sender address and subject line.
package parser

// Bank display names used for the sender_bank field.
const (
	BankBancoChile  = "Banco de Chile"
	BankBancoEstado = "Banco Estado"
	BankSantander   = "Santander Chile"
)

// Email type tags distinguishing sub-formats within a bank.
const (
	EmailTypeCargoEnCuenta       = "cargo_en_cuenta"
	EmailTypeTransferenciaFondos = "transferencia_fondos"
	EmailTypeNotification        = "transaction_notification"
)

// Draft is the uniform parser output for one bank email. Extractable fields
// are nil when the body did not match; SenderBank and EmailType always carry
// the parser's defaults, even for an empty body.
type Draft struct {
	CustomerName    *string  `json:"customer_name"`
	Amount          *float64 `json:"amount"`
	AccountLast4    *string  `json:"account_last4"`
	Merchant        *string  `json:"merchant"`
	TransactionDate *string  `json:"transaction_date"`
	SenderBank      *string  `json:"sender_bank"`
	EmailType       *string  `json:"email_type"`
}

// Func is a bank-format parser: a pure function from a plain-text email body
// to a Draft. It never fails; unrecognized fields stay nil.
type Func func(bodyPlain string) Draft

func newDraft(bank, emailType string) Draft {
	return Draft{
		SenderBank: strPtr(bank),
		EmailType:  strPtr(emailType),
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
