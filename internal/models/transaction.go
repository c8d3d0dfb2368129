package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is one ingested bank notification email: the raw envelope as
// received on the webhook, the fields the parser extracted from it, and the
// categorization state. Rows are unique on MessageID.
type Transaction struct {
	ID        uuid.UUID `db:"id"`
	MessageID string    `db:"message_id"`

	// Inbound envelope, kept verbatim for auditing and re-parsing.
	EmailDate *time.Time `db:"email_date"`
	FromName  *string    `db:"from_name"`
	FromEmail *string    `db:"from_email"`
	Subject   *string    `db:"subject"`
	BodyRaw   *string    `db:"body_raw"`
	BodyPlain *string    `db:"body_plain"`
	BodyHTML  *string    `db:"body_html"`

	// Parsed fields; nil when the parser found no match.
	CustomerName    *string  `db:"customer_name"`
	Amount          *float64 `db:"amount"`
	AccountLast4    *string  `db:"account_last4"`
	Merchant        *string  `db:"merchant"`
	TransactionDate *string  `db:"transaction_date"`
	SenderBank      *string  `db:"sender_bank"`
	EmailType       *string  `db:"email_type"`

	// Categorization state.
	CategoryID               *string    `db:"category_id"`
	IsCategorized            bool       `db:"is_categorized"`
	CategorizedAt            *time.Time `db:"categorized_at"`
	CategorizationModel      *string    `db:"categorization_model"`
	CategorizationConfidence *float64   `db:"categorization_confidence"`

	CreatedAt time.Time `db:"created_at"`
}
