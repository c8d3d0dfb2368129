package dto

import (
	"gastonauta/internal/categorizer"
	"gastonauta/internal/parser"
)

// InboundEmail is the webhook payload delivered by the mail gateway.
type InboundEmail struct {
	Date      string `json:"date"`
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	MessageID string `json:"message_id"`
	Subject   string `json:"subject"`
	BodyRaw   string `json:"body_raw"`
	BodyPlain string `json:"body_plain"`
	BodyHTML  string `json:"body_html"`
}

// Body returns the preferred plain-text body, falling back to the raw form.
func (e *InboundEmail) Body() string {
	if e.BodyPlain != "" {
		return e.BodyPlain
	}
	return e.BodyRaw
}

// ParseRequest invokes the parsing stage on its own, without persistence.
type ParseRequest struct {
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	BodyPlain string `json:"body_plain"`
	BodyRaw   string `json:"body_raw"`
}

// ParseResponse carries the draft produced by the bank-format parser.
type ParseResponse struct {
	Success bool         `json:"success"`
	Parsed  parser.Draft `json:"parsed"`
}

// IngestResponse summarizes one webhook ingestion.
type IngestResponse struct {
	Success        bool                `json:"success"`
	Duplicate      bool                `json:"duplicate,omitempty"`
	Message        string              `json:"message,omitempty"`
	MessageID      string              `json:"message_id"`
	TransactionID  string              `json:"transaction_id,omitempty"`
	Parsed         *parser.Draft       `json:"parsed,omitempty"`
	Categorization *categorizer.Result `json:"categorization,omitempty"`
	Error          string              `json:"error,omitempty"`
}
