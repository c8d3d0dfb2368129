package service

import "errors"

var (
	// ErrMissingMessageID rejects webhook payloads without a unique
	// message identifier.
	ErrMissingMessageID = errors.New("missing message_id")

	// ErrMissingBody rejects payloads carrying neither body_plain nor
	// body_raw.
	ErrMissingBody = errors.New("missing body_plain or body_raw")

	// ErrNoCategories means the category store returned nothing active:
	// a configuration problem, not something to paper over with an empty
	// prompt.
	ErrNoCategories = errors.New("no active categories configured")

	// ErrAIUnavailable wraps every failure of the completion service.
	// The transaction stays persisted and uncategorized.
	ErrAIUnavailable = errors.New("ai categorization unavailable")
)
