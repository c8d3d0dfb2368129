package models

import "github.com/google/uuid"

// Category is a spending category maintained through the dashboard settings.
// The ingestion core only reads them: names and keyword lists drive the
// keyword matcher, names and descriptions drive the AI prompt.
type Category struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Keywords    []string  `db:"keywords"`
	IsActive    bool      `db:"is_active"`
}
