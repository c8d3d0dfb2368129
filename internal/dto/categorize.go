package dto

// CategorizeRequest targets one transaction, or runs batch mode over
// uncategorized rows when TransactionID is empty.
type CategorizeRequest struct {
	TransactionID string `json:"transaction_id"`
	Limit         int    `json:"limit"`
}

// CategorizeItemResult is the per-transaction outcome of a categorization
// run.
type CategorizeItemResult struct {
	TransactionID string  `json:"transaction_id"`
	Success       bool    `json:"success"`
	Category      string  `json:"category,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`
	Model         string  `json:"model,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// CategorizeResponse aggregates a categorization invocation.
type CategorizeResponse struct {
	Success   bool                   `json:"success"`
	Processed int                    `json:"processed"`
	Results   []CategorizeItemResult `json:"results"`
}
