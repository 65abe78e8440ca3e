// Package explanation narrates already-computed calculator results. The
// numeric path never depends on it: a provider failure is always replaced by
// a deterministic fallback template over the same numbers.
package explanation

import "context"

// Facts is the numeric payload handed to the narrator. Values are final;
// a provider must never alter them.
type Facts struct {
	Calculator string             `json:"calculator"`
	Locale     string             `json:"locale"`
	Values     map[string]float64 `json:"values"`
	Labels     map[string]string  `json:"labels,omitempty"`
}

// Provider turns facts into a natural-language string, best effort.
type Provider interface {
	Explain(ctx context.Context, f Facts) (string, error)
}
