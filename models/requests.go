package models

// InferenceRequest mirrors a completions-style request body. Temperature and
// MaxTokens are pointers so "omitted" is distinguishable from an explicit
// zero; schemas.ValidateInferenceRequest fills in the defaults (0.7 and 2000)
// when they are nil.
type InferenceRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

// Defaults applied by schemas.ValidateInferenceRequest when the optional
// fields are omitted.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
)
