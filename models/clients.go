package models

import "context"

// ChatOptions carries per-call options for a provider client.
type ChatOptions struct {
	Model       string
	Temperature *float64
	MaxTokens   *int
}

// ChatClient is the external AI client surface the core depends on. Concrete
// implementations live under models/openrouter, models/puter and
// models/gemini; the core never reaches for an ambient global — a nil client
// means "not configured" and consumers degrade gracefully.
type ChatClient interface {
	// Complete sends a validated completions-style request and returns the
	// assistant text.
	Complete(ctx context.Context, request InferenceRequest) (string, error)

	// Chat sends a single prompt, optionally grounded on an image URL, and
	// returns the response text. This is the surface the vision adapter uses.
	Chat(ctx context.Context, prompt, imageURL string, opts ChatOptions) (string, error)
}
