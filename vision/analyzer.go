package vision

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/onyxlabs/onyxgpt/models"
	"github.com/onyxlabs/onyxgpt/telemetry"
)

// Defaults used when the caller passes empty prompt/model.
const (
	DefaultPrompt = "What do you see?"
	DefaultModel  = "gpt-5-nano"
)

// Analyzer orchestrates one image-understanding call to the external AI
// client with guaranteed logging of the outcome and guaranteed release of the
// busy flag on every exit path.
//
// The client is an explicit dependency; a nil client means the vision
// capability is not configured and AnalyzeImage degrades to an empty result
// without touching telemetry.
type Analyzer struct {
	client    models.ChatClient
	telemetry *telemetry.Logger
	busy      atomic.Bool
}

// NewAnalyzer wires the vision adapter. Either argument may be nil: a nil
// client disables the capability, a nil telemetry logger disables call
// recording.
func NewAnalyzer(client models.ChatClient, tl *telemetry.Logger) *Analyzer {
	return &Analyzer{client: client, telemetry: tl}
}

// Busy reports whether an analysis call is currently in flight. Advisory
// state for the UI; it does not gate new calls.
func (a *Analyzer) Busy() bool {
	return a.busy.Load()
}

// AnalyzeImage sends one vision request and returns the response text.
// Failures are swallowed at this boundary: the caller gets an empty string
// whether the capability is missing, the call failed or the model answered
// nothing, and only the telemetry log tells those apart. Chat UI stays
// responsive even if the AI backend misbehaves.
func (a *Analyzer) AnalyzeImage(ctx context.Context, imageURL, prompt, model string) string {
	if a.client == nil {
		log.Printf("[VISION] AI client not configured, skipping image analysis")
		return ""
	}

	if prompt == "" {
		prompt = DefaultPrompt
	}
	if model == "" {
		model = DefaultModel
	}

	a.busy.Store(true)
	defer a.busy.Store(false)

	params := map[string]any{
		"imageUrl": imageURL,
		"prompt":   prompt,
		"model":    model,
	}

	var callLogger *telemetry.CallLogger
	if a.telemetry != nil {
		callLogger = a.telemetry.NewCallLogger()
	}

	text, err := a.client.Chat(ctx, prompt, imageURL, models.ChatOptions{Model: model})
	if err != nil {
		if callLogger != nil {
			callLogger.LogError("analyzeImage", params, err)
		}
		log.Printf("[VISION] Image analysis failed: %v", err)
		return ""
	}

	if callLogger != nil {
		callLogger.LogSuccess("analyzeImage", params, text)
	}
	return text
}
