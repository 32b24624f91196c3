package onyxgpt

import (
	"context"
	"fmt"

	"github.com/onyxlabs/onyxgpt/auth"
	"github.com/onyxlabs/onyxgpt/models"
	"github.com/onyxlabs/onyxgpt/schemas"
	"github.com/onyxlabs/onyxgpt/telemetry"
	"github.com/onyxlabs/onyxgpt/vision"
)

// App is the composition root: it wires the validation layer, the configured
// provider client and the telemetry logger into the pre-send chat pipeline
// and the vision adapter. The UI layer calls into App and renders whatever
// comes back; App never reaches into the UI.
type App struct {
	config    *Config
	telemetry *telemetry.Logger
	vision    *vision.Analyzer
}

// New builds an App from the given configuration.
func New(config *Config) *App {
	tl := telemetry.NewLogger(config.Store)
	return &App{
		config:    config,
		telemetry: tl,
		vision:    vision.NewAnalyzer(config.Client, tl),
	}
}

// Telemetry exposes the call log for the debug panel.
func (a *App) Telemetry() *telemetry.Logger {
	return a.telemetry
}

// Vision exposes the vision adapter.
func (a *App) Vision() *vision.Analyzer {
	return a.vision
}

// Auth exposes the authentication collaborator.
func (a *App) Auth() auth.Authenticator {
	return a.config.Auth
}

// SendChat runs the pre-send pipeline for one chat turn: validate the
// request (malformed input never reaches the external client), call the
// provider, and record the outcome. Validation errors and provider errors
// both surface to the caller — chat, unlike vision, shows the user an error
// toast.
func (a *App) SendChat(ctx context.Context, request models.InferenceRequest) (string, error) {
	validated, err := schemas.ValidateInferenceRequest(request)
	if err != nil {
		return "", err
	}

	if a.config.Client == nil {
		return "", fmt.Errorf("AI client not configured")
	}

	params := map[string]any{
		"model":         validated.Model,
		"message_count": len(validated.Messages),
		"temperature":   *validated.Temperature,
		"max_tokens":    *validated.MaxTokens,
	}
	callLogger := a.telemetry.NewCallLogger()

	text, err := a.config.Client.Complete(ctx, validated)
	if err != nil {
		callLogger.LogError("chatCompletion", params, err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	callLogger.LogSuccess("chatCompletion", params, text)
	return text, nil
}

// AnalyzeImage proxies an image-understanding request through the vision
// adapter. Empty prompt/model fall back to the adapter defaults; failures
// come back as an empty string per the adapter's contract.
func (a *App) AnalyzeImage(ctx context.Context, imageURL, prompt, model string) string {
	return a.vision.AnalyzeImage(ctx, imageURL, prompt, model)
}

// UpdateSettings validates a settings aggregate, applies defaults for the
// omitted options and installs it. The AI client is rebuilt when the
// provider-relevant fields change hands.
func (a *App) UpdateSettings(input models.AppSettings) (models.AppSettings, error) {
	validated, err := schemas.ValidateSettings(input)
	if err != nil {
		return models.AppSettings{}, err
	}

	a.config.Settings = validated
	a.config.Client = NewClientFromSettings(validated)
	a.vision = vision.NewAnalyzer(a.config.Client, a.telemetry)
	return validated, nil
}
