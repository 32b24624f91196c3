package vision

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/onyxlabs/onyxgpt/models"
	"github.com/onyxlabs/onyxgpt/stores"
	"github.com/onyxlabs/onyxgpt/telemetry"
)

// fakeClient implements models.ChatClient with canned behavior.
type fakeClient struct {
	response string
	err      error

	gotPrompt   string
	gotImageURL string
	gotModel    string
	calls       int
}

func (f *fakeClient) Complete(ctx context.Context, request models.InferenceRequest) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) Chat(ctx context.Context, prompt, imageURL string, opts models.ChatOptions) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	f.gotImageURL = imageURL
	f.gotModel = opts.Model
	return f.response, f.err
}

func newTestAnalyzer(client models.ChatClient) (*Analyzer, *telemetry.Logger) {
	tl := telemetry.NewLogger(stores.NewMemoryStore())
	return NewAnalyzer(client, tl), tl
}

func TestAnalyzeImage_ClientNotConfigured(t *testing.T) {
	analyzer, tl := newTestAnalyzer(nil)

	result := analyzer.AnalyzeImage(context.Background(), "https://example.com/cat.png", "", "")
	if result != "" {
		t.Errorf("expected empty result, got %q", result)
	}

	entries, _ := tl.Entries()
	if len(entries) != 0 {
		t.Errorf("no call was attempted, so no telemetry should exist; got %d entries", len(entries))
	}
	if analyzer.Busy() {
		t.Error("busy flag should be clear after early return")
	}
}

func TestAnalyzeImage_Success(t *testing.T) {
	client := &fakeClient{response: "A cat on a sofa"}
	analyzer, tl := newTestAnalyzer(client)

	result := analyzer.AnalyzeImage(context.Background(), "https://example.com/cat.png", "Describe it", "gpt-4o")
	if result != "A cat on a sofa" {
		t.Errorf("unexpected result: %q", result)
	}
	if client.gotPrompt != "Describe it" || client.gotModel != "gpt-4o" {
		t.Errorf("call parameters not forwarded: prompt=%q model=%q", client.gotPrompt, client.gotModel)
	}

	entries, _ := tl.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 telemetry entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Details.Method != "analyzeImage" {
		t.Errorf("unexpected method: %q", e.Details.Method)
	}
	if e.Details.Error != "" {
		t.Errorf("success entry should carry no error, got %q", e.Details.Error)
	}
	if analyzer.Busy() {
		t.Error("busy flag should be clear after success")
	}
}

func TestAnalyzeImage_Defaults(t *testing.T) {
	client := &fakeClient{response: "ok"}
	analyzer, _ := newTestAnalyzer(client)

	analyzer.AnalyzeImage(context.Background(), "https://example.com/img.png", "", "")
	if client.gotPrompt != DefaultPrompt {
		t.Errorf("expected default prompt %q, got %q", DefaultPrompt, client.gotPrompt)
	}
	if client.gotModel != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, client.gotModel)
	}
}

func TestAnalyzeImage_FailureSwallowed(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("model overloaded")}
	analyzer, tl := newTestAnalyzer(client)

	result := analyzer.AnalyzeImage(context.Background(), "https://example.com/cat.png", "", "")
	if result != "" {
		t.Errorf("failure should yield an empty result, got %q", result)
	}

	entries, _ := tl.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 error telemetry entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Details.Method != "analyzeImage" {
		t.Errorf("unexpected method: %q", e.Details.Method)
	}
	if e.Details.Error != "model overloaded" {
		t.Errorf("error message not recorded: %q", e.Details.Error)
	}
	if e.Details.Duration < 0 {
		t.Errorf("duration should be >= 0, got %d", e.Details.Duration)
	}
	if analyzer.Busy() {
		t.Error("busy flag should be clear after failure")
	}
}

func TestAnalyzeImage_LongResponseTruncatedInTelemetry(t *testing.T) {
	client := &fakeClient{response: strings.Repeat("y", 600)}
	analyzer, tl := newTestAnalyzer(client)

	result := analyzer.AnalyzeImage(context.Background(), "https://example.com/cat.png", "", "")
	if len(result) != 600 {
		t.Errorf("the caller should receive the full response, got %d chars", len(result))
	}

	entries, _ := tl.Entries()
	stored, ok := entries[0].Details.Response.(string)
	if !ok {
		t.Fatalf("expected textual response in telemetry, got %T", entries[0].Details.Response)
	}
	if len(stored) > telemetry.MaxResponseChars+4 {
		t.Errorf("telemetry should store a truncated response, got %d chars", len(stored))
	}
}

func TestAnalyzeImage_NilTelemetry(t *testing.T) {
	client := &fakeClient{response: "fine"}
	analyzer := NewAnalyzer(client, nil)

	if result := analyzer.AnalyzeImage(context.Background(), "https://example.com/x.png", "", ""); result != "fine" {
		t.Errorf("analysis should work without telemetry, got %q", result)
	}
}
