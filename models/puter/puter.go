package puter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/onyxlabs/onyxgpt/models"
)

const (
	PuterBaseURL = "https://api.puter.com/drivers/call"
	DefaultModel = "gpt-5-nano"

	driverInterface = "puter-chat-completion"
)

// Client talks to the Puter chat-completion driver. It implements
// models.ChatClient.
type Client struct {
	Model       string   // Default model
	Temperature *float64 // Optional default sampling temperature
	MaxTokens   *int     // Optional default completion budget
	BaseURL     string   // Optional: custom driver endpoint
	APIKey      string   // Optional: explicit token; falls back to PUTER_API_KEY
	HTTPClient  *http.Client
}

// driverCall is the envelope Puter's driver endpoint expects.
type driverCall struct {
	Interface string     `json:"interface"`
	Method    string     `json:"method"`
	Args      driverArgs `json:"args"`
}

type driverArgs struct {
	Messages    []driverMessage `json:"messages"`
	Model       string          `json:"model,omitempty"`
	Temperature *float64        `json:"temperature,omitempty"`
	MaxTokens   *int            `json:"max_tokens,omitempty"`
}

type driverMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string or []contentPart
}

type contentPart struct {
	Type     string    `json:"type"` // "text" or "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

// driverResponse is the envelope Puter wraps driver results in.
type driverResponse struct {
	Success bool         `json:"success"`
	Result  driverResult `json:"result"`
	Error   *driverError `json:"error,omitempty"`
}

type driverResult struct {
	Message struct {
		Role    string      `json:"role"`
		Content interface{} `json:"content"` // string, or array of parts
	} `json:"message"`
}

type driverError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Complete implements models.ChatClient for validated completions-style
// requests.
func (c *Client) Complete(ctx context.Context, request models.InferenceRequest) (string, error) {
	msgs := make([]driverMessage, len(request.Messages))
	for i, m := range request.Messages {
		msgs[i] = driverMessage{Role: m.Role, Content: m.Content}
	}

	args := driverArgs{
		Messages:    msgs,
		Model:       c.resolveModel(request.Model),
		Temperature: request.Temperature,
		MaxTokens:   request.MaxTokens,
	}
	return c.makeRequest(ctx, args)
}

// Chat implements models.ChatClient for single-prompt calls, optionally
// grounded on an image URL.
func (c *Client) Chat(ctx context.Context, prompt, imageURL string, opts models.ChatOptions) (string, error) {
	var content interface{} = prompt
	if imageURL != "" {
		content = []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageRef{URL: imageURL}},
		}
	}

	args := driverArgs{
		Messages:    []driverMessage{{Role: "user", Content: content}},
		Model:       c.resolveModel(opts.Model),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	return c.makeRequest(ctx, args)
}

func (c *Client) resolveModel(model string) string {
	if model != "" {
		return model
	}
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel
}

// makeRequest sends one driver call and extracts the assistant text.
func (c *Client) makeRequest(ctx context.Context, args driverArgs) (string, error) {
	body := driverCall{
		Interface: driverInterface,
		Method:    "complete",
		Args:      args,
	}

	jsonBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal driver call: %w", err)
	}

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = PuterBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, bytes.NewReader(jsonBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	apiKey := c.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("PUTER_API_KEY")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Puter API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var driverResp driverResponse
	if err := json.Unmarshal(respBody, &driverResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal driver response: %w", err)
	}
	if !driverResp.Success {
		if driverResp.Error != nil {
			return "", fmt.Errorf("Puter driver error: %s (code: %s)", driverResp.Error.Message, driverResp.Error.Code)
		}
		return "", fmt.Errorf("Puter driver call failed")
	}

	return coerceText(driverResp.Result.Message.Content), nil
}

// coerceText flattens the driver's content shapes (plain string, or an array
// of typed parts) into text.
func coerceText(content interface{}) string {
	switch v := content.(type) {
	case string:
		return v
	case []interface{}:
		text := ""
		for _, part := range v {
			if m, ok := part.(map[string]interface{}); ok {
				if t, ok := m["text"].(string); ok {
					text += t
				}
			}
		}
		return text
	}
	return ""
}
