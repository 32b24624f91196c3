package openrouter

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
	OpenRouterBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel      = "openai/gpt-4o-mini"
)

// Client talks to the OpenRouter chat completions API. Also works against
// any OpenAI-compatible endpoint via BaseURL. It implements
// models.ChatClient.
type Client struct {
	Model       string   // Default model (e.g. "openai/gpt-4o")
	Temperature *float64 // Optional default sampling temperature
	MaxTokens   *int     // Optional default completion budget
	SiteURL     string   // Optional: your site URL for OpenRouter rankings
	SiteName    string   // Optional: your site name for OpenRouter rankings
	BaseURL     string   // Optional: custom API base URL (defaults to OpenRouter)
	APIKey      string   // Optional: explicit key (e.g. the user's custom key); falls back to OPENROUTER_API_KEY
	HTTPClient  *http.Client
}

// Complete implements models.ChatClient for validated completions-style
// requests. The request is assumed to have passed schemas validation, so
// temperature and max_tokens are already defaulted.
func (c *Client) Complete(ctx context.Context, request models.InferenceRequest) (string, error) {
	msgs := make([]Message, len(request.Messages))
	for i, m := range request.Messages {
		msgs[i] = Message{Role: m.Role, Content: m.Content}
	}

	body := ChatRequest{
		Model:       c.resolveModel(request.Model),
		Messages:    msgs,
		Temperature: request.Temperature,
		MaxTokens:   request.MaxTokens,
	}

	resp, err := c.makeRequest(ctx, body)
	if err != nil {
		return "", err
	}
	return firstChoiceText(resp)
}

// Chat implements models.ChatClient for single-prompt calls, optionally
// grounded on an image URL (multimodal content parts).
func (c *Client) Chat(ctx context.Context, prompt, imageURL string, opts models.ChatOptions) (string, error) {
	var content interface{} = prompt
	if imageURL != "" {
		content = []ContentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
		}
	}

	body := ChatRequest{
		Model:       c.resolveModel(opts.Model),
		Messages:    []Message{{Role: "user", Content: content}},
		Temperature: firstNonNil(opts.Temperature, c.Temperature),
		MaxTokens:   firstNonNil(opts.MaxTokens, c.MaxTokens),
	}

	resp, err := c.makeRequest(ctx, body)
	if err != nil {
		return "", err
	}
	return firstChoiceText(resp)
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

// makeRequest sends a non-streaming request to OpenRouter
func (c *Client) makeRequest(ctx context.Context, body ChatRequest) (ChatResponse, error) {
	jsonBytes, err := json.Marshal(body)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = OpenRouterBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, bytes.NewReader(jsonBytes))
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	c.setHeaders(req)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Message != "" {
			return ChatResponse{}, fmt.Errorf("OpenRouter API error: %s (type: %s)", errResp.Error.Message, errResp.Error.Type)
		}
		return ChatResponse{}, fmt.Errorf("OpenRouter API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return ChatResponse{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return chatResp, nil
}

func (c *Client) setHeaders(req *http.Request) {
	apiKey := c.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if c.SiteURL != "" {
		req.Header.Set("HTTP-Referer", c.SiteURL)
	}
	if c.SiteName != "" {
		req.Header.Set("X-Title", c.SiteName)
	}
}

// firstChoiceText extracts the assistant text from the first choice.
func firstChoiceText(resp ChatResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func firstNonNil[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
