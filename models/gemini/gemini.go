package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/onyxlabs/onyxgpt/models"
)

const DefaultModel = "gemini-2.0-flash"

// Client talks to Gemini through the genai SDK. It implements
// models.ChatClient. Authentication follows the SDK's defaults
// (GEMINI_API_KEY / GOOGLE_API_KEY or application default credentials).
type Client struct {
	Model       string       // Default model
	Temperature *float64     // Optional default sampling temperature
	MaxTokens   *int         // Optional default completion budget
	HTTPClient  *http.Client // Used for fetching image URLs, not for the SDK
}

// Complete implements models.ChatClient for validated completions-style
// requests. Roles are mapped to Gemini's user/model convention; system
// messages become system instructions.
func (c *Client) Complete(ctx context.Context, request models.InferenceRequest) (string, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var contents []*genai.Content
	var systemParts []*genai.Part
	for _, m := range request.Messages {
		part := &genai.Part{Text: m.Content}
		switch m.Role {
		case models.RoleSystem:
			systemParts = append(systemParts, part)
		case models.RoleAssistant:
			contents = append(contents, &genai.Content{Role: "model", Parts: []*genai.Part{part}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []*genai.Part{part}})
		}
	}

	config := c.generateConfig(request.Temperature, request.MaxTokens)
	if len(systemParts) > 0 {
		config.SystemInstruction = &genai.Content{Parts: systemParts}
	}

	result, err := client.Models.GenerateContent(ctx, c.resolveModel(request.Model), contents, config)
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
	return extractText(result)
}

// Chat implements models.ChatClient for single-prompt calls. Gemini takes
// image bytes inline rather than by URL, so a non-empty imageURL is fetched
// first and attached as inline data.
func (c *Client) Chat(ctx context.Context, prompt, imageURL string, opts models.ChatOptions) (string, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	parts := []*genai.Part{{Text: prompt}}
	if imageURL != "" {
		data, mimeType, err := c.fetchImage(ctx, imageURL)
		if err != nil {
			return "", err
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: mimeType, Data: data},
		})
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	config := c.generateConfig(opts.Temperature, opts.MaxTokens)

	result, err := client.Models.GenerateContent(ctx, c.resolveModel(opts.Model), contents, config)
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
	return extractText(result)
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

func (c *Client) generateConfig(temperature *float64, maxTokens *int) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if temperature == nil {
		temperature = c.Temperature
	}
	if maxTokens == nil {
		maxTokens = c.MaxTokens
	}
	if temperature != nil {
		config.Temperature = genai.Ptr(float32(*temperature))
	}
	if maxTokens != nil {
		config.MaxOutputTokens = int32(*maxTokens)
	}
	return config
}

// fetchImage downloads the image so it can be sent as inline data.
func (c *Client) fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image request: %w", err)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, nil
}

// extractText flattens the response candidates into text, the same way the
// UI would render a single assistant turn.
func extractText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("response contained no candidates")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
