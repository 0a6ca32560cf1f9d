package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements Client using Google's official Gemini Go SDK.
// The SDK client is initialized lazily on first use.
type GeminiClient struct {
	client *genai.Client
	apiKey string
	model  string
}

// NewGeminiClient builds a GeminiClient. An empty model selects
// DefaultGeminiModel.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{apiKey: apiKey, model: model}
}

func (c *GeminiClient) ensureClient(ctx context.Context) error {
	if c.client != nil {
		return nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  c.apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	return nil
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.ensureClient(ctx); err != nil {
		return "", err
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{genai.NewPartFromText(prompt)},
		},
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	return strings.TrimSpace(out.String()), nil
}
