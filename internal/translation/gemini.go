package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured for the gemini provider
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient translates with the Gemini API
type GeminiClient struct {
	apiKey      string
	model       string
	temperature float32
	timeout     time.Duration
	client      *genai.Client
}

// NewGeminiClient creates a new Gemini translator
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini %w", ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiClient{
		apiKey:      config.APIKey,
		model:       model,
		temperature: float32(config.Temperature),
		timeout:     config.Timeout,
		client:      client,
	}, nil
}

// Translate sends the prompt for text and returns the response text
func (g *GeminiClient) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(text, targetLanguage)), cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	out := extractTextFromResponse(resp)
	if out == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return out, nil
}

// Name returns the provider name
func (g *GeminiClient) Name() string {
	return "gemini/" + g.model
}

func extractTextFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(text.String())
}
