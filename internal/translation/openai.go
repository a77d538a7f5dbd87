package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient translates with the OpenAI chat completion API
type OpenAIClient struct {
	apiKey      string
	model       string
	temperature float32
	timeout     time.Duration
	client      *openai.Client
}

// NewOpenAIClient creates a new OpenAI translator
func NewOpenAIClient(config *Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI %w", ErrMissingAPIKey)
	}

	model := config.Model
	if model == "" || strings.HasPrefix(model, "gemini") {
		model = openai.GPT4oMini
	}

	return &OpenAIClient{
		apiKey:      config.APIKey,
		model:       model,
		temperature: float32(config.Temperature),
		timeout:     config.Timeout,
		client:      openai.NewClient(config.APIKey),
	}, nil
}

// Translate sends the prompt for text and returns the response text
func (o *OpenAIClient) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	ctx, cancel := withTimeout(ctx, o.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(text, targetLanguage),
			},
		},
		Temperature: o.temperature,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the provider name
func (o *OpenAIClient) Name() string {
	return "openai/" + o.model
}
