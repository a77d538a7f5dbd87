package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Client sends one text blob to a translation service
type Client interface {
	// Translate returns the raw model output for text translated to targetLanguage
	Translate(ctx context.Context, text, targetLanguage string) (string, error)

	// Name returns the provider name
	Name() string
}

// ErrMissingAPIKey is returned when a provider is created without credentials
var ErrMissingAPIKey = errors.New("API key not found")

// Config holds the translation service settings
type Config struct {
	Provider    string // "gemini" or "openai"
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration

	// Circuit breaker: open after this many consecutive failures, probe again after Cooldown
	MaxFailures uint32
	Cooldown    time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:    "gemini",
		Model:       DefaultGeminiModel,
		Temperature: 1,
		Timeout:     5 * time.Minute,
		MaxFailures: 3,
		Cooldown:    time.Minute,
	}
}

// NewClient creates the client for the configured provider, wrapped in a
// circuit breaker
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		client Client
		err    error
	)
	switch strings.ToLower(config.Provider) {
	case "gemini", "":
		client, err = NewGeminiClient(ctx, config)
	case "openai":
		client, err = NewOpenAIClient(config)
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewBreaker(client, config.MaxFailures, config.Cooldown), nil
}

// BuildPrompt returns the instruction sent with every part
func BuildPrompt(sourceText, targetLanguage string) string {
	return fmt.Sprintf(`Input text use JSON format. for example:
{
    "text to translate": ""
}
replace "" with the translated text.

Translate the following text to %s.
Maintain the original meaning and context.
Return only the translated text, nothing else.

Text to translate: %s
`, targetLanguage, sourceText)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
