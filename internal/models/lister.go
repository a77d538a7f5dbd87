package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Lister lists the chat models a provider offers for translation
type Lister struct {
	provider string
	apiKey   string
	client   *openai.Client
}

// NewLister creates a new model lister for "gemini" or "openai"
func NewLister(provider, apiKey string) *Lister {
	l := &Lister{
		provider: strings.ToLower(provider),
		apiKey:   apiKey,
	}
	if l.provider == "openai" {
		l.client = openai.NewClient(apiKey)
	}
	return l
}

// Models returns the sorted IDs of the translation-capable models
func (l *Lister) Models(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("%s API key not found. Set %s environment variable or configure in .sheetlate.yaml",
			l.providerTitle(), l.envVar())
	}

	var (
		ids []string
		err error
	)
	switch l.provider {
	case "openai":
		ids, err = l.openAIModels(ctx)
	case "gemini", "":
		ids, err = l.geminiModels(ctx)
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", l.provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	return FilterChatModels(ids), nil
}

// ListAvailableModels prints the translation-capable models
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	models, err := l.Models(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Available %s chat models for translation:\n", l.providerTitle())
	if len(models) == 0 {
		fmt.Println("  No chat models found")
		return nil
	}
	for _, model := range models {
		fmt.Printf("  %s\n", model)
	}
	return nil
}

func (l *Lister) openAIModels(ctx context.Context) ([]string, error) {
	list, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list.Models))
	for _, model := range list.Models {
		ids = append(ids, model.ID)
	}
	return ids, nil
}

func (l *Lister) geminiModels(ctx context.Context) ([]string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  l.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	var ids []string
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, err
		}
		if supportsGenerate(model.SupportedActions) {
			ids = append(ids, strings.TrimPrefix(model.Name, "models/"))
		}
	}
	return ids, nil
}

func supportsGenerate(actions []string) bool {
	if len(actions) == 0 {
		return true
	}
	for _, a := range actions {
		if a == "generateContent" {
			return true
		}
	}
	return false
}

// FilterChatModels keeps text chat models and drops speech, image,
// embedding and realtime variants. The result is sorted.
func FilterChatModels(ids []string) []string {
	excluded := []string{"tts", "audio", "dall-e", "image", "embedding", "realtime", "transcribe", "moderation", "whisper"}

	var chat []string
	for _, id := range ids {
		lower := strings.ToLower(id)
		if !strings.Contains(lower, "gpt") && !strings.Contains(lower, "chat") && !strings.Contains(lower, "gemini") {
			continue
		}
		skip := false
		for _, ex := range excluded {
			if strings.Contains(lower, ex) {
				skip = true
				break
			}
		}
		if !skip {
			chat = append(chat, id)
		}
	}

	sort.Strings(chat)
	return chat
}

func (l *Lister) providerTitle() string {
	if l.provider == "openai" {
		return "OpenAI"
	}
	return "Gemini"
}

func (l *Lister) envVar() string {
	if l.provider == "openai" {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}
