package translation

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/sheetlate/internal/testutil"
	"codeberg.org/snonux/sheetlate/internal/workspace"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Provider != "gemini" {
		t.Errorf("Expected provider 'gemini', got '%s'", config.Provider)
	}
	if config.Model != DefaultGeminiModel {
		t.Errorf("Expected model '%s', got '%s'", DefaultGeminiModel, config.Model)
	}
	if config.Temperature != 1 {
		t.Errorf("Expected temperature 1, got %v", config.Temperature)
	}
	if config.MaxFailures == 0 || config.Cooldown <= 0 {
		t.Error("Expected circuit breaker settings to be set")
	}
}

func TestNewClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantKey  bool
	}{
		{"gemini without key", "gemini", true},
		{"openai without key", "openai", true},
		{"unknown provider", "deepl", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(context.Background(), &Config{Provider: tt.provider})
			if err == nil {
				t.Fatal("Expected error")
			}
			if errors.Is(err, ErrMissingAPIKey) != tt.wantKey {
				t.Errorf("errors.Is(err, ErrMissingAPIKey) = %v, want %v (err: %v)", !tt.wantKey, tt.wantKey, err)
			}
		})
	}
}

func TestNewClient_OpenAI(t *testing.T) {
	client, err := NewClient(context.Background(), &Config{
		Provider: "openai",
		APIKey:   "test-api-key",
		Model:    DefaultGeminiModel,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if _, ok := client.(*Breaker); !ok {
		t.Errorf("Expected client to be wrapped in a Breaker, got %T", client)
	}
	// A gemini model name is not sent to OpenAI
	if client.Name() != "openai/gpt-4o-mini" {
		t.Errorf("Expected name 'openai/gpt-4o-mini', got '%s'", client.Name())
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(`{"hello": ""}`, "japanese")

	for _, want := range []string{
		"Translate the following text to japanese.",
		`Text to translate: {"hello": ""}`,
		`replace "" with the translated text.`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name        string
		client      *testutil.MockTranslator
		text        string
		want        string
		fromService bool
		calls       int
	}{
		{
			name:        "service answer",
			client:      &testutil.MockTranslator{Translations: map[string]string{"hello": "hola"}},
			text:        "hello",
			want:        "hola",
			fromService: true,
			calls:       1,
		},
		{
			name:   "blank text is not sent",
			client: &testutil.MockTranslator{},
			text:   "  \n ",
			want:   "  \n ",
			calls:  0,
		},
		{
			name:   "error returns the original",
			client: &testutil.MockTranslator{Errors: map[string]error{"hello": errors.New("quota exceeded")}},
			text:   "hello",
			want:   "hello",
			calls:  1,
		},
		{
			name:   "whitespace response returns the original",
			client: &testutil.MockTranslator{Translations: map[string]string{"hello": " \n"}},
			text:   "hello",
			want:   "hello",
			calls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fallback := NewFallback(tt.client, testutil.DiscardLogger())

			got, fromService := fallback.Translate(context.Background(), tt.text, "spanish")
			if got != tt.want {
				t.Errorf("Translate() = %q, want %q", got, tt.want)
			}
			if fromService != tt.fromService {
				t.Errorf("fromService = %v, want %v", fromService, tt.fromService)
			}
			if len(tt.client.Calls) != tt.calls {
				t.Errorf("Expected %d service calls, got %d", tt.calls, len(tt.client.Calls))
			}
		})
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	failing := &testutil.FailingTranslator{Err: errors.New("service down")}
	breaker := NewBreaker(failing, 3, time.Hour)

	for i := 0; i < 5; i++ {
		if _, err := breaker.Translate(context.Background(), "hello", "german"); err == nil {
			t.Fatalf("Call %d: expected error", i+1)
		}
	}

	if failing.Calls != 3 {
		t.Errorf("Expected the service to be called 3 times, got %d", failing.Calls)
	}
	if breaker.State() != gobreaker.StateOpen.String() {
		t.Errorf("Expected breaker to be open, got %s", breaker.State())
	}

	_, err := breaker.Translate(context.Background(), "hello", "german")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected ErrOpenState, got %v", err)
	}
}

func TestBreaker_CancellationDoesNotTrip(t *testing.T) {
	failing := &testutil.FailingTranslator{Err: context.Canceled}
	breaker := NewBreaker(failing, 2, time.Hour)

	for i := 0; i < 4; i++ {
		_, _ = breaker.Translate(context.Background(), "hello", "german")
	}

	if failing.Calls != 4 {
		t.Errorf("Expected every call to reach the service, got %d", failing.Calls)
	}
	if breaker.State() != gobreaker.StateClosed.String() {
		t.Errorf("Expected breaker to stay closed, got %s", breaker.State())
	}
}

func TestBreaker_PassesThrough(t *testing.T) {
	mock := &testutil.MockTranslator{Translations: map[string]string{"cat": "gato"}}
	breaker := NewBreaker(mock, 0, 0)

	got, err := breaker.Translate(context.Background(), "cat", "spanish")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "gato" {
		t.Errorf("Expected 'gato', got '%s'", got)
	}
	if breaker.Name() != "mock" {
		t.Errorf("Expected name 'mock', got '%s'", breaker.Name())
	}
}

const partContent = "{\n  \"hello\": \"\",\n  \"goodbye\": \"\"\n}"

func setupParts(t *testing.T, language string, stems ...string) workspace.Layout {
	t.Helper()

	layout := workspace.NewLayout(testutil.CreateTestWorkspace(t))
	for _, stem := range stems {
		testutil.CreateTestFile(t, layout.PartPath(language, stem), []byte(partContent))
	}
	return layout
}

func TestTranslateFile(t *testing.T) {
	layout := setupParts(t, "japanese", "p1")
	mock := &testutil.MockTranslator{
		Respond: func(text, lang string) string {
			return "Here is the translation:\n```json\n{\"hello\": \"こんにちは\", \"goodbye\": \"さようなら\"}\n```\nEnjoy!"
		},
	}
	translator := NewFileTranslator(layout, mock, testutil.DiscardLogger())

	outcome, err := translator.TranslateFile(context.Background(), "japanese", "p1")
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	if !outcome.FromService || !outcome.ValidJSON {
		t.Errorf("Unexpected outcome: %+v", outcome)
	}
	if outcome.Output != layout.TranslatedPath("japanese", "p1") {
		t.Errorf("Unexpected output path: %s", outcome.Output)
	}

	got := testutil.ReadJSONObject(t, outcome.Output)
	want := map[string]string{"hello": "こんにちは", "goodbye": "さようなら"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translated content = %v, want %v", got, want)
	}
}

func TestTranslateFile_ServiceFailureWritesSource(t *testing.T) {
	layout := setupParts(t, "german", "p1")
	failing := &testutil.FailingTranslator{Err: errors.New("rate limited")}
	translator := NewFileTranslator(layout, failing, testutil.DiscardLogger())

	outcome, err := translator.TranslateFile(context.Background(), "german", "p1")
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	if outcome.FromService {
		t.Error("Expected the fallback to be used")
	}
	testutil.AssertFileContent(t, layout.TranslatedPath("german", "p1"), []byte(partContent))
}

func TestTranslateFile_MissingPart(t *testing.T) {
	layout := setupParts(t, "german")
	mock := &testutil.MockTranslator{}
	translator := NewFileTranslator(layout, mock, testutil.DiscardLogger())

	_, err := translator.TranslateFile(context.Background(), "german", "p7")
	if !errors.Is(err, ErrPartNotFound) {
		t.Errorf("Expected ErrPartNotFound, got %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Error("Expected no service calls")
	}
}

func TestTranslateFile_InvalidArguments(t *testing.T) {
	layout := setupParts(t, "german", "p1")
	translator := NewFileTranslator(layout, &testutil.MockTranslator{}, testutil.DiscardLogger())

	if _, err := translator.TranslateFile(context.Background(), "../german", "p1"); !errors.Is(err, workspace.ErrInvalidLanguage) {
		t.Errorf("Expected ErrInvalidLanguage, got %v", err)
	}
	if _, err := translator.TranslateFile(context.Background(), "german", "../p1"); !errors.Is(err, workspace.ErrInvalidStem) {
		t.Errorf("Expected ErrInvalidStem, got %v", err)
	}
}

func TestTranslateFile_CancelledWritesNothing(t *testing.T) {
	layout := setupParts(t, "german", "p1")
	translator := NewFileTranslator(layout, &testutil.MockTranslator{}, testutil.DiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := translator.TranslateFile(ctx, "german", "p1"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	testutil.AssertFileNotExists(t, layout.TranslatedPath("german", "p1"))
}

func TestTranslateAll(t *testing.T) {
	layout := setupParts(t, "french", "p10", "p2", "p1")
	mock := &testutil.MockTranslator{
		Respond: func(text, lang string) string { return `{"hello": "bonjour"}` },
	}
	translator := NewFileTranslator(layout, mock, testutil.DiscardLogger())

	var order []string
	summary, err := translator.TranslateAll(context.Background(), "french", AllOptions{
		OnFile: func(o Outcome) { order = append(order, o.Stem) },
	})
	if err != nil {
		t.Fatalf("TranslateAll failed: %v", err)
	}

	if want := []string{"p1", "p2", "p10"}; !reflect.DeepEqual(order, want) {
		t.Errorf("Translation order = %v, want %v", order, want)
	}
	if summary.Total != 3 || summary.Succeeded != 3 || len(summary.Failed) != 0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	for _, stem := range order {
		testutil.AssertFileExists(t, layout.TranslatedPath("french", stem))
	}
}

func TestTranslateAll_SkipExisting(t *testing.T) {
	layout := setupParts(t, "french", "p1", "p2")
	testutil.CreateTestFile(t, layout.TranslatedPath("french", "p2"), []byte(`{"hello": "salut"}`))

	mock := &testutil.MockTranslator{}
	translator := NewFileTranslator(layout, mock, testutil.DiscardLogger())

	summary, err := translator.TranslateAll(context.Background(), "french", AllOptions{SkipExisting: true})
	if err != nil {
		t.Fatalf("TranslateAll failed: %v", err)
	}

	if summary.Skipped != 1 || summary.Succeeded != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("Expected 1 service call, got %d", len(mock.Calls))
	}
	testutil.AssertFileContent(t, layout.TranslatedPath("french", "p2"), []byte(`{"hello": "salut"}`))
}

func TestTranslateAll_Fallbacks(t *testing.T) {
	layout := setupParts(t, "french", "p1", "p2")
	translator := NewFileTranslator(layout, &testutil.FailingTranslator{Err: errors.New("down")}, testutil.DiscardLogger())

	summary, err := translator.TranslateAll(context.Background(), "french", AllOptions{})
	if err != nil {
		t.Fatalf("TranslateAll failed: %v", err)
	}
	if summary.Succeeded != 2 || summary.Fallbacks != 2 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
}

func TestTranslateAll_MissingDirectory(t *testing.T) {
	layout := workspace.NewLayout(t.TempDir())
	translator := NewFileTranslator(layout, &testutil.MockTranslator{}, testutil.DiscardLogger())

	_, err := translator.TranslateAll(context.Background(), "french", AllOptions{})
	if !errors.Is(err, ErrPartsNotFound) {
		t.Errorf("Expected ErrPartsNotFound, got %v", err)
	}
}

func TestTranslateAll_EmptyDirectory(t *testing.T) {
	layout := setupParts(t, "french")
	if err := os.MkdirAll(layout.PartsDir("french"), 0755); err != nil {
		t.Fatal(err)
	}
	translator := NewFileTranslator(layout, &testutil.MockTranslator{}, testutil.DiscardLogger())

	summary, err := translator.TranslateAll(context.Background(), "french", AllOptions{})
	if err != nil {
		t.Fatalf("TranslateAll failed: %v", err)
	}
	if summary.Total != 0 {
		t.Errorf("Expected no parts, got %d", summary.Total)
	}
}

func TestGeminiClient_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	config := DefaultConfig()
	config.APIKey = apiKey
	client, err := NewClient(context.Background(), config)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	out, err := client.Translate(context.Background(), `{"apple": ""}`, "spanish")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out == "" {
		t.Error("Got empty translation")
	}
	t.Logf("Gemini response: %s", out)
}

func TestOpenAIClient_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	client, err := NewOpenAIClient(&Config{APIKey: apiKey, Temperature: 0.3})
	if err != nil {
		t.Fatalf("NewOpenAIClient failed: %v", err)
	}

	out, err := client.Translate(context.Background(), `{"apple": ""}`, "spanish")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out == "" {
		t.Error("Got empty translation")
	}
	t.Logf("OpenAI response: %s", out)
}
