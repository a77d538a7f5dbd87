package testutil

import (
	"context"
	"fmt"
)

// MockTranslator mocks the translation service. It satisfies translation.Client.
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	// Respond, when set, computes the response for texts not found in Translations
	Respond func(text, targetLanguage string) string
	Calls   []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("Translate: %d bytes (->%s)", len(text), targetLanguage))

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	if m.Respond != nil {
		return m.Respond(text, targetLanguage), nil
	}

	return fmt.Sprintf("mock translation of %s", text), nil
}

// Name returns the mock provider name
func (m *MockTranslator) Name() string {
	return "mock"
}

// FailingTranslator fails every call with Err
type FailingTranslator struct {
	Err   error
	Calls int
}

// Translate always returns f.Err
func (f *FailingTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	f.Calls++
	return "", f.Err
}

// Name returns the mock provider name
func (f *FailingTranslator) Name() string {
	return "failing"
}
