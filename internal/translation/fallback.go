package translation

import (
	"context"
	"log/slog"
	"strings"
)

// Fallback turns every service failure into the original text so a run
// keeps going. It never returns an error.
type Fallback struct {
	client Client
	logger *slog.Logger
}

// NewFallback creates a never-failing wrapper around client
func NewFallback(client Client, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{client: client, logger: logger}
}

// Translate returns the service output for text, or text itself when the
// call fails or yields nothing. The bool reports whether the service answered.
func (f *Fallback) Translate(ctx context.Context, text, targetLanguage string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return text, false
	}

	out, err := f.client.Translate(ctx, text, targetLanguage)
	if err != nil {
		f.logger.Warn("translation failed, keeping original text",
			"provider", f.client.Name(), "language", targetLanguage, "error", err)
		return text, false
	}

	if strings.TrimSpace(out) == "" {
		f.logger.Warn("empty translation response, keeping original text",
			"provider", f.client.Name(), "language", targetLanguage)
		return text, false
	}

	return out, true
}
