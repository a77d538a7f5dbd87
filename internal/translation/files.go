package translation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"codeberg.org/snonux/sheetlate/internal/chunker"
	"codeberg.org/snonux/sheetlate/internal/sanitize"
	"codeberg.org/snonux/sheetlate/internal/workspace"
)

var (
	// ErrPartNotFound is returned when the requested part file does not exist
	ErrPartNotFound = errors.New("part file not found")
	// ErrPartsNotFound is returned when a language has no parts directory
	ErrPartsNotFound = errors.New("parts directory not found")
)

// Outcome describes one translated part
type Outcome struct {
	Stem   string
	Output string
	// FromService is false when the original text was written back
	FromService bool
	// ValidJSON reports whether the cleaned output decodes as a JSON object
	ValidJSON bool
	Skipped   bool
}

// Summary counts the outcomes of TranslateAll
type Summary struct {
	Total     int
	Succeeded int
	Skipped   int
	Fallbacks int
	Failed    []string
	Outcomes  []Outcome
}

// AllOptions controls TranslateAll
type AllOptions struct {
	// SkipExisting leaves parts alone whose translated file already exists
	SkipExisting bool
	// OnFile is called after each part with its outcome
	OnFile func(Outcome)
}

// FileTranslator translates part files of a workspace
type FileTranslator struct {
	layout   workspace.Layout
	fallback *Fallback
	logger   *slog.Logger
}

// NewFileTranslator creates a translator that reads from parts/ and writes to output/
func NewFileTranslator(layout workspace.Layout, client Client, logger *slog.Logger) *FileTranslator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileTranslator{
		layout:   layout,
		fallback: NewFallback(client, logger),
		logger:   logger,
	}
}

// TranslateFile translates parts/<language>/<stem>.json into
// output/<language>/<stem>.json
func (t *FileTranslator) TranslateFile(ctx context.Context, language, stem string) (Outcome, error) {
	outcome := Outcome{Stem: stem}

	if err := workspace.ValidateLanguage(language); err != nil {
		return outcome, err
	}
	if err := workspace.ValidateStem(stem); err != nil {
		return outcome, err
	}

	inPath := t.layout.PartPath(language, stem)
	data, err := os.ReadFile(inPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrPartNotFound, inPath)
		} else {
			err = fmt.Errorf("failed to read part: %w", err)
		}
		t.logger.Error("cannot translate part", "file", inPath, "error", err)
		return outcome, err
	}

	t.logger.Info("translating part", "file", inPath, "language", language)
	text, fromService := t.fallback.Translate(ctx, string(data), language)

	// An interrupted call must not leave the source text behind as a translation
	if err := ctx.Err(); err != nil {
		return outcome, err
	}

	cleaned := sanitize.Clean(text)
	if cleaned == "" {
		cleaned = string(data)
		fromService = false
	}

	_, decodeErr := chunker.DecodeChunk([]byte(cleaned))
	outcome.ValidJSON = decodeErr == nil
	if decodeErr != nil {
		t.logger.Warn("translated part is not a JSON object", "stem", stem, "error", decodeErr)
	}

	outPath := t.layout.TranslatedPath(language, stem)
	if err := workspace.WriteFileAtomic(outPath, []byte(cleaned), 0644); err != nil {
		t.logger.Error("failed to write translated part", "file", outPath, "error", err)
		return outcome, fmt.Errorf("failed to write translated part: %w", err)
	}

	outcome.Output = outPath
	outcome.FromService = fromService
	t.logger.Info("translated part", "file", outPath, "from_service", fromService)
	return outcome, nil
}

// TranslateAll translates every part of language in natural order. Per-file
// failures are recorded in the summary; only a missing parts directory or an
// interrupted context return an error.
func (t *FileTranslator) TranslateAll(ctx context.Context, language string, opts AllOptions) (*Summary, error) {
	if err := workspace.ValidateLanguage(language); err != nil {
		return nil, err
	}

	dir := t.layout.PartsDir(language)
	names, err := workspace.ListJSON(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrPartsNotFound, dir)
		}
		t.logger.Error("cannot list parts", "dir", dir, "error", err)
		return nil, err
	}

	summary := &Summary{Total: len(names)}
	if len(names) == 0 {
		t.logger.Warn("no parts to translate", "dir", dir)
		return summary, nil
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		stem := workspace.Stem(name)
		var outcome Outcome

		if opts.SkipExisting && workspace.Exists(t.layout.TranslatedPath(language, stem)) {
			outcome = Outcome{Stem: stem, Output: t.layout.TranslatedPath(language, stem), Skipped: true, ValidJSON: true}
			summary.Skipped++
			t.logger.Info("skipping translated part", "stem", stem)
		} else {
			outcome, err = t.TranslateFile(ctx, language, stem)
			switch {
			case ctx.Err() != nil:
				return summary, ctx.Err()
			case err != nil:
				summary.Failed = append(summary.Failed, stem)
			default:
				summary.Succeeded++
				if !outcome.FromService {
					summary.Fallbacks++
				}
			}
		}

		summary.Outcomes = append(summary.Outcomes, outcome)
		if opts.OnFile != nil {
			opts.OnFile(outcome)
		}
	}

	t.logger.Info("translation finished", "language", language, "total", summary.Total,
		"succeeded", summary.Succeeded, "skipped", summary.Skipped, "fallbacks", summary.Fallbacks,
		"failed", len(summary.Failed))
	return summary, nil
}
