package cli

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/sheetlate/internal/workspace"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	WorkDir    string
	LogFile    string
	Verbose    bool
	ListModels bool

	// Pipeline flags
	Language      string
	ItemsPerPart  int
	MaxLines      int
	File          string
	Status        bool
	StatusFormat  string
	ConvertToJSON bool
	Schema        bool
	Full          bool
	Clean         bool
	SkipExisting  bool

	// Merge flags
	Merge    bool
	MergeAll bool
	CSV      bool
	SQLite   bool

	// Translation flags
	Provider    string
	Model       string
	Temperature float64
}

// Mode is the operation selected by the flags
type Mode int

const (
	ModeDefault Mode = iota
	ModeListModels
	ModeStatus
	ModeMergeAll
	ModeMerge
	ModeSingle
	ModeFull
	ModeConvert
)

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		WorkDir:      ".",
		LogFile:      "translation_pipeline.log",
		Language:     "japanese",
		ItemsPerPart: 200,
		MaxLines:     500,
		StatusFormat: "text",
		Provider:     "gemini",
		Model:        "gemini-2.5-flash",
		Temperature:  1,
	}
}

// Mode returns the operation to run; when several mode flags are given the
// first in this order wins: list models, status, merge all, merge, single
// file, full, convert
func (f *Flags) Mode() Mode {
	switch {
	case f.ListModels:
		return ModeListModels
	case f.Status:
		return ModeStatus
	case f.MergeAll:
		return ModeMergeAll
	case f.Merge:
		return ModeMerge
	case f.File != "":
		return ModeSingle
	case f.Full:
		return ModeFull
	case f.ConvertToJSON || f.Schema:
		return ModeConvert
	default:
		return ModeDefault
	}
}

// NeedsTranslation reports whether the selected mode calls the translation service
func (f *Flags) NeedsTranslation() bool {
	m := f.Mode()
	return m == ModeSingle || m == ModeFull
}

// Validate checks flag values that cobra cannot check on its own
func (f *Flags) Validate() error {
	if err := workspace.ValidateLanguage(f.Language); err != nil {
		return err
	}
	if f.ItemsPerPart <= 0 {
		return fmt.Errorf("--items-per-part must be positive, got %d", f.ItemsPerPart)
	}
	if f.MaxLines <= 0 {
		return fmt.Errorf("--max-lines must be positive, got %d", f.MaxLines)
	}
	if f.File != "" {
		if err := workspace.ValidateStem(f.File); err != nil {
			return err
		}
	}
	switch strings.ToLower(f.StatusFormat) {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("--status-format must be text, json or yaml, got %q", f.StatusFormat)
	}
	switch strings.ToLower(f.Provider) {
	case "gemini", "openai":
	default:
		return fmt.Errorf("--provider must be gemini or openai, got %q", f.Provider)
	}
	if f.Temperature < 0 || f.Temperature > 2 {
		return fmt.Errorf("--temperature must be between 0 and 2, got %v", f.Temperature)
	}
	return nil
}
