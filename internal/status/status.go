package status

import (
	"strings"

	"codeberg.org/snonux/sheetlate/internal/merge"
	"codeberg.org/snonux/sheetlate/internal/workspace"
)

// State is the overall progress of a language
type State string

const (
	StateComplete               State = "complete"
	StateTranslatedReadyToMerge State = "translated_ready_to_merge"
	StatePartsReadyToTranslate  State = "parts_ready_to_translate"
	StateReadyToConvert         State = "ready_to_convert"
	StateNoSource               State = "no_source"
)

// Title returns the state in title case, e.g. "Ready To Convert"
func (s State) Title() string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Hint returns the next step for the operator
func (s State) Hint() string {
	switch s {
	case StateNoSource:
		return "No source found. Place the spreadsheet in the source/ folder."
	case StateReadyToConvert:
		return "Ready to convert the spreadsheet to JSON parts. Run with --full to start."
	case StatePartsReadyToTranslate:
		return "Ready to translate JSON parts. Run with --full to continue."
	case StateTranslatedReadyToMerge:
		return "Ready to merge translated files. Run with --merge or --full to continue."
	case StateComplete:
		return "Pipeline complete! Final workbook created."
	default:
		return ""
	}
}

// SourceStatus describes the source spreadsheet
type SourceStatus struct {
	Exists bool   `json:"exists" yaml:"exists"`
	Path   string `json:"path" yaml:"path"`
}

// PartsStatus describes parts/<language>
type PartsStatus struct {
	Exists bool     `json:"exists" yaml:"exists"`
	Count  int      `json:"count" yaml:"count"`
	Files  []string `json:"files" yaml:"files"`
}

// TranslationStatus compares parts/<language> with output/<language>
type TranslationStatus struct {
	Language        string   `json:"language" yaml:"language"`
	SourceFiles     []string `json:"source_files" yaml:"source_files"`
	TranslatedFiles []string `json:"translated_files" yaml:"translated_files"`
	PendingFiles    []string `json:"pending_files" yaml:"pending_files"`
	TotalSource     int      `json:"total_source" yaml:"total_source"`
	TotalTranslated int      `json:"total_translated" yaml:"total_translated"`
	TotalPending    int      `json:"total_pending" yaml:"total_pending"`
}

// Report is the full status of one language
type Report struct {
	Language    string            `json:"language" yaml:"language"`
	Source      SourceStatus      `json:"excel_source" yaml:"excel_source"`
	Parts       PartsStatus       `json:"json_parts" yaml:"json_parts"`
	Translation TranslationStatus `json:"translation_status" yaml:"translation_status"`
	Merge       merge.Status      `json:"merge_status" yaml:"merge_status"`
	Overall     State             `json:"overall_status" yaml:"overall_status"`
}

// Translation lists source, translated and pending stems in natural order
func Translation(layout workspace.Layout, language string) TranslationStatus {
	status := TranslationStatus{
		Language:        language,
		SourceFiles:     stems(layout.PartsDir(language)),
		TranslatedFiles: stems(layout.OutputDir(language)),
		PendingFiles:    []string{},
	}

	translated := make(map[string]bool, len(status.TranslatedFiles))
	for _, stem := range status.TranslatedFiles {
		translated[stem] = true
	}
	for _, stem := range status.SourceFiles {
		if !translated[stem] {
			status.PendingFiles = append(status.PendingFiles, stem)
		}
	}

	status.TotalSource = len(status.SourceFiles)
	status.TotalTranslated = len(status.TranslatedFiles)
	status.TotalPending = len(status.PendingFiles)
	return status
}

// Build inspects the workspace of language
func Build(layout workspace.Layout, language string, merger *merge.Merger) (*Report, error) {
	if err := workspace.ValidateLanguage(language); err != nil {
		return nil, err
	}

	report := &Report{
		Language: language,
		Source: SourceStatus{
			Exists: workspace.Exists(layout.SourcePath()),
			Path:   layout.SourcePath(),
		},
		Parts:       PartsStatus{Files: []string{}},
		Translation: Translation(layout, language),
		Merge:       merger.Status(language),
	}

	if names, err := workspace.ListJSON(layout.PartsDir(language)); err == nil {
		report.Parts = PartsStatus{Exists: true, Count: len(names), Files: names}
	}

	report.Overall = overall(report)
	return report, nil
}

func overall(r *Report) State {
	switch {
	case r.Source.Exists && r.Parts.Exists && r.Translation.TotalTranslated > 0:
		if r.Merge.FinalExists {
			return StateComplete
		}
		return StateTranslatedReadyToMerge
	case r.Source.Exists && r.Parts.Exists:
		return StatePartsReadyToTranslate
	case r.Source.Exists:
		return StateReadyToConvert
	default:
		return StateNoSource
	}
}

func stems(dir string) []string {
	names, err := workspace.ListJSON(dir)
	if err != nil {
		return []string{}
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, workspace.Stem(name))
	}
	return out
}
