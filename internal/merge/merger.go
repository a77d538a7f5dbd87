package merge

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeberg.org/snonux/sheetlate/internal/chunker"
	"codeberg.org/snonux/sheetlate/internal/workspace"
)

// Options selects the optional exports written next to final.xlsx
type Options struct {
	CSV    bool
	SQLite bool
}

// Report describes one finished merge
type Report struct {
	Language string
	Output   string
	Exports  []string
	Table    *Table
}

// Status describes what a merge of one language would read
type Status struct {
	Language       string   `json:"language" yaml:"language"`
	InputDirectory string   `json:"input_directory" yaml:"input_directory"`
	OutputFile     string   `json:"output_file" yaml:"output_file"`
	JSONFiles      []string `json:"json_files" yaml:"json_files"`
	TotalFiles     int      `json:"total_files" yaml:"total_files"`
	TotalItems     int      `json:"total_items" yaml:"total_items"`
	FinalExists    bool     `json:"final_xlsx_exists" yaml:"final_xlsx_exists"`
	CanMerge       bool     `json:"can_merge" yaml:"can_merge"`
}

// LanguageResult is the outcome of one language in MergeAll
type LanguageResult struct {
	Language string
	Success  bool
	Err      error
}

// Merger merges translated parts of a workspace
type Merger struct {
	layout  workspace.Layout
	options Options
	logger  *slog.Logger
}

// NewMerger creates a merger reading below layout.OutputRoot()
func NewMerger(layout workspace.Layout, options Options, logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{layout: layout, options: options, logger: logger}
}

// Merge unions output/<language>/*.json and writes final.xlsx plus the
// selected exports. Nothing is written when no file contributes a key.
func (m *Merger) Merge(language string) (*Report, error) {
	if err := workspace.ValidateLanguage(language); err != nil {
		return nil, err
	}

	dir := m.layout.OutputDir(language)
	table, err := Collect(dir, m.logger)
	if err != nil {
		m.logger.Error("merge failed", "language", language, "error", err)
		return nil, err
	}

	report := &Report{
		Language: language,
		Output:   m.layout.FinalPath(language),
		Table:    table,
	}

	if err := WriteWorkbook(table, report.Output); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	base := strings.TrimSuffix(report.Output, filepath.Ext(report.Output))
	if m.options.CSV {
		path := base + ".csv"
		if err := WriteCSV(table, path); err != nil {
			return report, fmt.Errorf("failed to write CSV export: %w", err)
		}
		report.Exports = append(report.Exports, path)
	}
	if m.options.SQLite {
		path := base + ".db"
		if err := WriteSQLite(table, path); err != nil {
			return report, fmt.Errorf("failed to write SQLite export: %w", err)
		}
		report.Exports = append(report.Exports, path)
	}

	m.logger.Info("merge complete", "language", language, "files", table.Found,
		"unique_keys", table.Len(), "skipped", len(table.Skipped), "output", report.Output)
	return report, nil
}

// MergeAll merges every language directory below output/, in name order
func (m *Merger) MergeAll() ([]LanguageResult, error) {
	root := m.layout.OutputRoot()
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, root)
		}
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	var languages []string
	for _, entry := range entries {
		if entry.IsDir() && workspace.ValidateLanguage(entry.Name()) == nil {
			languages = append(languages, entry.Name())
		}
	}
	sort.Strings(languages)

	results := make([]LanguageResult, 0, len(languages))
	for _, language := range languages {
		m.logger.Info("merging language", "language", language)
		_, err := m.Merge(language)
		results = append(results, LanguageResult{Language: language, Success: err == nil, Err: err})
	}
	return results, nil
}

// Status reports the mergeable files of language without writing anything
func (m *Merger) Status(language string) Status {
	dir := m.layout.OutputDir(language)
	status := Status{
		Language:       language,
		InputDirectory: dir,
		OutputFile:     m.layout.FinalPath(language),
		JSONFiles:      []string{},
	}

	names, err := workspace.ListJSON(dir)
	if err != nil {
		return status
	}

	status.JSONFiles = names
	status.TotalFiles = len(names)
	status.FinalExists = workspace.Exists(status.OutputFile)
	status.CanMerge = len(names) > 0

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if chunk, err := chunker.DecodeChunk(data); err == nil {
			status.TotalItems += chunk.Len()
		}
	}
	return status
}
