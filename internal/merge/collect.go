package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"codeberg.org/snonux/sheetlate/internal/chunker"
	"codeberg.org/snonux/sheetlate/internal/workspace"
)

var (
	// ErrInputNotFound is returned when the language output directory does not exist
	ErrInputNotFound = errors.New("input directory not found")
	// ErrNothingToMerge is returned when no file contributed any key
	ErrNothingToMerge = errors.New("nothing to merge")
)

// FileStat is the item count of one merged file
type FileStat struct {
	Name  string `json:"name" yaml:"name"`
	Items int    `json:"items" yaml:"items"`
}

// SkippedFile is a file left out of the merge
type SkippedFile struct {
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
}

// Table is the merged key/value data of one language
type Table struct {
	values  map[string]string
	Found   int
	Files   []FileStat
	Skipped []SkippedFile
}

// Len returns the number of unique keys
func (t *Table) Len() int {
	return len(t.values)
}

// Get returns the merged value of key
func (t *Table) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns all keys in ascending order
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Collect reads every .json file of dir in natural order into one table
func Collect(dir string, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	names, err := workspace.ListJSON(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, dir)
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	table := &Table{values: make(map[string]string), Found: len(names)}
	if len(names) == 0 {
		return table, fmt.Errorf("%w: no JSON files in %s", ErrNothingToMerge, dir)
	}
	logger.Info("found JSON files to merge", "count", len(names), "dir", dir)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Error("failed to read file", "file", name, "error", err)
			table.Skipped = append(table.Skipped, SkippedFile{Name: name, Reason: err.Error()})
			continue
		}

		chunk, err := chunker.DecodeChunk(data)
		if err != nil {
			logger.Error("failed to parse file", "file", name, "error", err)
			table.Skipped = append(table.Skipped, SkippedFile{Name: name, Reason: err.Error()})
			continue
		}

		for _, key := range chunk.Keys() {
			value, _ := chunk.Get(key)
			table.values[key] = value
		}
		table.Files = append(table.Files, FileStat{Name: name, Items: chunk.Len()})
		logger.Info("processed file", "file", name, "items", chunk.Len())
	}

	if table.Len() == 0 {
		return table, fmt.Errorf("%w: no valid data in %s", ErrNothingToMerge, dir)
	}
	return table, nil
}
