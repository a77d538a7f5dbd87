package chunker

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"codeberg.org/snonux/sheetlate/internal/source"
	"codeberg.org/snonux/sheetlate/internal/workspace"
)

// Converter writes part files for one workspace
type Converter struct {
	layout workspace.Layout
	logger *slog.Logger
}

// NewConverter creates a converter writing below layout.PartsRoot()
func NewConverter(layout workspace.Layout, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{layout: layout, logger: logger}
}

// ConvertWorkbook reads the key column of the source spreadsheet and writes
// it as parts of itemsPerPart keys. It returns the written paths; an empty
// source yields no paths and no error.
func (c *Converter) ConvertWorkbook(itemsPerPart int, language string) ([]string, error) {
	keys, err := source.ReadKeys(c.layout.SourcePath())
	if err != nil {
		c.logger.Error("failed to read source", "path", c.layout.SourcePath(), "error", err)
		return nil, err
	}
	if len(keys) == 0 {
		c.logger.Warn("source is empty", "path", c.layout.SourcePath())
		return nil, nil
	}
	return c.ConvertKeys(keys, itemsPerPart, language)
}

// ConvertKeys splits keys into parts of itemsPerPart keys and writes them
func (c *Converter) ConvertKeys(keys []string, itemsPerPart int, language string) ([]string, error) {
	if err := workspace.ValidateLanguage(language); err != nil {
		return nil, err
	}

	chunks, err := Split(keys, itemsPerPart)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	payloads := make([][]byte, 0, len(chunks))
	for _, chunk := range chunks {
		data, err := chunk.Encode()
		if err != nil {
			return nil, fmt.Errorf("failed to encode part: %w", err)
		}
		payloads = append(payloads, data)
	}

	files, err := c.writeParts(language, payloads)
	if err != nil {
		return files, err
	}

	for i, path := range files {
		c.logger.Info("created part", "file", path, "items", chunks[i].Len())
	}
	c.logger.Info("conversion complete", "parts", len(files), "dir", c.layout.PartsDir(language), "items", len(keys))
	return files, nil
}

// ConvertDocument groups the top-level sections of the schema document into
// parts of at most maxLines lines
func (c *Converter) ConvertDocument(maxLines int, language string) ([]string, error) {
	if maxLines <= 0 {
		return nil, ErrInvalidLineBudget
	}
	if err := workspace.ValidateLanguage(language); err != nil {
		return nil, err
	}

	path := c.layout.SchemaPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", source.ErrSourceNotFound, path)
		} else {
			err = fmt.Errorf("failed to read document: %w", err)
		}
		c.logger.Error("failed to read document", "path", path, "error", err)
		return nil, err
	}

	sections, err := ParseSections(data)
	if err != nil {
		c.logger.Error("invalid document", "path", path, "error", err)
		return nil, err
	}
	c.logger.Info("found sections", "count", len(sections))
	for _, s := range sections {
		c.logger.Debug("section", "name", s.Name, "lines", s.Lines)
	}
	if len(sections) == 0 {
		return nil, nil
	}

	groups := GroupSections(sections, maxLines)
	payloads := make([][]byte, 0, len(groups))
	for _, group := range groups {
		data, err := EncodeGroup(group)
		if err != nil {
			return nil, fmt.Errorf("failed to encode part: %w", err)
		}
		payloads = append(payloads, data)
	}

	files, err := c.writeParts(language, payloads)
	if err != nil {
		return files, err
	}

	for i, path := range files {
		c.logger.Info("created part", "file", path, "sections", len(groups[i]), "lines", GroupLines(groups[i]))
	}
	c.logger.Info("conversion complete", "parts", len(files), "dir", c.layout.PartsDir(language), "sections", len(sections))
	return files, nil
}

// writeParts writes p1..pN and removes higher-numbered parts left behind by
// an earlier conversion so the numbering stays contiguous
func (c *Converter) writeParts(language string, payloads [][]byte) ([]string, error) {
	dir := c.layout.PartsDir(language)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create parts directory: %w", err)
	}

	files := make([]string, 0, len(payloads))
	for i, data := range payloads {
		path := filepath.Join(dir, workspace.PartName(i+1))
		if err := workspace.WriteFileAtomic(path, data, 0644); err != nil {
			return files, fmt.Errorf("failed to write part %d: %w", i+1, err)
		}
		files = append(files, path)
	}

	c.removeStaleParts(dir, len(payloads))
	return files, nil
}

func (c *Converter) removeStaleParts(dir string, total int) {
	names, err := workspace.ListJSON(dir)
	if err != nil {
		return
	}
	for _, name := range names {
		if n, ok := workspace.PartNumber(name); ok && n > total {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				c.logger.Warn("failed to remove stale part", "file", name, "error", err)
				continue
			}
			c.logger.Info("removed stale part", "file", name)
		}
	}
}
