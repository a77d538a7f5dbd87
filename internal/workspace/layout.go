package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/sheetlate/internal"
)

const (
	// DefaultSourceFile is the spreadsheet whose first column holds the keys
	DefaultSourceFile = "Output_Final.xlsx"
	// DefaultSchemaFile is the nested document split by the line-budget mode
	DefaultSchemaFile = "en.default.schema.json"
	// FinalWorkbook is the merged result written next to the translated parts
	FinalWorkbook = "final.xlsx"
)

// ErrInvalidLanguage is returned for language tags that are not safe directory names
var ErrInvalidLanguage = errors.New("invalid language")

// ErrInvalidStem is returned for file stems that would leave their directory
var ErrInvalidStem = errors.New("invalid file stem")

// Layout describes where every pipeline stage reads and writes its files
type Layout struct {
	Root       string
	SourceFile string
	SchemaFile string
}

// NewLayout returns a layout rooted at root with the default source names
func NewLayout(root string) Layout {
	if root == "" {
		root = "."
	}
	return Layout{
		Root:       root,
		SourceFile: DefaultSourceFile,
		SchemaFile: DefaultSchemaFile,
	}
}

// SourceDir is the directory holding the input artifacts
func (l Layout) SourceDir() string {
	return filepath.Join(l.Root, "source")
}

// SourcePath is the spreadsheet read by the count-based chunker
func (l Layout) SourcePath() string {
	return filepath.Join(l.SourceDir(), l.SourceFile)
}

// SchemaPath is the nested document read by the line-budget chunker
func (l Layout) SchemaPath() string {
	return filepath.Join(l.SourceDir(), l.SchemaFile)
}

// PartsRoot holds one directory of untranslated parts per language
func (l Layout) PartsRoot() string {
	return filepath.Join(l.Root, "parts")
}

// PartsDir holds the untranslated parts of one language
func (l Layout) PartsDir(language string) string {
	return filepath.Join(l.PartsRoot(), language)
}

// OutputRoot holds one directory of translated parts per language
func (l Layout) OutputRoot() string {
	return filepath.Join(l.Root, "output")
}

// OutputDir holds the translated parts and the final workbook of one language
func (l Layout) OutputDir(language string) string {
	return filepath.Join(l.OutputRoot(), language)
}

// ArchiveRoot receives output directories moved away by clean runs
func (l Layout) ArchiveRoot() string {
	return filepath.Join(l.Root, "archive")
}

// PartPath is the untranslated part with the given stem
func (l Layout) PartPath(language, stem string) string {
	return filepath.Join(l.PartsDir(language), stem+".json")
}

// TranslatedPath is the translated part with the given stem
func (l Layout) TranslatedPath(language, stem string) string {
	return filepath.Join(l.OutputDir(language), stem+".json")
}

// FinalPath is the merged workbook of one language
func (l Layout) FinalPath(language string) string {
	return filepath.Join(l.OutputDir(language), FinalWorkbook)
}

// ValidateLanguage checks that a language tag can be used as a path segment
func ValidateLanguage(language string) error {
	if !internal.IsSafeSegment(language) {
		return fmt.Errorf("%w: %q (use letters, digits, '-' or '_')", ErrInvalidLanguage, language)
	}
	return nil
}

// ValidateStem checks that a file stem names a file inside a language directory
func ValidateStem(stem string) error {
	if stem == "" || stem == "." || stem == ".." || strings.ContainsAny(stem, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidStem, stem)
	}
	return nil
}
