package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrSourceNotFound is returned when the source artifact does not exist
	ErrSourceNotFound = errors.New("source not found")
	// ErrUnsupportedFormat is returned for file extensions without a reader
	ErrUnsupportedFormat = errors.New("unsupported source format")
)

// ReadKeys reads the key column of a source file. Supported formats:
//   - .xlsx/.xlsm: first column of the first sheet, first row is the header
//   - .csv: first column, first row is the header
//   - .txt: one key per line, blank lines ignored
//
// Cells that are missing in a row are returned as empty strings so the key
// list keeps one entry per data row.
func ReadKeys(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbookKeys(path)
	case ".csv":
		return readCSVKeys(path)
	case ".txt":
		return readTextKeys(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func readWorkbookKeys(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return firstColumn(rows), nil
}

func readCSVKeys(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV file: %w", err)
		}
		rows = append(rows, record)
	}

	return firstColumn(rows), nil
}

func readTextKeys(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	var keys []string
	for _, line := range strings.Split(string(content), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			keys = append(keys, line)
		}
	}
	return keys, nil
}

// firstColumn drops the header row and returns the first cell of every
// remaining row
func firstColumn(rows [][]string) []string {
	if len(rows) <= 1 {
		return nil
	}

	keys := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			keys = append(keys, "")
			continue
		}
		keys = append(keys, row[0])
	}
	return keys
}
