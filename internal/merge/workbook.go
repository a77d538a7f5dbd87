package merge

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"codeberg.org/snonux/sheetlate/internal/workspace"
)

const (
	translationsSheet = "Translations"
	summarySheet      = "Summary"
	maxColumnWidth    = 100
)

// SummaryRows returns the Metric/Value rows describing a merge
func SummaryRows(table *Table, outputFile string) [][2]interface{} {
	rows := [][2]interface{}{
		{"Total JSON files processed", table.Found},
		{"Total unique keys", table.Len()},
		{"Total values", table.Len()},
		{"Output file", outputFile},
	}
	for _, f := range table.Files {
		rows = append(rows, [2]interface{}{"Items in " + f.Name, f.Items})
	}
	return rows
}

// WriteWorkbook writes table to path with a Translations sheet sorted by key
// and a Summary sheet
func WriteWorkbook(table *Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", translationsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	keys := table.Keys()
	translations := make([][]interface{}, 0, len(keys)+1)
	translations = append(translations, []interface{}{"Key", "Value"})
	for _, key := range keys {
		value, _ := table.Get(key)
		translations = append(translations, []interface{}{key, value})
	}
	if err := writeSheet(f, translationsSheet, translations); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{{"Metric", "Value"}}
	for _, row := range SummaryRows(table, path) {
		summary = append(summary, []interface{}{row[0], row[1]})
	}
	if err := writeSheet(f, summarySheet, summary); err != nil {
		return err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return workspace.WriteFileAtomic(path, buf.Bytes(), 0644)
}

// writeSheet writes rows starting at A1 and sizes each column to its
// longest cell plus two, capped at maxColumnWidth
func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	var widths []int
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}

		for col, v := range row {
			if col >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(min(width+2, maxColumnWidth))); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}
