package merge

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/sheetlate/internal/workspace"
)

// WriteCSV writes table as Key,Value rows sorted by key
func WriteCSV(table *Table, path string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Key", "Value"}); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, key := range table.Keys() {
		value, _ := table.Get(key)
		if err := writer.Write([]string{key, value}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return workspace.WriteFileAtomic(path, buf.Bytes(), 0644)
}

// WriteSQLite writes table into a fresh SQLite database with a
// translations(key, value) table and a summary(metric, value) table
func WriteSQLite(table *Table, path string) error {
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := createDatabase(table, tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move database into place: %w", err)
	}
	return nil
}

func createDatabase(table *Table, dbPath, outputFile string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	queries := []string{
		`CREATE TABLE translations (
			key text PRIMARY KEY,
			value text NOT NULL
		)`,
		`CREATE TABLE summary (
			id integer PRIMARY KEY,
			metric text NOT NULL,
			value text NOT NULL
		)`,
	}
	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO translations (key, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, key := range table.Keys() {
		value, _ := table.Get(key)
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("failed to insert %q: %w", key, err)
		}
	}

	for _, row := range SummaryRows(table, outputFile) {
		if _, err := tx.Exec(`INSERT INTO summary (metric, value) VALUES (?, ?)`, row[0], fmt.Sprint(row[1])); err != nil {
			return fmt.Errorf("failed to insert summary: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
