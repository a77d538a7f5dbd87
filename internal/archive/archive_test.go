package archive

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArchiveOutput(t *testing.T) {
	tmpDir := t.TempDir()

	outputDir := filepath.Join(tmpDir, "output", "japanese")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		t.Fatalf("Failed to create output directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "p1.json"), []byte(`{"a": "b"}`), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "final.xlsx"), []byte("xlsx"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	archiveRoot := filepath.Join(tmpDir, "archive")
	archivedPath, err := ArchiveOutput(outputDir, archiveRoot, "japanese")
	if err != nil {
		t.Fatalf("ArchiveOutput failed: %v", err)
	}

	if _, err := os.Stat(outputDir); !os.IsNotExist(err) {
		t.Error("Output directory still exists after archiving")
	}

	if filepath.Dir(archivedPath) != archiveRoot {
		t.Errorf("Archive created outside %s: %s", archiveRoot, archivedPath)
	}

	// Verify timestamp format (japanese-YYYYMMDD-HHMMSS)
	name := filepath.Base(archivedPath)
	if !strings.HasPrefix(name, "japanese-") || len(strings.Split(name, "-")) < 3 {
		t.Errorf("Invalid archive name format: %s", name)
	}

	for _, file := range []string{"p1.json", "final.xlsx"} {
		if _, err := os.Stat(filepath.Join(archivedPath, file)); err != nil {
			t.Errorf("%s not found in archive: %v", file, err)
		}
	}
}

func TestArchiveOutput_NonExistentDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := ArchiveOutput(filepath.Join(tmpDir, "output", "german"), filepath.Join(tmpDir, "archive"), "german")
	if !errors.Is(err, ErrNothingToArchive) {
		t.Errorf("Expected ErrNothingToArchive, got: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "archive")); !os.IsNotExist(err) {
		t.Error("Archive directory created although nothing was archived")
	}
}

func TestArchiveOutput_MultipleArchives(t *testing.T) {
	tmpDir := t.TempDir()
	outputDir := filepath.Join(tmpDir, "output", "french")
	archiveRoot := filepath.Join(tmpDir, "archive")

	// Archive three times in quick succession to force name collisions
	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			t.Fatalf("Failed to create output directory: %v", err)
		}

		path, err := ArchiveOutput(outputDir, archiveRoot, "french")
		if err != nil {
			t.Fatalf("ArchiveOutput failed on iteration %d: %v", i, err)
		}
		if seen[path] {
			t.Errorf("Archive path reused: %s", path)
		}
		seen[path] = true
	}

	entries, err := os.ReadDir(archiveRoot)
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries in archive directory, got %d", len(entries))
	}
}
