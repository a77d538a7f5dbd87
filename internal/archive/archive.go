package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNothingToArchive is returned when the directory to archive does not exist
var ErrNothingToArchive = errors.New("nothing to archive")

// ArchiveOutput moves the translated output of one language to
// <archiveRoot>/<language>-<timestamp> and returns the new path
func ArchiveOutput(outputDir, archiveRoot, language string) (string, error) {
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: output directory does not exist: %s", ErrNothingToArchive, outputDir)
	}

	if err := os.MkdirAll(archiveRoot, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	now := time.Now()
	archivePath := filepath.Join(archiveRoot, fmt.Sprintf("%s-%s", language, now.Format("20060102-150405")))

	// Check if archive already exists (two clean runs within one second)
	for i := 0; exists(archivePath); i++ {
		stamp := now.Format("20060102-150405.000000")
		if i > 0 {
			stamp = fmt.Sprintf("%s-%d", stamp, i)
		}
		archivePath = filepath.Join(archiveRoot, fmt.Sprintf("%s-%s", language, stamp))
	}

	if err := os.Rename(outputDir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive output directory: %w", err)
	}

	return archivePath, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
