package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
	"unicode"
)

// GenerateRunID creates a unique ID for a pipeline run based on timestamp and language
// Format: epochMillis_md5(language)[:8]
func GenerateRunID(language string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(language))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe path segment from a string
func SanitizeFilename(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	return string(result)
}

// IsSafeSegment reports whether s can be used as a directory name unchanged
func IsSafeSegment(s string) bool {
	return s != "" && SanitizeFilename(s) == s
}

func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
