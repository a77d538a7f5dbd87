package internal

import (
	"regexp"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"japanese", "japanese"},
		{"pt-BR", "pt-BR"},
		{"../etc", "___etc"},
		{"two words", "two_words"},
		{"български", "български"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsSafeSegment(t *testing.T) {
	if IsSafeSegment("") {
		t.Error("Empty string must not be a safe segment")
	}
	if !IsSafeSegment("zh_Hans") {
		t.Error("zh_Hans should be a safe segment")
	}
	if IsSafeSegment("a/b") {
		t.Error("a/b must not be a safe segment")
	}
}

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID("japanese")
	if !regexp.MustCompile(`^\d+_[0-9a-f]{8}$`).MatchString(id) {
		t.Errorf("Unexpected run ID format: %s", id)
	}
}
