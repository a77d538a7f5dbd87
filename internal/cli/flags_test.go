package cli

import (
	"errors"
	"reflect"
	"testing"

	"codeberg.org/snonux/sheetlate/internal/workspace"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"WorkDir", flags.WorkDir, "."},
		{"LogFile", flags.LogFile, "translation_pipeline.log"},
		{"Language", flags.Language, "japanese"},
		{"ItemsPerPart", flags.ItemsPerPart, 200},
		{"MaxLines", flags.MaxLines, 500},
		{"StatusFormat", flags.StatusFormat, "text"},
		{"Provider", flags.Provider, "gemini"},
		{"Model", flags.Model, "gemini-2.5-flash"},
		{"Temperature", flags.Temperature, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"Verbose", flags.Verbose},
		{"ListModels", flags.ListModels},
		{"Status", flags.Status},
		{"ConvertToJSON", flags.ConvertToJSON},
		{"Schema", flags.Schema},
		{"Full", flags.Full},
		{"Clean", flags.Clean},
		{"SkipExisting", flags.SkipExisting},
		{"Merge", flags.Merge},
		{"MergeAll", flags.MergeAll},
		{"CSV", flags.CSV},
		{"SQLite", flags.SQLite},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value {
				t.Errorf("%s should be false by default", tt.name)
			}
		})
	}
}

func TestFlagsMode(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(f *Flags)
		want      Mode
		translate bool
	}{
		{"no mode flag", func(f *Flags) {}, ModeDefault, false},
		{"status", func(f *Flags) { f.Status = true; f.Full = true }, ModeStatus, false},
		{"list models first", func(f *Flags) { f.ListModels = true; f.Status = true }, ModeListModels, false},
		{"merge all over merge", func(f *Flags) { f.MergeAll = true; f.Merge = true }, ModeMergeAll, false},
		{"merge", func(f *Flags) { f.Merge = true; f.Full = true }, ModeMerge, false},
		{"single file over full", func(f *Flags) { f.File = "p1"; f.Full = true }, ModeSingle, true},
		{"single file with convert", func(f *Flags) { f.File = "p1"; f.ConvertToJSON = true }, ModeSingle, true},
		{"full", func(f *Flags) { f.Full = true; f.ConvertToJSON = true }, ModeFull, true},
		{"convert", func(f *Flags) { f.ConvertToJSON = true }, ModeConvert, false},
		{"schema", func(f *Flags) { f.Schema = true }, ModeConvert, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := NewFlags()
			tt.modify(flags)

			if got := flags.Mode(); got != tt.want {
				t.Errorf("Mode() = %v, want %v", got, tt.want)
			}
			if got := flags.NeedsTranslation(); got != tt.translate {
				t.Errorf("NeedsTranslation() = %v, want %v", got, tt.translate)
			}
		})
	}
}

func TestFlagsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(f *Flags)
		wantErr bool
		is      error
	}{
		{"defaults", func(f *Flags) {}, false, nil},
		{"unicode language", func(f *Flags) { f.Language = "español" }, false, nil},
		{"path language", func(f *Flags) { f.Language = "../etc" }, true, workspace.ErrInvalidLanguage},
		{"zero items", func(f *Flags) { f.ItemsPerPart = 0 }, true, nil},
		{"negative lines", func(f *Flags) { f.MaxLines = -1 }, true, nil},
		{"file with separator", func(f *Flags) { f.File = "a/p1" }, true, workspace.ErrInvalidStem},
		{"status format", func(f *Flags) { f.StatusFormat = "xml" }, true, nil},
		{"uppercase status format", func(f *Flags) { f.StatusFormat = "YAML" }, false, nil},
		{"provider", func(f *Flags) { f.Provider = "deepl" }, true, nil},
		{"temperature", func(f *Flags) { f.Temperature = 3 }, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := NewFlags()
			tt.modify(flags)

			err := flags.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Expected %v, got %v", tt.is, err)
			}
		})
	}
}
