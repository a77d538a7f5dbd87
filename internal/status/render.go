package status

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	cyan   = color.New(color.Bold, color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.Bold, color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// Formats accepted by Render
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var stateIcons = map[State]string{
	StateComplete:               "✅",
	StateTranslatedReadyToMerge: "🔄",
	StatePartsReadyToTranslate:  "📋",
	StateReadyToConvert:         "📁",
	StateNoSource:               "❌",
}

// Render writes r to w in the given format
func Render(w io.Writer, r *Report, format string) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		Print(w, r)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown status format: %s (use text, json or yaml)", format)
	}
}

// Print writes a human readable status of r to w
func Print(w io.Writer, r *Report) {
	fmt.Fprintf(w, "\n📊 Pipeline Status for %s\n", cyan(r.Language))
	fmt.Fprintln(w, strings.Repeat("=", 50))

	icon, ok := stateIcons[r.Overall]
	if !ok {
		icon = "❓"
	}
	fmt.Fprintf(w, "Overall Status: %s %s\n", icon, yellow(r.Overall.Title()))

	if r.Source.Exists {
		fmt.Fprintf(w, "📁 Source: %s %s\n", green("found"), r.Source.Path)
	} else {
		fmt.Fprintf(w, "📁 Source: %s\n", red("not found"))
	}

	if r.Parts.Exists {
		fmt.Fprintf(w, "📋 JSON Parts: %s files\n", green(r.Parts.Count))
		printList(w, r.Parts.Files, 5)
	} else {
		fmt.Fprintf(w, "📋 JSON Parts: %s\n", red("not found"))
	}

	t := r.Translation
	fmt.Fprintf(w, "🌐 Translation: %d/%d files\n", t.TotalTranslated, t.TotalSource)
	if len(t.PendingFiles) > 0 {
		shown := t.PendingFiles
		if len(shown) > 3 {
			shown = shown[:3]
		}
		fmt.Fprintf(w, "   Pending: %s\n", strings.Join(shown, ", "))
		if len(t.PendingFiles) > 3 {
			fmt.Fprintf(w, "   ... and %d more\n", len(t.PendingFiles)-3)
		}
	}

	if r.Merge.FinalExists {
		fmt.Fprintf(w, "📊 Final workbook: %s %s\n", green("created"), r.Merge.OutputFile)
	} else {
		fmt.Fprintf(w, "📊 Final workbook: %s\n", red("not created"))
	}
}

func printList(w io.Writer, items []string, limit int) {
	for i, item := range items {
		if i == limit {
			fmt.Fprintf(w, "   ... and %d more\n", len(items)-limit)
			return
		}
		fmt.Fprintf(w, "   - %s\n", item)
	}
}
