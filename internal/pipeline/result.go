package pipeline

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	cyan   = color.New(color.Bold, color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.Bold, color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// Pipeline kinds reported in Result.Pipeline
const (
	KindFull     = "full"
	KindSingle   = "single_file"
	KindConvert  = "convert"
	KindMerge    = "merge"
	KindMergeAll = "merge_all"
)

// Step is the outcome of one stage
type Step struct {
	Name    string
	Success bool
	Files   []string
	Errors  []string
}

// Result is the outcome of a pipeline run
type Result struct {
	Pipeline string
	Language string
	FileName string
	Steps    []Step
	Success  bool
	Errors   []string
}

func newResult(kind, language, fileName string) *Result {
	return &Result{Pipeline: kind, Language: language, FileName: fileName}
}

func (r *Result) add(step Step) {
	r.Steps = append(r.Steps, step)
}

func (r *Result) fail(msg string) {
	r.Success = false
	r.Errors = append(r.Errors, msg)
}

// Files returns every file produced by the run
func (r *Result) Files() []string {
	var files []string
	for _, s := range r.Steps {
		files = append(files, s.Files...)
	}
	return files
}

// PrintResult writes the outcome of r to w
func PrintResult(w io.Writer, r *Result) {
	if r.Success {
		fmt.Fprintf(w, "\n🎉 %s\n", green("Pipeline completed successfully!"))
		switch r.Pipeline {
		case KindSingle:
			fmt.Fprintf(w, "File %s has been translated.\n", cyan(r.FileName))
		case KindFull:
			fmt.Fprintf(w, "Full pipeline completed for %s.\n", cyan(r.Language))
		case KindConvert:
			fmt.Fprintf(w, "Created %d JSON parts for %s.\n", len(r.Files()), cyan(r.Language))
		}
		return
	}

	fmt.Fprintf(w, "\n❌ %s\n", red("Pipeline failed with errors:"))
	for _, msg := range r.Errors {
		fmt.Fprintf(w, "   - %s\n", msg)
	}
	for _, s := range r.Steps {
		for _, msg := range s.Errors {
			fmt.Fprintf(w, "   - %s: %s\n", s.Name, msg)
		}
	}
}
