package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"codeberg.org/snonux/sheetlate/internal"
	"codeberg.org/snonux/sheetlate/internal/archive"
	"codeberg.org/snonux/sheetlate/internal/chunker"
	"codeberg.org/snonux/sheetlate/internal/cli"
	"codeberg.org/snonux/sheetlate/internal/merge"
	"codeberg.org/snonux/sheetlate/internal/status"
	"codeberg.org/snonux/sheetlate/internal/translation"
	"codeberg.org/snonux/sheetlate/internal/workspace"
)

// Pipeline runs the stages of one language in one workspace
type Pipeline struct {
	flags      *cli.Flags
	layout     workspace.Layout
	converter  *chunker.Converter
	translator *translation.FileTranslator
	merger     *merge.Merger
	logger     *slog.Logger
	out        io.Writer
	progress   io.Writer
}

// New creates a pipeline for flags. client may be nil for runs that do not
// translate.
func New(flags *cli.Flags, client translation.Client, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run", internal.GenerateRunID(flags.Language))

	layout := workspace.NewLayout(flags.WorkDir)
	p := &Pipeline{
		flags:     flags,
		layout:    layout,
		converter: chunker.NewConverter(layout, logger),
		merger:    merge.NewMerger(layout, merge.Options{CSV: flags.CSV, SQLite: flags.SQLite}, logger),
		logger:    logger,
		out:       os.Stdout,
		progress:  os.Stderr,
	}
	if client != nil {
		p.translator = translation.NewFileTranslator(layout, client, logger)
	}
	return p
}

// SetOutput redirects user-facing messages and the progress bar
func (p *Pipeline) SetOutput(out, progress io.Writer) {
	p.out = out
	p.progress = progress
}

// Layout returns the workspace layout of the pipeline
func (p *Pipeline) Layout() workspace.Layout {
	return p.layout
}

// RunFull converts the source, translates every part and merges the result
func (p *Pipeline) RunFull(ctx context.Context) (result *Result) {
	language := p.flags.Language
	result = newResult(KindFull, language, "")
	defer p.recoverInto(result)

	p.logger.Info("starting full pipeline", "language", language)

	if p.flags.Clean {
		step := p.archiveOutput()
		result.add(step)
		if !step.Success {
			result.fail("Failed to archive existing output")
			return result
		}
	}

	fmt.Fprintf(p.out, "%s Step 1: converting source to JSON parts\n", cyan("→"))
	step := p.convert()
	result.add(step)
	if !step.Success {
		result.fail("Failed to convert source to JSON parts")
		return result
	}

	fmt.Fprintf(p.out, "%s Step 2: translating JSON parts to %s\n", cyan("→"), language)
	step = p.translateAll(ctx)
	result.add(step)
	if !step.Success {
		result.fail("Failed to translate JSON files")
		return result
	}

	fmt.Fprintf(p.out, "%s Step 3: merging translated files\n", cyan("→"))
	step = p.merge()
	result.add(step)
	if !step.Success {
		result.fail("Failed to merge translated files")
		return result
	}

	result.Success = true
	p.logger.Info("full pipeline completed", "language", language)
	return result
}

// RunSingle translates one part and merges; with --convert-to-json the
// source is converted first
func (p *Pipeline) RunSingle(ctx context.Context, stem string) (result *Result) {
	language := p.flags.Language
	result = newResult(KindSingle, language, stem)
	defer p.recoverInto(result)

	p.logger.Info("starting single file pipeline", "language", language, "file", stem)

	if p.flags.ConvertToJSON || p.flags.Schema {
		fmt.Fprintf(p.out, "%s Step 1: converting source to JSON parts\n", cyan("→"))
		step := p.convert()
		result.add(step)
		if !step.Success {
			result.fail("Failed to convert source to JSON parts")
			return result
		}
	}

	fmt.Fprintf(p.out, "%s Step 2: translating %s\n", cyan("→"), stem)
	step := p.translateOne(ctx, stem)
	result.add(step)
	if !step.Success {
		result.fail(fmt.Sprintf("Failed to translate %s", stem))
		return result
	}

	fmt.Fprintf(p.out, "%s Step 3: merging translated files\n", cyan("→"))
	step = p.merge()
	result.add(step)
	if !step.Success {
		result.fail("Failed to merge translated files")
		return result
	}

	result.Success = true
	p.logger.Info("single file pipeline completed", "language", language, "file", stem)
	return result
}

// RunConvert only converts the source into parts
func (p *Pipeline) RunConvert() (result *Result) {
	result = newResult(KindConvert, p.flags.Language, "")
	defer p.recoverInto(result)

	step := p.convert()
	result.add(step)
	if !step.Success {
		result.fail("Failed to convert source to JSON parts")
		return result
	}
	result.Success = true
	return result
}

// RunMerge only merges the translated parts of the language
func (p *Pipeline) RunMerge() (result *Result) {
	result = newResult(KindMerge, p.flags.Language, "")
	defer p.recoverInto(result)

	step := p.merge()
	result.add(step)
	if !step.Success {
		result.fail("Failed to merge translated files")
		return result
	}
	result.Success = true
	return result
}

// RunMergeAll merges every language found below output/
func (p *Pipeline) RunMergeAll() (result *Result) {
	result = newResult(KindMergeAll, "", "")
	defer p.recoverInto(result)

	results, err := p.merger.MergeAll()
	if err != nil {
		result.fail(err.Error())
		return result
	}
	if len(results) == 0 {
		result.fail("No language directories found")
		return result
	}

	fmt.Fprintln(p.out, "\nMerge results:")
	result.Success = true
	for _, r := range results {
		step := Step{Name: "merge " + r.Language, Success: r.Success}
		if r.Success {
			step.Files = []string{p.layout.FinalPath(r.Language)}
			fmt.Fprintf(p.out, "  %s: %s\n", r.Language, green("success"))
		} else {
			step.Errors = []string{r.Err.Error()}
			result.Success = false
			fmt.Fprintf(p.out, "  %s: %s\n", r.Language, red("failed"))
		}
		result.add(step)
	}
	if !result.Success {
		result.Errors = append(result.Errors, "Some languages could not be merged")
	}
	return result
}

// Status inspects the workspace of the language
func (p *Pipeline) Status() (*status.Report, error) {
	return status.Build(p.layout, p.flags.Language, p.merger)
}

// recoverInto turns a panic in a run into a failed result
func (p *Pipeline) recoverInto(result *Result) {
	if r := recover(); r != nil {
		p.logger.Error("pipeline panicked", "panic", r)
		result.fail(fmt.Sprintf("Pipeline error: %v", r))
	}
}

func (p *Pipeline) archiveOutput() Step {
	step := Step{Name: "archive"}

	path, err := archive.ArchiveOutput(p.layout.OutputDir(p.flags.Language), p.layout.ArchiveRoot(), p.flags.Language)
	switch {
	case errors.Is(err, archive.ErrNothingToArchive):
		p.logger.Info("no previous output to archive", "language", p.flags.Language)
		step.Success = true
	case err != nil:
		p.logger.Error("failed to archive output", "error", err)
		step.Errors = append(step.Errors, err.Error())
	default:
		fmt.Fprintf(p.out, "Previous output archived to: %s\n", path)
		step.Files = []string{path}
		step.Success = true
	}
	return step
}

func (p *Pipeline) convert() Step {
	step := Step{Name: "convert"}

	var (
		files []string
		err   error
	)
	if p.flags.Schema {
		files, err = p.converter.ConvertDocument(p.flags.MaxLines, p.flags.Language)
	} else {
		files, err = p.converter.ConvertWorkbook(p.flags.ItemsPerPart, p.flags.Language)
	}

	step.Files = files
	switch {
	case err != nil:
		step.Errors = append(step.Errors, err.Error())
	case len(files) == 0:
		step.Errors = append(step.Errors, "source produced no parts")
	default:
		step.Success = true
		fmt.Fprintf(p.out, "  Created %s JSON parts in %s\n", green(len(files)), p.layout.PartsDir(p.flags.Language))
	}
	return step
}

func (p *Pipeline) translateAll(ctx context.Context) Step {
	step := Step{Name: "translate"}
	if p.translator == nil {
		step.Errors = append(step.Errors, "translation client not configured")
		return step
	}

	total := 0
	if names, err := workspace.ListJSON(p.layout.PartsDir(p.flags.Language)); err == nil {
		total = len(names)
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", p.flags.Language)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	summary, err := p.translator.TranslateAll(ctx, p.flags.Language, translation.AllOptions{
		SkipExisting: p.flags.SkipExisting,
		OnFile: func(o translation.Outcome) {
			_ = bar.Add(1)
		},
	})
	_ = bar.Finish()
	fmt.Fprintln(p.progress)

	if summary != nil {
		for _, o := range summary.Outcomes {
			if o.Output != "" {
				step.Files = append(step.Files, o.Output)
			}
		}
		for _, stem := range summary.Failed {
			step.Errors = append(step.Errors, fmt.Sprintf("failed to translate %s", stem))
		}
		fmt.Fprintf(p.out, "  Translated %s/%d parts", green(summary.Succeeded), summary.Total)
		if summary.Skipped > 0 {
			fmt.Fprintf(p.out, ", %d skipped", summary.Skipped)
		}
		if summary.Fallbacks > 0 {
			fmt.Fprintf(p.out, ", %s kept untranslated", yellow(summary.Fallbacks))
		}
		fmt.Fprintln(p.out)
	}

	if err != nil {
		step.Errors = append(step.Errors, err.Error())
		return step
	}
	step.Success = len(summary.Failed) == 0
	return step
}

func (p *Pipeline) translateOne(ctx context.Context, stem string) Step {
	step := Step{Name: "translate"}
	if p.translator == nil {
		step.Errors = append(step.Errors, "translation client not configured")
		return step
	}

	outcome, err := p.translator.TranslateFile(ctx, p.flags.Language, stem)
	if err != nil {
		step.Errors = append(step.Errors, err.Error())
		return step
	}

	step.Files = []string{outcome.Output}
	step.Success = true
	if !outcome.FromService {
		fmt.Fprintf(p.out, "  %s %s kept untranslated (service unavailable)\n", yellow("!"), stem)
	}
	return step
}

func (p *Pipeline) merge() Step {
	step := Step{Name: "merge"}

	report, err := p.merger.Merge(p.flags.Language)
	if err != nil {
		step.Errors = append(step.Errors, err.Error())
		return step
	}

	step.Files = append([]string{report.Output}, report.Exports...)
	step.Success = true
	printMergeSummary(p.out, report)
	return step
}

func printMergeSummary(w io.Writer, report *merge.Report) {
	table := report.Table
	fmt.Fprintf(w, "\n📊 Merge Summary for %s:\n", cyan(report.Language))
	fmt.Fprintf(w, "   JSON files processed: %d\n", table.Found)
	fmt.Fprintf(w, "   Total unique keys: %d\n", table.Len())
	fmt.Fprintf(w, "   Output file: %s\n", report.Output)
	for _, export := range report.Exports {
		fmt.Fprintf(w, "   Export: %s\n", export)
	}
	fmt.Fprintln(w, "   File sizes:")
	for _, f := range table.Files {
		fmt.Fprintf(w, "     %s: %d items\n", f.Name, f.Items)
	}
	for _, s := range table.Skipped {
		fmt.Fprintf(w, "     %s: %s (%s)\n", s.Name, red("skipped"), s.Reason)
	}
}
