package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/sheetlate/internal/cli"
	"codeberg.org/snonux/sheetlate/internal/models"
	"codeberg.org/snonux/sheetlate/internal/pipeline"
	"codeberg.org/snonux/sheetlate/internal/status"
	"codeberg.org/snonux/sheetlate/internal/translation"
)

// errRunFailed signals a completed run that did not succeed; its result has
// already been printed
var errRunFailed = errors.New("pipeline run failed")

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
		if err := cli.LoadEnv(flags.WorkDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	cli.LoadFromViper(flags)
	if err := flags.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := cli.NewLogger(flags.LogFile, flags.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	// Handle --list-models flag
	if flags.Mode() == cli.ModeListModels {
		lister := models.NewLister(flags.Provider, cli.APIKeyFor(flags.Provider))
		return lister.ListAvailableModels(ctx)
	}

	var client translation.Client
	if flags.NeedsTranslation() {
		if client, err = newClient(ctx, flags); err != nil {
			return err
		}
		logger.Info("using translation service", "client", client.Name())
	}

	p := pipeline.New(flags, client, logger)
	p.SetOutput(out, cmd.ErrOrStderr())

	var result *pipeline.Result
	switch flags.Mode() {
	case cli.ModeStatus:
		report, err := p.Status()
		if err != nil {
			return err
		}
		return status.Render(out, report, flags.StatusFormat)
	case cli.ModeMergeAll:
		result = p.RunMergeAll()
	case cli.ModeMerge:
		result = p.RunMerge()
	case cli.ModeSingle:
		result = p.RunSingle(ctx, flags.File)
	case cli.ModeFull:
		result = p.RunFull(ctx)
	case cli.ModeConvert:
		result = p.RunConvert()
	default:
		// No mode selected: show where the workspace stands and what to run next
		report, err := p.Status()
		if err != nil {
			return err
		}
		status.Print(out, report)
		fmt.Fprintf(out, "\n💡 Next step: %s\n", report.Overall.Hint())
		return nil
	}

	pipeline.PrintResult(out, result)
	if !result.Success {
		return errRunFailed
	}
	return nil
}

func newClient(ctx context.Context, flags *cli.Flags) (translation.Client, error) {
	apiKey := cli.APIKeyFor(flags.Provider)
	if apiKey == "" {
		env := "GEMINI_API_KEY"
		if strings.EqualFold(flags.Provider, "openai") {
			env = "OPENAI_API_KEY"
		}
		return nil, fmt.Errorf("%w: set %s or configure it in .sheetlate.yaml", translation.ErrMissingAPIKey, env)
	}

	config := translation.DefaultConfig()
	config.Provider = flags.Provider
	config.APIKey = apiKey
	config.Model = flags.Model
	config.Temperature = flags.Temperature

	return translation.NewClient(ctx, config)
}
