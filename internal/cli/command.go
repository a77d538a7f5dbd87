package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/sheetlate/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetlate",
		Short: "Spreadsheet translation pipeline",
		Long: `sheetlate translates the key column of a localization spreadsheet with a
large language model.

It splits source/Output_Final.xlsx into numbered JSON parts, sends each part
to Gemini or OpenAI, cleans the responses and merges all translated parts
into output/<language>/final.xlsx.

Examples:
  sheetlate                          # Show status and the next step
  sheetlate --full -l german         # Convert, translate and merge
  sheetlate -f p3 -l german          # Translate one part and merge
  sheetlate --schema --max-lines 300 # Split the schema document into parts
  sheetlate --merge-all --csv        # Merge every language, with CSV copies`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.sheetlate.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.WorkDir, "workdir", flags.WorkDir, "Workspace root containing source/, parts/ and output/")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", flags.LogFile, "Append log records to this file (empty disables)")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available chat models for the selected provider")

	// Pipeline flags
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Target language (default: japanese)")
	cmd.Flags().IntVarP(&flags.ItemsPerPart, "items-per-part", "i", flags.ItemsPerPart, "Items per JSON part")
	cmd.Flags().IntVar(&flags.MaxLines, "max-lines", flags.MaxLines, "Maximum lines per part when splitting the schema document")
	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "Translate single file (without extension)")
	cmd.Flags().BoolVarP(&flags.Status, "status", "s", false, "Show pipeline status only")
	cmd.Flags().StringVar(&flags.StatusFormat, "status-format", flags.StatusFormat, "Status output format: text, json or yaml")
	cmd.Flags().BoolVarP(&flags.ConvertToJSON, "convert-to-json", "c", false, "Convert the source spreadsheet to JSON parts")
	cmd.Flags().BoolVar(&flags.Schema, "schema", false, "Split source/en.default.schema.json by line budget instead of the spreadsheet")
	cmd.Flags().BoolVar(&flags.Full, "full", false, "Run full pipeline (spreadsheet → JSON → translate → merge)")
	cmd.Flags().BoolVar(&flags.Clean, "clean", false, "Archive existing output of the language before a full run")
	cmd.Flags().BoolVar(&flags.SkipExisting, "skip-existing", false, "Skip parts that already have a translation")

	// Merge flags
	cmd.Flags().BoolVar(&flags.Merge, "merge", false, "Merge translated parts into final.xlsx only")
	cmd.Flags().BoolVar(&flags.MergeAll, "merge-all", false, "Merge translated parts of every language")
	cmd.Flags().BoolVar(&flags.CSV, "csv", false, "Also write final.csv when merging")
	cmd.Flags().BoolVar(&flags.SQLite, "sqlite", false, "Also write final.db (SQLite) when merging")

	// Translation flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: gemini or openai")
	cmd.Flags().StringVar(&flags.Model, "model", flags.Model, "Model used for translation")
	cmd.Flags().Float64Var(&flags.Temperature, "temperature", flags.Temperature, "Sampling temperature (0 to 2)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("pipeline.workdir", cmd.Flags().Lookup("workdir"))
	viper.BindPFlag("pipeline.language", cmd.Flags().Lookup("language"))
	viper.BindPFlag("pipeline.items_per_part", cmd.Flags().Lookup("items-per-part"))
	viper.BindPFlag("pipeline.max_lines", cmd.Flags().Lookup("max-lines"))
	viper.BindPFlag("pipeline.skip_existing", cmd.Flags().Lookup("skip-existing"))
	viper.BindPFlag("pipeline.status_format", cmd.Flags().Lookup("status-format"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translation.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translation.temperature", cmd.Flags().Lookup("temperature"))
	viper.BindPFlag("merge.csv", cmd.Flags().Lookup("csv"))
	viper.BindPFlag("merge.sqlite", cmd.Flags().Lookup("sqlite"))
	viper.BindPFlag("log.file", cmd.Flags().Lookup("log-file"))
	viper.BindPFlag("log.verbose", cmd.Flags().Lookup("verbose"))
}

// LoadFromViper copies the bound settings back into flags, so values from
// the config file or SHEETLATE_* variables apply when a flag is not given
func LoadFromViper(flags *Flags) {
	flags.WorkDir = viper.GetString("pipeline.workdir")
	flags.Language = viper.GetString("pipeline.language")
	flags.ItemsPerPart = viper.GetInt("pipeline.items_per_part")
	flags.MaxLines = viper.GetInt("pipeline.max_lines")
	flags.SkipExisting = viper.GetBool("pipeline.skip_existing")
	flags.StatusFormat = viper.GetString("pipeline.status_format")
	flags.Provider = viper.GetString("translation.provider")
	flags.Model = viper.GetString("translation.model")
	flags.Temperature = viper.GetFloat64("translation.temperature")
	flags.CSV = viper.GetBool("merge.csv")
	flags.SQLite = viper.GetBool("merge.sqlite")
	flags.LogFile = viper.GetString("log.file")
	flags.Verbose = viper.GetBool("log.verbose")
}
