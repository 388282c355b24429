package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/studiowebux/brulang/internal/cli"
	"github.com/studiowebux/brulang/internal/config"
	"github.com/studiowebux/brulang/internal/logging"
)

var (
	version = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// check and fmt --check already reported their findings
		if !errors.Is(err, cli.ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// cfg is loaded before any command runs; flags override it
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "bru",
	Short: "Parse, format and check .bru request collections",
	Long: `bru reads request, folder, collection and environment files in the
brace, legacy and YAML dialects and writes them back in canonical form.

Examples:
  bru parse get-user.bru                 # Print the request as JSON
  bru parse env/dev.bru --as env -o yaml # Print an environment as YAML
  bru parse req.bru --query 'headers[].name'
  bru fmt --write **/*.bru               # Rewrite files in canonical form
  bru check ./my-collection              # Report parse and lint problems
  bru find ./my-collection users         # Fuzzy search request names
  bru import har session.har -o reqs     # Convert a HAR archive`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		path := flagConfig
		if path == "" {
			path = config.GetConfigFilePath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("color") {
			cfg.Color = flagColor
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = flagLogLevel
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = flagWorkers
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		format, err := logging.ParseFormat(cfg.LogFormat)
		if err != nil {
			return err
		}
		logging.InitLogger(level, format)
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print a parsed document as JSON or YAML",
	Long: `Parse a request, folder, collection or environment file and print the
document. Use "-" to read from stdin.

The kind is taken from --as, then from the file name (collection.bru,
folder.bru, environments/*), then inferred from the content.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output := cfg.Output
		if cmd.Flags().Changed("output") {
			output = flagOutput
		}
		return cli.Parse(cmd.Context(), stdout(), cli.ParseOptions{
			File:    args[0],
			As:      flagAs,
			Output:  output,
			Filter:  flagFilter,
			Query:   flagQuery,
			Secrets: flagSecrets,
		})
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <file...>",
	Short: "Rewrite files in canonical form",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := cli.Format(stdout(), cli.FmtOptions{
			Files: args,
			As:    flagAs,
			Write: flagWrite,
			Check: flagCheck,
			Diff:  flagDiff,
		})
		if errors.Is(err, cli.ErrNotFormatted) {
			return cli.ErrCheckFailed
		}
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <dir>",
	Short: "Parse every file of a collection and report problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Check(cmd.Context(), stdout(), cli.CheckOptions{
			Dir:     args[0],
			Workers: cfg.Workers,
			Strict:  flagStrict,
		})
	},
}

var findCmd = &cobra.Command{
	Use:   "find <dir> <pattern>",
	Short: "Fuzzy search request names in a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := cli.Find(cmd.Context(), stdout(), args[0], args[1], cfg.Workers)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no request matches %q", args[1])
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <http|har> <file>",
	Short: "Convert .http files or HAR archives to request files",
	Long: `Convert requests from other formats into request files, one file per
request. Authorization and cookie headers are dropped unless --import-headers
is set; bearer tokens become bearer auth with a {{token}} placeholder.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{cli.ImportHTTP, cli.ImportHAR},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Import(stdout(), cli.ImportOptions{
			Format:        args[0],
			File:          args[1],
			OutputDir:     flagImportDir,
			ImportHeaders: flagImportHeaders,
			Filter:        flagImportFilter,
		})
	},
}

// Global flags
var (
	flagConfig   string
	flagColor    string
	flagLogLevel string
	flagWorkers  int
)

// Flags for parse and fmt
var (
	flagAs      string
	flagOutput  string
	flagFilter  string
	flagQuery   string
	flagSecrets string
	flagWrite   bool
	flagCheck   bool
	flagDiff    bool
	flagStrict  bool
)

// Flags for import
var (
	flagImportDir     string
	flagImportHeaders bool
	flagImportFilter  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default .bru.yaml or ~/.bru/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", config.ColorAuto, "Color output (auto/always/never)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().IntVarP(&flagWorkers, "workers", "j", 0, "Files parsed concurrently (default number of CPUs)")

	parseCmd.Flags().StringVar(&flagAs, "as", "", "Document kind (request/folder/collection/environment)")
	parseCmd.Flags().StringVarP(&flagOutput, "output", "o", config.OutputJSON, "Output format (json/yaml)")
	parseCmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter applied before --query")
	parseCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query or $(shell command)")
	parseCmd.Flags().StringVar(&flagSecrets, "secrets", "", "Fill environment secrets from a .env file")

	fmtCmd.Flags().StringVar(&flagAs, "as", "", "Document kind (request/folder/collection/environment)")
	fmtCmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "Write result to the source file")
	fmtCmd.Flags().BoolVar(&flagCheck, "check", false, "Exit non-zero if any file is not formatted")
	fmtCmd.Flags().BoolVarP(&flagDiff, "diff", "d", false, "Print a diff instead of the result")

	checkCmd.Flags().BoolVar(&flagStrict, "strict", false, "Fail on warnings")

	importCmd.Flags().StringVarP(&flagImportDir, "output", "o", "requests", "Output directory")
	importCmd.Flags().BoolVar(&flagImportHeaders, "import-headers", false, "Include sensitive headers")
	importCmd.Flags().StringVar(&flagImportFilter, "filter", "", "Only import URLs containing this text")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(importCmd)
}

func stdout() *cli.Output {
	return cli.NewOutput(os.Stdout, cfg.Color)
}
