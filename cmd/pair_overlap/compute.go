package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/pair-overlap/internal/config"
	"github.com/jonathan/pair-overlap/internal/ingestion"
	"github.com/jonathan/pair-overlap/internal/logging"
	"github.com/jonathan/pair-overlap/internal/observability"
	"github.com/jonathan/pair-overlap/internal/overlap"
	"github.com/jonathan/pair-overlap/internal/schemas"
	"github.com/jonathan/pair-overlap/internal/types"
)

var computeCmd = &cobra.Command{
	Use:   "compute [file]",
	Short: "Find the longest-collaborating employee pair in an assignments file",
	Long: `Reads a CSV or XLSX assignments file and prints every overlapping pair ranked by total days,
the top pair, and any rows that could not be used. Use "-" to read from stdin.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompute,
}

var (
	computeConfigPath string
	computeFile       string
	computeFormat     string
	computeToday      string
	computeValidate   bool
	computeVerbose    bool
	computeLogLevel   string
)

func init() {
	// Config file flag (processed first)
	computeCmd.Flags().StringVar(&computeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	computeCmd.Flags().StringVarP(&computeFile, "file", "f", "", "Path to assignments file, or - for stdin")
	computeCmd.Flags().StringVar(&computeFormat, "format", "", "Output format: json, table or rows (default json)")
	computeCmd.Flags().StringVar(&computeToday, "today", "", "Reference date (yyyy-MM-dd) used for NULL dates (default current date)")
	computeCmd.Flags().BoolVar(&computeValidate, "validate", false, "Check the result against the engine result schema")
	computeCmd.Flags().BoolVarP(&computeVerbose, "verbose", "v", false, "Log run details to stderr")
	computeCmd.Flags().StringVar(&computeLogLevel, "log-level", "", "Log level for verbose mode (default debug)")

	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	// Step 1: Load config file if provided
	var cfg config.Config
	if computeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(computeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if len(args) == 1 {
		cfg.File = args[0]
	}
	if cmd.Flags().Changed("file") {
		cfg.File = computeFile
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = computeFormat
	}
	if cmd.Flags().Changed("today") {
		cfg.ReferenceDate = computeToday
	}
	if cmd.Flags().Changed("validate") {
		cfg.ValidateOutput = computeValidate
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = computeVerbose
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = computeLogLevel
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{Format: config.FormatJSON, LogLevel: "debug"})
	if cfg.File == "" {
		return errors.New("an assignments file is required (argument or --file)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ref, err := config.ParseDate(cfg.ReferenceDate)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		logger, err = logging.NewWithWriter(logging.Config{Level: cfg.LogLevel, Format: logging.FormatConsole}, stderr)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		if computeConfigPath != "" {
			logger.Info("loaded config", zap.String("path", computeConfigPath))
		}
	}

	src, err := openSource(cmd, cfg.File)
	if err != nil {
		return err
	}
	defer src.Close()

	result := overlap.Compute(cmd.Context(), src,
		overlap.WithReferenceDate(ref),
		overlap.WithLogger(logger),
	)

	if cfg.ValidateOutput {
		if err := schemas.ValidateResult(result); err != nil {
			return fmt.Errorf("result failed schema validation: %w", err)
		}
		logger.Info("result matches schema")
	}

	if err := writeResult(cmd.OutOrStdout(), cfg.Format, result); err != nil {
		return err
	}

	for _, e := range result.Errors {
		if e.Kind.Terminal() {
			return fmt.Errorf("input was not read completely: %s", e.Message)
		}
	}
	return nil
}

// openSource opens path, or stdin for "-", as a row source of the sniffed format.
func openSource(cmd *cobra.Command, path string) (ingestion.Source, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		src, err := ingestion.OpenBytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to open stdin: %w", err)
		}
		return src, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	src, err := ingestion.Open(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return src, nil
}

func writeResult(w io.Writer, format string, result *types.EngineResult) error {
	switch format {
	case config.FormatTable:
		observability.NewPrinter(w).PrintResult(result)
		return nil
	case config.FormatRows:
		return writeJSON(w, result.Rows())
	default:
		return writeJSON(w, result)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
