package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/internal/logger"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	noColor   bool
	lang      string
	logDir    string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "Plan, replay and inspect region allocators",
	Long: `arenactl works with arenakit's stack, pool and multipool allocators.
It prints arena layouts, replays YAML workloads against a real allocator,
compares planned footprints with host memory, and animates a replay in the
terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and allocator debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "Language tag for number formatting (e.g. en, de, fr)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write debug logs to dated files in this directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log record format: text or json")
}

// setupLogging routes allocator logs to stderr for --verbose, or to files
// under --log-dir.
func setupLogging() error {
	if logFormat != "text" && logFormat != "json" {
		return fmt.Errorf("invalid --log-format %q (want text or json)", logFormat)
	}
	if !verbose && logDir == "" {
		return logger.Init(logger.Options{})
	}
	alloc.SetLogging(true)
	return logger.Init(logger.Options{
		Enabled: true,
		Level:   slog.LevelDebug,
		JSON:    logFormat == "json",
		Writer:  os.Stderr,
		LogDir:  logDir,
	})
}

func execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError("%v\n", err)
		stop()
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprint(os.Stdout, printer().Sprintf(format, args...))
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
