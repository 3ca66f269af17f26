// Package cli wires the fixture producer and stream reader into the
// etfcheck command tree. Transport selection (stdio vs. file) lives
// here, outside the framing and canonicalization core.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the etfcheck CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "etfcheck",
		Short: "Cross-implementation conformance harness for the External Term Format",
		Long: `etfcheck exchanges length-prefixed ETF term streams with independent
ETF implementations and compares their canonical JSON projections.

emit writes the fixture catalogue as a framed byte stream; read consumes
such a stream and reports each term's canonical form; roundtrip does both
in-process as a self-check.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewEmitCommand(opts))
	cmd.AddCommand(NewReadCommand(opts))
	cmd.AddCommand(NewRoundtripCommand(opts))

	return cmd
}

// configureLogging sets the process-wide slog default. Diagnostics go to
// stderr so they never interleave with the byte stream or the report.
func configureLogging(verbose bool) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
