package cli

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/etfcheck/internal/canon"
	"github.com/roach88/etfcheck/internal/harness"
)

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read [file]",
		Short: "Read a framed byte stream and report canonical forms",
		Long: `Consume a length-prefixed ETF term stream from stdin (or a file),
decode each frame, and print one line per term pairing its 1-based index
with the canonical JSON form, followed by the decoded count.

A truncated frame or undecodable payload aborts the run: frame boundaries
past a corrupt frame cannot be trusted.

Example:
  other-etf-emitter | etfcheck read
  etfcheck read fixtures.bin --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runRead(opts *RootOptions, args []string, cmd *cobra.Command) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open input file", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				slog.Error("error closing input file", "path", args[0], "error", closeErr)
			}
		}()
		in = f
	}

	res, err := harness.ReadStream(in)
	if err != nil {
		slog.Debug("stream read failed", "decoded", len(res.Values), "error", err)
		return failRun(opts.Format, cmd.OutOrStdout(), "stream read failed", err)
	}
	slog.Debug("stream consumed", "terms", len(res.Values))

	return reportResult(opts.Format, cmd.OutOrStdout(), res)
}

// reportResult renders a successful read in the requested format.
func reportResult(format string, w io.Writer, res *harness.Result) error {
	if format == "json" {
		terms := make([]json.RawMessage, len(res.Values))
		for i, v := range res.Values {
			b, err := canon.MarshalValue(v)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to render canonical form", err)
			}
			terms[i] = b
		}
		f := &OutputFormatter{Format: format, Writer: w}
		if err := f.Terms(terms); err != nil {
			return WrapExitError(ExitFailure, "failed to write report", err)
		}
		return nil
	}

	if err := res.Report(w); err != nil {
		return WrapExitError(ExitFailure, "failed to write report", err)
	}
	return nil
}

// failRun reports a run failure. JSON consumers get the error envelope
// on stdout; the run fails with a non-zero exit code either way, and
// text mode leaves the message to the exit path on stderr.
func failRun(format string, w io.Writer, message string, err error) error {
	exitErr := WrapExitError(ExitFailure, message, err)
	if format == "json" {
		f := &OutputFormatter{Format: format, Writer: w}
		if werr := f.Error(exitErr); werr != nil {
			slog.Error("error writing failure report", "error", werr)
		}
	}
	return exitErr
}
