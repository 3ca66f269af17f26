package cli

import (
	"bufio"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/etfcheck/internal/fixture"
)

// EmitOptions holds flags for the emit command.
type EmitOptions struct {
	*RootOptions
	Out string
}

// NewEmitCommand creates the emit command.
func NewEmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Emit the fixture catalogue as a framed byte stream",
		Long: `Encode every catalogue term in order and write the length-prefixed
stream to stdout (or a file with --out). Feed the stream to another ETF
implementation's reader to check cross-implementation agreement.

Example:
  etfcheck emit | other-etf-reader
  etfcheck emit --out fixtures.bin`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the stream to a file instead of stdout")

	return cmd
}

func runEmit(opts *EmitOptions, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				slog.Error("error closing output file", "path", opts.Out, "error", closeErr)
			}
		}()
		out = f
	}

	// Buffer and flush explicitly so a downstream reader always sees a
	// complete stream ending at a frame boundary.
	bw := bufio.NewWriter(out)
	slog.Debug("emitting catalogue", "entries", len(fixture.Catalogue()))
	if err := fixture.WriteAll(bw); err != nil {
		return WrapExitError(ExitFailure, "fixture emission failed", err)
	}
	if err := bw.Flush(); err != nil {
		return WrapExitError(ExitFailure, "failed to flush stream", err)
	}
	slog.Debug("catalogue emitted")
	return nil
}
