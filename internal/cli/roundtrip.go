package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/etfcheck/internal/harness"
)

// NewRoundtripCommand creates the roundtrip command.
func NewRoundtripCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "Self-check: emit the catalogue and read it back in-process",
		Long: `Encode the full catalogue into an in-memory stream, read it back
through the frame reader, and verify every term's canonical form matches
the original in catalogue order. Prints the reader-side report on
success. A mismatch, framing error, or decode error fails the run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundtrip(rootOpts, cmd)
		},
	}

	return cmd
}

func runRoundtrip(opts *RootOptions, cmd *cobra.Command) error {
	res, err := harness.RoundTrip()
	if err != nil {
		return failRun(opts.Format, cmd.OutOrStdout(), "round trip failed", err)
	}
	slog.Debug("round trip complete", "terms", len(res.Values))

	return reportResult(opts.Format, cmd.OutOrStdout(), res)
}
