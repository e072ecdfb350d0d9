package cmd

import (
	"time"

	"github.com/huangsam/lightcurve/core"
	"github.com/huangsam/lightcurve/internal/outwriter"
	"github.com/spf13/cobra"
)

// foldCmd phase-folds a raw time series into a renderable table.
var foldCmd = &cobra.Command{
	Use:   "fold <filename>",
	Short: "Phase-fold a raw time series with a known period.",
	Long: `Fold a table of Julian Dates and raw flux into phase and normalized flux.

Phase is ((jd - epoch) / period) mod 1 and flux is min-max normalized into
[0, 1]. Without --epoch, the time of minimum flux is used as phase zero.
Rows are written in phase order.

The time column may hold Julian Dates or ISO 8601 timestamps. The result is
written as CSV, or ECSV when --output-file ends in .ecsv. The default output
name is <name>_folded.csv in the current directory.

Examples:
  # Fold an eclipsing binary with a 2.47 day period
  lightcurve fold raw.csv --period 2.47

  # Use a known epoch and custom column names
  lightcurve fold raw.ecsv --period 0.3 --epoch 2458850.0 --time-column bjd --raw-flux-column sap_flux

  # Fold and render in one go
  lightcurve fold raw.csv --period 2.47 --output-file folded.csv && lightcurve render folded.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		result, err := core.Fold(rootCtx, cfg, services, args[0])
		if err != nil {
			return userFailure(err)
		}
		return outwriter.NewOutWriter().WriteFold(cmd.OutOrStdout(), result, cfg, time.Since(start))
	},
}
