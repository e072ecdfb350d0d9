package cmd

import (
	"time"

	"github.com/huangsam/lightcurve/core"
	"github.com/huangsam/lightcurve/internal/outwriter"
	"github.com/spf13/cobra"
)

// convertCmd turns ISO 8601 timestamps into Julian Dates.
var convertCmd = &cobra.Command{
	Use:   "convert <filename>",
	Short: "Convert ISO 8601 timestamps to Julian Dates.",
	Long: `Read a table with ISO 8601 timestamps and raw flux, and write Julian Dates.

Timestamps without a zone are taken as UTC. The output keeps row order and
carries the raw flux column unchanged, ready for the fold command.

The default output is <name>_jd.ecsv in the current directory. An
--output-file without the .ecsv extension is written as CSV.

Examples:
  # Convert observation times to JD
  lightcurve convert obs.csv

  # Custom input column and output file
  lightcurve convert obs.csv --iso-column date_obs --output-file obs_jd.csv

  # Convert, fold and render
  lightcurve convert obs.csv && lightcurve fold obs_jd.ecsv --period 1.2 --output-file f.csv && lightcurve render f.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		result, err := core.Convert(rootCtx, cfg, services, args[0])
		if err != nil {
			return userFailure(err)
		}
		return outwriter.NewOutWriter().WriteConvert(cmd.OutOrStdout(), result, cfg, time.Since(start))
	},
}
