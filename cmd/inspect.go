package cmd

import (
	"github.com/huangsam/lightcurve/core"
	"github.com/huangsam/lightcurve/internal/outwriter"
	"github.com/spf13/cobra"
)

// inspectCmd summarizes a light curve without plotting it.
var inspectCmd = &cobra.Command{
	Use:   "inspect <filename>",
	Short: "Summarize a light curve table.",
	Long: `Load a light curve with the same rules as render and describe it.

Reports the point count, phase and flux ranges, mean flux, and the brightest
and faintest points. Structured formats include every point.

Examples:
  # Quick look at a file
  lightcurve inspect c.csv

  # Dump the points for a notebook
  lightcurve inspect c.csv --output csv --output-file c_points.csv

  # Columnar export for DuckDB
  lightcurve inspect c.csv --output parquet --output-file c.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		result, err := core.Inspect(rootCtx, cfg, services, args[0])
		if err != nil {
			return userFailure(err)
		}
		return outwriter.NewOutWriter().WriteInspect(result, cfg)
	},
}
