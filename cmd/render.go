package cmd

import (
	"errors"

	"github.com/huangsam/lightcurve/core"
	"github.com/huangsam/lightcurve/internal/outwriter"
	"github.com/spf13/cobra"
)

// renderCmd plots a phase-folded light curve and shows it.
var renderCmd = &cobra.Command{
	Use:   "render <filename>",
	Short: "Plot a phase-folded light curve and display it.",
	Long: `Load a CSV or ECSV table from the base location and plot normalized flux against phase.

The table needs a phase column and a normalized flux column (exact,
case-sensitive names). Extra columns are ignored and rows are plotted in file
order as individual markers.

Display surfaces:
- window: a native window that stays open until you close it (png only)
- viewer: write the image to a temporary file and open the system viewer
- none: render only, useful for scripting and checks

Examples:
  # Show a light curve in a window
  lightcurve render c.csv --base-dir ./data

  # Render an SVG into the system viewer
  lightcurve render c.csv --display viewer --format svg

  # Read from a MinIO bucket and only validate the file
  lightcurve render c.csv --base-dir s3://lc-data/tess --s3-endpoint http://localhost:9000 --display none`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := core.Render(rootCtx, cfg, services, args[0])
		if err != nil {
			return userFailure(err)
		}
		return outwriter.NewOutWriter().WriteRender(cmd.OutOrStdout(), result, cfg)
	},
}

// userFailure reduces a core error to the one-line message shown to the user.
func userFailure(err error) error {
	return errors.New(core.UserMessage(err))
}
