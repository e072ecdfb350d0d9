// Package cmd defines the command-line interface for lightcurve.
package cmd

import (
	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(foldCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("base-dir", contract.DefaultBaseDir, "Directory or s3://bucket/prefix that filenames are resolved against")
	rootCmd.PersistentFlags().String("phase-column", schema.DefaultPhaseColumn, "Name of the phase column")
	rootCmd.PersistentFlags().String("flux-column", schema.DefaultFluxColumn, "Name of the normalized flux column")
	rootCmd.PersistentFlags().String("time-column", schema.DefaultTimeColumn, "Name of the Julian Date column read by fold and written by convert")
	rootCmd.PersistentFlags().String("raw-flux-column", schema.DefaultRawFlux, "Name of the raw flux column")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("table-width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("history-backend", "", "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("s3-endpoint", "", "Custom S3 endpoint, such as a MinIO server")
	rootCmd.PersistentFlags().String("s3-region", contract.DefaultS3Region, "Region used for s3:// base locations")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of renderCmd to Viper
	renderCmd.Flags().String("display", string(schema.WindowDisplay), "Display surface: window or viewer or none")
	renderCmd.Flags().String("format", string(schema.PNGImage), "Image format: png or svg")
	renderCmd.Flags().Int("width", contract.DefaultWidth, "Image width in pixels")
	renderCmd.Flags().Int("height", contract.DefaultHeight, "Image height in pixels")
	if err := viper.BindPFlags(renderCmd.Flags()); err != nil {
		contract.LogFatal("Error binding render flags", err)
	}

	// Bind all flags of foldCmd to Viper
	foldCmd.Flags().Float64("period", 0, "Orbital or pulsation period in days")
	foldCmd.Flags().String("epoch", "", "Reference Julian Date for phase zero (default: time of minimum flux)")
	if err := viper.BindPFlags(foldCmd.Flags()); err != nil {
		contract.LogFatal("Error binding fold flags", err)
	}

	// Bind all flags of convertCmd to Viper
	convertCmd.Flags().String("iso-column", schema.ISOTimeColumn, "Name of the ISO 8601 timestamp column")
	if err := viper.BindPFlags(convertCmd.Flags()); err != nil {
		contract.LogFatal("Error binding convert flags", err)
	}

	// Bind all flags of historyListCmd to Viper
	historyListCmd.Flags().Int("limit", contract.DefaultListLimit, "Number of runs to list (0 = all)")
	if err := viper.BindPFlags(historyListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history list flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
