package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/history"
	"github.com/huangsam/lightcurve/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads the configuration and opens the history store.
// It skips the source and display wiring that the light curve commands need.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	contract.InitLogger(os.Stderr, cfg.LogLevel, cfg.UseColors)
	contract.ApplyColorSetting(cfg.UseColors)

	store, err := history.NewStore(rootCtx, cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	historyStore = store
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup validates the backend settings without opening the store,
// so migrations can run against a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	backend, err := contract.ParseHistoryBackend(viper.GetString("history-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd groups the invocation history commands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the history of render, fold, convert and inspect runs",
	Long: `Manage the invocation history recorded by lightcurve.

When a history backend is configured, every render, fold, convert and inspect
run stores its filename, resolved location, outcome, point count and duration.
Failures are recorded with their outcome class (not_found, validation,
unclassified).

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show history statistics
  list    - Show the most recent runs
  clear   - Remove all runs
  export  - Export runs to Parquet
  migrate - Run database schema migrations

Examples:
  # Record runs in the default SQLite file
  export LIGHTCURVE_HISTORY_BACKEND=sqlite
  lightcurve render c.csv --display none
  lightcurve history list`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show the backend, connection state, run counts, and first and last run times.

Examples:
  lightcurve history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		status, err := historyStore.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintStatus(cmd.OutOrStdout(), status)
	},
}

// historyListCmd lists recent runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent runs",
	Long: `Print recorded runs, newest first.

Examples:
  # Last 20 runs as a table
  lightcurve history list

  # Every run as JSON
  lightcurve history list --limit 0 --output json`,
	PreRunE: historySetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		runs, err := historyStore.List(rootCtx, viper.GetInt("limit"))
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}
		return outwriter.NewOutWriter().WriteHistory(runs, cfg)
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete every recorded run.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  lightcurve history export --output-file backup.parquet
  lightcurve history clear`,
	PreRunE: historySetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := historyStore.Clear(rootCtx); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		cmd.Println("History cleared successfully.")
	},
}

// historyExportCmd exports runs to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet",
	Long: `Export every recorded run to a Parquet file for DuckDB, pandas or Spark.

Requires: --output-file parameter

Examples:
  lightcurve history export --output-file runs.parquet
  duckdb -c "SELECT outcome, count(*) FROM read_parquet('runs.parquet') GROUP BY 1"`,
	PreRunE: historySetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		n, err := history.Export(rootCtx, historyStore, cfg.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to export history: %w", err)
		}
		cmd.Printf("Exported %d runs to %s\n", n, cfg.OutputFile)
		return nil
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  lightcurve history migrate --history-backend sqlite

  # Rollback to the initial state
  lightcurve history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("target-version"))
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		if !result.Changed {
			cmd.Printf("Schema already at version %d.\n", result.To)
			return nil
		}
		cmd.Printf("Migrated schema from version %d to %d.\n", result.From, result.To)
		return nil
	},
}
