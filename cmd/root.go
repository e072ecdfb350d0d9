package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/internal/display"
	"github.com/huangsam/lightcurve/internal/display/window"
	"github.com/huangsam/lightcurve/internal/history"
	"github.com/huangsam/lightcurve/internal/source"
	"github.com/huangsam/lightcurve/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// profile holds profiling configuration.
var profile = &contract.ProfileConfig{}

// historyStore is the invocation history opened during setup.
var historyStore *history.Store

// services bundles the source, display and history used by the light curve commands.
var services contract.Services

// startProfiling starts CPU and memory profiling if enabled.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}

	cpuFile, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}

	// Memory profiling will be captured at the end
	_, err = fmt.Fprintf(os.Stderr, "Profiling enabled. CPU profile: %s.cpu.prof, Memory profile: %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return err
}

// stopProfiling stops profiling and writes memory profile.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}

	pprof.StopCPUProfile()

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	_, err = fmt.Fprintf(os.Stderr, "Profiling complete. Use 'go tool pprof %s.cpu.prof' to analyze.\n", profile.Prefix)
	return err
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "lightcurve",
	Short:              "Render and prepare astronomical light curves.",
	Long:               `Lightcurve plots phase-folded light curves from CSV and ECSV tables, and prepares raw time series for plotting.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("LIGHTCURVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("base-dir", contract.DefaultBaseDir)
	viper.SetDefault("phase-column", schema.DefaultPhaseColumn)
	viper.SetDefault("flux-column", schema.DefaultFluxColumn)
	viper.SetDefault("display", schema.WindowDisplay)
	viper.SetDefault("format", schema.PNGImage)
	viper.SetDefault("width", contract.DefaultWidth)
	viper.SetDefault("height", contract.DefaultHeight)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("s3-region", contract.DefaultS3Region)
	viper.SetDefault("color", "yes")
}

// setConfigFile points Viper at --config or the default .lightcurve.yaml locations.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".lightcurve") // Name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// sharedSetup unmarshals config, runs validation and wires the services.
func sharedSetup(ctx context.Context, _ *cobra.Command, _ []string) error {
	profilePrefix := viper.GetString("profile")
	if err := contract.ProcessProfilingConfig(profile, profilePrefix); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if profile.Enabled {
		if err := startProfiling(); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	contract.InitLogger(os.Stderr, cfg.LogLevel, cfg.UseColors)
	contract.ApplyColorSetting(cfg.UseColors)

	// 4. Wire the collaborators with the validated config.
	src, err := source.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("invalid base location: %w", err)
	}
	out, err := newDisplay(cfg)
	if err != nil {
		return err
	}
	store, err := history.NewStore(ctx, cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	historyStore = store
	services = contract.Services{Source: src, Display: out, History: store}
	return nil
}

// newDisplay builds the display for the configured mode.
func newDisplay(cfg *contract.Config) (contract.Display, error) {
	if cfg.Display == schema.WindowDisplay {
		return window.New(cfg.Width, cfg.Height), nil
	}
	return display.New(cfg.Display)
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	setConfigFile()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Shutdown releases the history store and stops profiling if enabled.
func Shutdown() error {
	var errs []error
	if historyStore != nil {
		if err := historyStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close history: %w", err))
		}
		historyStore = nil
	}
	if err := stopProfiling(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
