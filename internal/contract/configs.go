package contract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/huangsam/lightcurve/schema"
	"github.com/rs/zerolog"
)

// Default values for configuration.
const (
	DefaultBaseDir   = "."
	DefaultWidth     = 1024
	DefaultHeight    = 640
	MinImageSide     = 200
	MaxImageSide     = 8192
	DefaultPrecision = 4
	MaxPrecision     = 6
	DefaultLogLevel  = "warn"
	DefaultS3Region  = "us-east-1"
	DefaultListLimit = 20
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	BaseDir     string
	PhaseColumn string
	FluxColumn  string

	Display schema.DisplayMode
	Format  schema.ImageFormat
	Width   int
	Height  int

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	TableWidth int // Terminal width override (0 = auto-detect)
	UseColors  bool
	LogLevel   zerolog.Level

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	S3Endpoint string
	S3Region   string

	// Fold and convert settings
	Period        float64
	Epoch         *float64
	TimeColumn    string
	RawFluxColumn string
	ISOColumn     string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	BaseDir          string `mapstructure:"base-dir"`
	PhaseColumn      string `mapstructure:"phase-column"`
	FluxColumn       string `mapstructure:"flux-column"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"table-width"`
	Color            string `mapstructure:"color"`
	LogLevel         string `mapstructure:"log-level"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	S3Endpoint       string `mapstructure:"s3-endpoint"`
	S3Region         string `mapstructure:"s3-region"`

	// --- Fields from renderCmd.Flags() ---
	Display     string `mapstructure:"display"`
	Format      string `mapstructure:"format"`
	ImageWidth  int    `mapstructure:"width"`
	ImageHeight int    `mapstructure:"height"`

	// --- Fields from foldCmd.Flags() ---
	Period        float64 `mapstructure:"period"`
	Epoch         string  `mapstructure:"epoch"`
	TimeColumn    string  `mapstructure:"time-column"`
	RawFluxColumn string  `mapstructure:"raw-flux-column"`

	// --- Fields from convertCmd.Flags() ---
	ISOColumn string `mapstructure:"iso-column"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Epoch != nil {
		epoch := *c.Epoch
		clone.Epoch = &epoch
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRenderSettings(cfg, input); err != nil {
		return err
	}
	if err := processFoldSettings(cfg, input); err != nil {
		return err
	}
	if err := validateHistoryConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend, "":
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseHistoryBackend normalizes a backend name. An empty name disables history.
func ParseHistoryBackend(raw string) (schema.DatabaseBackend, error) {
	if strings.TrimSpace(raw) == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", raw)
	}
	return backend, nil
}

// validateSimpleInputs processes and validates the fields shared by all commands.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.TableWidth = input.Width
	cfg.S3Endpoint = strings.TrimSpace(input.S3Endpoint)
	cfg.S3Region = strings.TrimSpace(input.S3Region)
	if cfg.S3Region == "" {
		cfg.S3Region = DefaultS3Region
	}

	// --- 1. Base location ---
	cfg.BaseDir = strings.TrimSpace(input.BaseDir)
	if cfg.BaseDir == "" {
		cfg.BaseDir = DefaultBaseDir
	}

	// --- 2. Column names ---
	cfg.PhaseColumn = strings.TrimSpace(input.PhaseColumn)
	if cfg.PhaseColumn == "" {
		cfg.PhaseColumn = schema.DefaultPhaseColumn
	}
	cfg.FluxColumn = strings.TrimSpace(input.FluxColumn)
	if cfg.FluxColumn == "" {
		cfg.FluxColumn = schema.DefaultFluxColumn
	}
	if cfg.PhaseColumn == cfg.FluxColumn {
		return fmt.Errorf("phase-column and flux-column must differ (both are %q)", cfg.PhaseColumn)
	}

	// --- 3. Color and log level ---
	cfg.UseColors = true
	if input.Color != "" {
		colors, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		cfg.UseColors = colors
	}

	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	cfg.LogLevel = level

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processRenderSettings handles display, image format and image size.
func processRenderSettings(cfg *Config, input *ConfigRawInput) error {
	cfg.Display = schema.DisplayMode(strings.ToLower(input.Display))
	if cfg.Display == "" {
		cfg.Display = schema.WindowDisplay
	}
	if _, ok := schema.ValidDisplayModes[cfg.Display]; !ok {
		return fmt.Errorf("invalid display '%s'. must be window, viewer, none", input.Display)
	}

	cfg.Format = schema.ImageFormat(strings.ToLower(input.Format))
	if cfg.Format == "" {
		cfg.Format = schema.PNGImage
	}
	if _, ok := schema.ValidImageFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid image format '%s'. must be png, svg", input.Format)
	}
	if cfg.Display == schema.WindowDisplay && cfg.Format != schema.PNGImage {
		return fmt.Errorf("window display only supports png images (received %s)", cfg.Format)
	}

	cfg.Width = input.ImageWidth
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	cfg.Height = input.ImageHeight
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Width < MinImageSide || cfg.Width > MaxImageSide || cfg.Height < MinImageSide || cfg.Height > MaxImageSide {
		return fmt.Errorf("image size must be between %d and %d pixels per side (received %dx%d)", MinImageSide, MaxImageSide, cfg.Width, cfg.Height)
	}

	return nil
}

// processFoldSettings handles period, epoch and the raw series column names.
func processFoldSettings(cfg *Config, input *ConfigRawInput) error {
	if input.Period < 0 || math.IsNaN(input.Period) || math.IsInf(input.Period, 0) {
		return fmt.Errorf("period must be a positive number of days (received %v)", input.Period)
	}
	cfg.Period = input.Period

	cfg.Epoch = nil
	if s := strings.TrimSpace(input.Epoch); s != "" {
		epoch, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(epoch) || math.IsInf(epoch, 0) {
			return fmt.Errorf("invalid epoch '%s'. must be a Julian Date", input.Epoch)
		}
		cfg.Epoch = &epoch
	}

	cfg.TimeColumn = strings.TrimSpace(input.TimeColumn)
	if cfg.TimeColumn == "" {
		cfg.TimeColumn = schema.DefaultTimeColumn
	}
	cfg.RawFluxColumn = strings.TrimSpace(input.RawFluxColumn)
	if cfg.RawFluxColumn == "" {
		cfg.RawFluxColumn = schema.DefaultRawFlux
	}
	cfg.ISOColumn = strings.TrimSpace(input.ISOColumn)
	if cfg.ISOColumn == "" {
		cfg.ISOColumn = schema.ISOTimeColumn
	}
	return nil
}

// validateHistoryConfig validates the history backend configuration.
func validateHistoryConfig(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseHistoryBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// ProcessProfilingConfig sets up profiling configuration from the raw prefix.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		profile.Enabled = false
		profile.Prefix = ""
		return nil
	}
	if dir := filepath.Dir(prefix); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("profile directory %q is not accessible: %w", dir, err)
		}
	}
	profile.Enabled = true
	profile.Prefix = prefix
	return nil
}
