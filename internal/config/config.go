// =============================================================================
// ublkit - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration from a YAML
// file (ublkit.yaml by default). Loading follows defaults -> overrides ->
// validation: every section struct gets its defaults applied before
// validation runs, so an empty file is a valid configuration.
//
// Any invalid value is a *types.ConfigError naming the offending key and is
// fatal before processing starts.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sherozshaikh/ublkit/internal/types"
)

// Recognized option values.
var (
	// ValidEncodings are the encodings accepted for processing.encoding.
	ValidEncodings = []string{"utf-8", "utf-16", "iso-8859-1", "ascii", "cp1252"}

	// ValidPreservationMethods are the accepted csv.preservation_method
	// values. "none" is the explicit pass-through default.
	ValidPreservationMethods = []string{"none", "apostrophe", "quotes", "brackets"}

	// ValidLogLevels are the accepted logging.level values.
	ValidLogLevels = []string{"debug", "info", "warn", "error"}
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Processing ProcessingConfig `yaml:"processing"`
	CSV        CSVConfig        `yaml:"csv"`
	JSON       JSONConfig       `yaml:"json"`
	Output     OutputConfig     `yaml:"output"`
	Features   FeaturesConfig   `yaml:"features"`
}

// LoggingConfig controls the log sink. Rotation, retention and compression
// are delegated to the logging collaborator (lumberjack); they are parsed
// here only far enough to validate them.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `yaml:"level"`

	// File is the log file name. Relative paths are resolved under
	// output.logs_dir.
	File string `yaml:"file"`

	// Rotation is the size that triggers a rollover, e.g. "500 MB" or "1 GB".
	Rotation string `yaml:"rotation"`

	// Retention is how long rotated files are kept, e.g. "10 days".
	Retention string `yaml:"retention"`

	// Compression is applied to rotated files: zip, gzip or none.
	// (zip is accepted for compatibility and handled as gzip.)
	Compression string `yaml:"compression"`
}

// ProcessingConfig controls input handling and batch parallelism.
type ProcessingConfig struct {
	// MaxWorkers is the batch worker pool size.
	MaxWorkers int `yaml:"max_workers"`

	// Encoding is the text encoding tried first when reading XML files.
	Encoding string `yaml:"encoding"`
}

// CSVConfig controls the CSV record writer.
type CSVConfig struct {
	// MaxRecordsPerFile is the row threshold that triggers file splitting.
	MaxRecordsPerFile int `yaml:"max_records_per_file"`

	// PreservationMethod guards values against spreadsheet corruption:
	// none, apostrophe, quotes or brackets.
	PreservationMethod string `yaml:"preservation_method"`

	// KeySeparator joins flattened key-path segments, default " | ".
	KeySeparator string `yaml:"key_separator"`
}

// JSONConfig controls the JSON record writer.
type JSONConfig struct {
	// Indent is the number of spaces per nesting level.
	Indent int `yaml:"indent"`

	// Flatten emits a single-level object keyed by joined key paths instead
	// of the nested mapping.
	Flatten bool `yaml:"flatten"`

	// Separator joins key-path segments when Flatten is enabled.
	Separator string `yaml:"separator"`
}

// OutputConfig holds the auxiliary output directories.
type OutputConfig struct {
	// SummaryDir receives the batch JSON summary files.
	SummaryDir string `yaml:"summary_dir"`

	// LogsDir receives the log files.
	LogsDir string `yaml:"logs_dir"`
}

// FeaturesConfig holds feature flags.
type FeaturesConfig struct {
	// EnableDryRun gates batch dry-run mode. The --dry-run flag is rejected
	// while this is false.
	EnableDryRun bool `yaml:"enable_dry_run"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.ConfigError{Err: fmt.Errorf("failed to read config file %s: %w", path, err)}
	}
	return Parse(data)
}

// Parse decodes a YAML configuration document, applies defaults and
// validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &types.ConfigError{Err: fmt.Errorf("failed to parse config file: %w", err)}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with every default applied, equivalent
// to loading an empty file. Useful for the library API and for tests.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// applyDefaults sets defaults for every unset option.
func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.File == "" {
		c.Logging.File = "ublkit.log"
	}
	if c.Logging.Rotation == "" {
		c.Logging.Rotation = "500 MB"
	}
	if c.Logging.Retention == "" {
		c.Logging.Retention = "10 days"
	}
	if c.Logging.Compression == "" {
		c.Logging.Compression = "zip"
	}

	if c.Processing.MaxWorkers == 0 {
		c.Processing.MaxWorkers = 4
	}
	if c.Processing.Encoding == "" {
		c.Processing.Encoding = "utf-8"
	}

	if c.CSV.MaxRecordsPerFile == 0 {
		c.CSV.MaxRecordsPerFile = 50000
	}
	if c.CSV.PreservationMethod == "" {
		// Pass-through is the explicit default; values are written as-is
		// unless a method is configured.
		c.CSV.PreservationMethod = "none"
	}
	if c.CSV.KeySeparator == "" {
		c.CSV.KeySeparator = " | "
	}

	if c.JSON.Indent == 0 {
		c.JSON.Indent = 2
	}
	if c.JSON.Separator == "" {
		c.JSON.Separator = "/"
	}

	if c.Output.SummaryDir == "" {
		c.Output.SummaryDir = "./summaries"
	}
	if c.Output.LogsDir == "" {
		c.Output.LogsDir = "./logs"
	}
}

// validate rejects unrecognized or out-of-range option values.
func (c *Config) validate() error {
	if !contains(ValidLogLevels, strings.ToLower(c.Logging.Level)) {
		return &types.ConfigError{
			Key: "logging.level",
			Err: fmt.Errorf("must be one of: %s", strings.Join(ValidLogLevels, ", ")),
		}
	}
	switch strings.ToLower(c.Logging.Compression) {
	case "zip", "gzip", "none":
	default:
		return &types.ConfigError{
			Key: "logging.compression",
			Err: fmt.Errorf("must be one of: zip, gzip, none"),
		}
	}

	if c.Processing.MaxWorkers < 1 {
		return &types.ConfigError{
			Key: "processing.max_workers",
			Err: fmt.Errorf("must be >= 1"),
		}
	}
	if !contains(ValidEncodings, strings.ToLower(c.Processing.Encoding)) {
		return &types.ConfigError{
			Key: "processing.encoding",
			Err: fmt.Errorf("must be one of: %s", strings.Join(ValidEncodings, ", ")),
		}
	}

	if c.CSV.MaxRecordsPerFile < 1 {
		return &types.ConfigError{
			Key: "csv.max_records_per_file",
			Err: fmt.Errorf("must be >= 1"),
		}
	}
	if !contains(ValidPreservationMethods, c.CSV.PreservationMethod) {
		return &types.ConfigError{
			Key: "csv.preservation_method",
			Err: fmt.Errorf("unrecognized method %q, must be one of: %s",
				c.CSV.PreservationMethod, strings.Join(ValidPreservationMethods, ", ")),
		}
	}

	if c.JSON.Indent < 0 {
		return &types.ConfigError{
			Key: "json.indent",
			Err: fmt.Errorf("must be >= 0"),
		}
	}

	return nil
}

// EncodingPriority returns the encodings to try when reading an XML file:
// the configured encoding first, then the built-in defaults. The reader
// skips duplicates.
func (c *Config) EncodingPriority() []string {
	return append(
		[]string{strings.ToLower(c.Processing.Encoding)},
		"utf-8", "utf-16", "iso-8859-1", "cp1252",
	)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
