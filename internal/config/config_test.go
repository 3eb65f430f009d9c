package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherozshaikh/ublkit/internal/types"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "ublkit.log", cfg.Logging.File)
	assert.Equal(t, "500 MB", cfg.Logging.Rotation)
	assert.Equal(t, "10 days", cfg.Logging.Retention)
	assert.Equal(t, "zip", cfg.Logging.Compression)

	assert.Equal(t, 4, cfg.Processing.MaxWorkers)
	assert.Equal(t, "utf-8", cfg.Processing.Encoding)

	assert.Equal(t, 50000, cfg.CSV.MaxRecordsPerFile)
	assert.Equal(t, "none", cfg.CSV.PreservationMethod)
	assert.Equal(t, " | ", cfg.CSV.KeySeparator)

	assert.Equal(t, 2, cfg.JSON.Indent)
	assert.False(t, cfg.JSON.Flatten)
	assert.Equal(t, "/", cfg.JSON.Separator)

	assert.Equal(t, "./summaries", cfg.Output.SummaryDir)
	assert.Equal(t, "./logs", cfg.Output.LogsDir)

	assert.False(t, cfg.Features.EnableDryRun)
}

func TestParseEmptyDocumentEqualsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
processing:
  max_workers: 8
  encoding: iso-8859-1
csv:
  max_records_per_file: 100
  preservation_method: quotes
json:
  flatten: true
  separator: "."
features:
  enable_dry_run: true
`))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Processing.MaxWorkers)
	assert.Equal(t, "iso-8859-1", cfg.Processing.Encoding)
	assert.Equal(t, 100, cfg.CSV.MaxRecordsPerFile)
	assert.Equal(t, "quotes", cfg.CSV.PreservationMethod)
	assert.True(t, cfg.JSON.Flatten)
	assert.Equal(t, ".", cfg.JSON.Separator)
	assert.True(t, cfg.Features.EnableDryRun)

	// Unset sections still get their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, " | ", cfg.CSV.KeySeparator)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		key  string
	}{
		{"log level", "logging:\n  level: loud\n", "logging.level"},
		{"compression", "logging:\n  compression: lzma\n", "logging.compression"},
		{"workers", "processing:\n  max_workers: -2\n", "processing.max_workers"},
		{"encoding", "processing:\n  encoding: ebcdic\n", "processing.encoding"},
		{"max records", "csv:\n  max_records_per_file: -5\n", "csv.max_records_per_file"},
		{"preservation", "csv:\n  preservation_method: backticks\n", "csv.preservation_method"},
		{"indent", "json:\n  indent: -1\n", "json.indent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)

			var ce *types.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.key, ce.Key)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("processing: [not a mapping"))
	require.Error(t, err)

	var ce *types.ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/ublkit.yaml")
	require.Error(t, err)

	var ce *types.ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestEncodingPriority(t *testing.T) {
	cfg := Default()
	cfg.Processing.Encoding = "ISO-8859-1"

	priority := cfg.EncodingPriority()
	assert.Equal(t, "iso-8859-1", priority[0])
	assert.Contains(t, priority, "utf-8")
	assert.Contains(t, priority, "utf-16")
	assert.Contains(t, priority, "cp1252")
}
