package logging

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherozshaikh/ublkit/internal/config"
	"github.com/sherozshaikh/ublkit/internal/types"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.LogsDir = filepath.Join(t.TempDir(), "logs")
	return cfg
}

func TestSetupCreatesLogFileUnderLogsDir(t *testing.T) {
	cfg := testConfig(t)

	logger, err := Setup(cfg, false)
	require.NoError(t, err)
	logger.Info("hello", "k", "v")

	data, err := os.ReadFile(filepath.Join(cfg.Output.LogsDir, "ublkit.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "k=v")
}

func TestSetupVerboseForcesDebug(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.Level = "error"

	logger, err := Setup(cfg, true)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestSetupHonorsConfiguredLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.Level = "warn"

	logger, err := Setup(cfg, false)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestSetupRejectsBadSettings(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		key    string
	}{
		{"level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"rotation unit", func(c *config.Config) { c.Logging.Rotation = "500 TB" }, "logging.rotation"},
		{"rotation shape", func(c *config.Config) { c.Logging.Rotation = "big" }, "logging.rotation"},
		{"retention", func(c *config.Config) { c.Logging.Retention = "2 weeks" }, "logging.retention"},
		{"retention count", func(c *config.Config) { c.Logging.Retention = "0 days" }, "logging.retention"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t)
			tc.mutate(cfg)

			_, err := Setup(cfg, false)
			require.Error(t, err)

			var ce *types.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.key, ce.Key)
		})
	}
}

func TestParseRotationUnits(t *testing.T) {
	mb, err := parseRotation("500 MB")
	require.NoError(t, err)
	assert.Equal(t, 500, mb)

	gb, err := parseRotation("2 GB")
	require.NoError(t, err)
	assert.Equal(t, 2048, gb)
}
