package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	viper.Reset()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: \"9090\"\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "file", cfg.State.Store)
	assert.Equal(t, 180, cfg.Lockout.DefaultSeconds)
	assert.Equal(t, 600, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 1, cfg.RateLimit.WindowMinutes)
}

func TestLoadConfigRejectsUnknownStore(t *testing.T) {
	dir := writeConfig(t, "state:\n  store: redis\n")

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigClampsExplicitZeroRateLimit(t *testing.T) {
	// An explicit zero differs from an absent key: viper defaults do not
	// apply, so the clamp has to catch it before the limiter divides.
	dir := writeConfig(t, "rate_limit:\n  max_requests: 0\n  window_minutes: 0\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 1, cfg.RateLimit.WindowMinutes)
}

func TestLoadConfigClampsNegativeLockout(t *testing.T) {
	dir := writeConfig(t, "lockout:\n  default_seconds: -5\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 180, cfg.Lockout.DefaultSeconds)
}
