package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "BASE_URL", "STORE_URL", "DB_PATH", "AUTHORIZATION_TOKEN",
		"AUTHOURIZATION_TOKEN", "STATS_AUTHORIZATION_TOKEN", "RATE_LIMIT",
		"GO_ENV", "LOG_LEVEL", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFile(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "sqlite://./data/urlshorty.db", cfg.StoreURL)
	assert.Empty(t, cfg.AuthToken)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("BASE_URL", "https://url.example.com///")
	t.Setenv("STORE_URL", "redis://localhost:6379/2")
	t.Setenv("AUTHORIZATION_TOKEN", " s3cret ")
	t.Setenv("STATS_AUTHORIZATION_TOKEN", "reader")
	t.Setenv("RATE_LIMIT", "5:20")
	t.Setenv("GO_ENV", "Production")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := LoadFile(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://url.example.com", cfg.BaseURL)
	assert.Equal(t, "redis://localhost:6379/2", cfg.StoreURL)
	assert.Equal(t, "s3cret", cfg.AuthToken)
	assert.Equal(t, "reader", cfg.StatsToken)
	assert.Equal(t, 5, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_LegacyNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTHOURIZATION_TOKEN", "legacy")
	t.Setenv("DB_PATH", "/tmp/links.db")

	cfg, err := LoadFile(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.AuthToken)
	assert.Equal(t, "/tmp/links.db", cfg.StoreURL)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AUTHORIZATION_TOKEN=fromfile\nPORT=7070\n"), 0o600))
	t.Setenv("PORT", "6060")

	cfg, err := LoadFile(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.AuthToken)
	assert.Equal(t, 6060, cfg.Port, "real env beats .env")
}

func TestLoad_LegacyNamesInDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AUTHOURIZATION_TOKEN=legacy\nDB_PATH=/tmp/links.db\n"), 0o600))

	cfg, err := LoadFile(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.AuthToken)
	assert.Equal(t, "/tmp/links.db", cfg.StoreURL)
}

func TestLoad_DotEnvLegacyLosesToCanonical(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	body := "AUTHOURIZATION_TOKEN=legacy\nAUTHORIZATION_TOKEN=current\nDB_PATH=/tmp/links.db\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("STORE_URL", "redis://localhost:6379/0")

	cfg, err := LoadFile(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "current", cfg.AuthToken)
	assert.Equal(t, "redis://localhost:6379/0", cfg.StoreURL, "real env beats .env legacy name")
}

func TestLoad_RateLimitDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT", "0")
	cfg, err := LoadFile(viper.New(), "")
	require.NoError(t, err)
	assert.Zero(t, cfg.RateLimitRPS)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT", "fast")
	_, err := LoadFile(viper.New(), "")
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("PORT", "70000")
	_, err = LoadFile(viper.New(), "")
	assert.Error(t, err)
}

func TestParseRateLimit(t *testing.T) {
	tests := []struct {
		in         string
		rps, burst int
	}{
		{"10", 10, 10},
		{"10rps", 10, 10},
		{"10:20", 10, 20},
		{" 3 rps : 7 ", 3, 7},
		{"nope", 0, 0},
	}
	for _, tt := range tests {
		rps, burst := parseRateLimit(tt.in)
		assert.Equal(t, tt.rps, rps, tt.in)
		assert.Equal(t, tt.burst, burst, tt.in)
	}
}
