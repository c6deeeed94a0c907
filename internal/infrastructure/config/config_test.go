package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	// Desktop config
	assert.Equal(t, 1024, cfg.Desktop.ViewportWidth)
	assert.Equal(t, 768, cfg.Desktop.ViewportHeight)
	assert.Equal(t, 16.0, cfg.Desktop.RootFontSize)
	assert.Equal(t, 30, cfg.Desktop.StackingOffset)
	assert.Equal(t, 48, cfg.Desktop.TaskbarHeight)
	assert.Empty(t, cfg.Desktop.CatalogGlob)

	assert.Empty(t, cfg.Session.Dir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_RPS":     "500",
		"RATE_LIMIT_BURST":   "1000",
		"RATE_LIMIT_ENABLED": "false",
		"VIEWPORT_WIDTH":     "1920",
		"VIEWPORT_HEIGHT":    "1080",
		"ROOT_FONT_SIZE":     "18",
		"STACKING_OFFSET":    "24",
		"TASKBAR_HEIGHT":     "40",
		"CATALOG_GLOB":       "apps/**/*.yaml",
		"SESSION_DIR":        "/var/lib/nounsos/layouts",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)

	assert.Equal(t, 1920, cfg.Desktop.ViewportWidth)
	assert.Equal(t, 1080, cfg.Desktop.ViewportHeight)
	assert.Equal(t, 18.0, cfg.Desktop.RootFontSize)
	assert.Equal(t, 24, cfg.Desktop.StackingOffset)
	assert.Equal(t, 40, cfg.Desktop.TaskbarHeight)
	assert.Equal(t, "apps/**/*.yaml", cfg.Desktop.CatalogGlob)

	assert.Equal(t, "/var/lib/nounsos/layouts", cfg.Session.Dir)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 1024, cfg.Desktop.ViewportWidth)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "not a number", key: "VIEWPORT_WIDTH", value: "wide"},
		{name: "zero width", key: "VIEWPORT_WIDTH", value: "0"},
		{name: "negative height", key: "VIEWPORT_HEIGHT", value: "-1"},
		{name: "zero font", key: "ROOT_FONT_SIZE", value: "0"},
		{name: "negative offset", key: "STACKING_OFFSET", value: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)

			// LoadOrDefault falls back instead of failing.
			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
}

func TestRateLimitConfig(t *testing.T) {
	tests := []struct {
		name        string
		rps         string
		burst       string
		enabled     string
		wantRPS     int
		wantBurst   int
		wantEnabled bool
	}{
		{
			name:        "default values",
			wantRPS:     100,
			wantBurst:   200,
			wantEnabled: true,
		},
		{
			name:        "high limits",
			rps:         "1000",
			burst:       "2000",
			wantRPS:     1000,
			wantBurst:   2000,
			wantEnabled: true,
		},
		{
			name:        "disabled",
			enabled:     "false",
			wantRPS:     100,
			wantBurst:   200,
			wantEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.rps != "" {
				t.Setenv("RATE_LIMIT_RPS", tt.rps)
			}
			if tt.burst != "" {
				t.Setenv("RATE_LIMIT_BURST", tt.burst)
			}
			if tt.enabled != "" {
				t.Setenv("RATE_LIMIT_ENABLED", tt.enabled)
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantRPS, cfg.RateLimit.RequestsPerSecond)
			assert.Equal(t, tt.wantBurst, cfg.RateLimit.Burst)
			assert.Equal(t, tt.wantEnabled, cfg.RateLimit.Enabled)
		})
	}
}
