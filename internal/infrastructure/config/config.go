package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Desktop   DesktopConfig
	Session   SessionConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DesktopConfig holds panel placement configuration.
// The viewport values are fallbacks until a client reports its own.
type DesktopConfig struct {
	ViewportWidth  int     `envconfig:"VIEWPORT_WIDTH" default:"1024"`
	ViewportHeight int     `envconfig:"VIEWPORT_HEIGHT" default:"768"`
	RootFontSize   float64 `envconfig:"ROOT_FONT_SIZE" default:"16"`
	StackingOffset int     `envconfig:"STACKING_OFFSET" default:"30"`
	TaskbarHeight  int     `envconfig:"TASKBAR_HEIGHT" default:"48"`
	CatalogGlob    string  `envconfig:"CATALOG_GLOB"`
}

// SessionConfig holds layout persistence configuration.
// An empty Dir keeps layouts in memory only.
type SessionConfig struct {
	Dir string `envconfig:"SESSION_DIR"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the desktop cannot work with.
func (c *Config) Validate() error {
	if c.Desktop.ViewportWidth <= 0 || c.Desktop.ViewportHeight <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", c.Desktop.ViewportWidth, c.Desktop.ViewportHeight)
	}
	if c.Desktop.RootFontSize <= 0 {
		return fmt.Errorf("invalid root font size %v", c.Desktop.RootFontSize)
	}
	if c.Desktop.StackingOffset < 0 || c.Desktop.TaskbarHeight < 0 {
		return fmt.Errorf("stacking offset and taskbar height must not be negative")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Desktop: DesktopConfig{
			ViewportWidth:  1024,
			ViewportHeight: 768,
			RootFontSize:   16,
			StackingOffset: 30,
			TaskbarHeight:  48,
		},
	}
}
