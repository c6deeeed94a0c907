// Package config provides 12-factor configuration management for the desktop backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Desktop: Fallback viewport, stacking offset, taskbar, catalog overrides
//   - Session: Layout storage directory
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - VIEWPORT_WIDTH, VIEWPORT_HEIGHT, ROOT_FONT_SIZE
//   - STACKING_OFFSET, TASKBAR_HEIGHT, CATALOG_GLOB
//   - SESSION_DIR
package config
