// Package main is the entry point for the NounsOS desktop backend.
//
// The server owns the desktop's panels (windows and mini-apps). The browser
// shell reports its viewport, drives panel operations over REST or the
// WebSocket stream, and re-renders from the events the stream pushes back.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -sessions /var/lib/nounsos/layouts
//
//	# Development mode (colored logs, debug level)
//	./server -dev -catalog 'apps/**/*.{yaml,toml}'
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
