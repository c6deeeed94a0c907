// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Components get named child loggers so entries carry the subsystem
// that produced them.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Component("window").Info("Panel created", zap.String("panel_id", id))
package logging
