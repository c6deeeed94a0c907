// Package server wires configuration, domain services, and transports
// into a runnable HTTP server.
package server
