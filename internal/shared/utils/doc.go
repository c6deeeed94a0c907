// Package utils holds request validation shared by the HTTP and websocket
// transports.
package utils
