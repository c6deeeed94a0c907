// Package ws streams panel manager events to desktop clients over WebSocket
// and accepts commands from them.
//
// On connect the server sends a system welcome and the current state. Every
// manager notification is then forwarded as it happens.
//
// Message Types (Client → Server):
//   - command: Run a panel or layout operation ("op" names it)
//   - viewport: Report viewport size and root font size
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Welcome with the client id
//   - state: Full panel snapshot
//   - state-changed, created, focused, blurred, minimized, maximized,
//     restored, focus-cleared, closed, pinned, unpinned: Panel events
//   - ack: Command accepted, with the resulting id where there is one
//   - error: Command rejected
//   - pong: Keep-alive reply
//
// Example Usage:
//
//	handler := ws.NewHandler(windows, layouts, viewport)
//	router.GET("/stream", handler.HandleConnection)
package ws
