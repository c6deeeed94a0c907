// Package session saves and restores named desktop layouts.
//
// A layout records every open panel: its application, kind, geometry,
// minimize/maximize flags, pin state, and which panel held focus.
// Restoring a layout closes all open panels and recreates the saved ones
// through the window manager's public operations, so every invariant the
// manager enforces still holds afterwards.
//
// Layouts are cached in memory. When a Store is configured they are also
// written to disk as zstd-compressed JSON, one file per layout, and read
// back at startup.
//
// Example Usage:
//
//	store, err := session.NewDiskStore(dir, logger)
//	layouts := session.NewManager(windows, store)
//	layout, err := layouts.Save(ctx, "trading")
//	err = layouts.Restore(ctx, layout.ID)
package session
