// Package types provides shared data structures for the desktop backend.
//
// Core Types:
//   - Panel: Window or mini-app record, discriminated by Kind
//   - State: Immutable snapshot of every tracked panel
//   - AppConfig: Static per-application configuration
//   - Event: Panel manager notification
//   - Layout: Named arrangement snapshot
//
// Geometry:
//   - Dimension: Length tagged with px or rem
//   - Size, Position, Margins, Anchor
//
// Example Usage:
//
//	panel := types.Panel{
//	    ID:            "win_01HX...",
//	    Kind:          types.KindWindow,
//	    ApplicationID: "auction",
//	    Size:          types.Size{Width: types.Rem(40), Height: types.Rem(30)},
//	}
package types
