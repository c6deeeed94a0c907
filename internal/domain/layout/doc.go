// Package layout computes panel geometry for the desktop shell.
//
// The Resolver is pure with respect to panel state: given an application id
// it resolves the static configuration, the anchored initial position with
// stacking offsets, unit conversion between px and rem, and size clamping.
// Viewport dimensions and the root font size are read from an Environment
// at call time, so results follow the client as it resizes.
//
// Fallbacks: 1024x768 viewport, 16px root font size.
//
// Example Usage:
//
//	viewport := layout.NewViewport(1440, 900, 16)
//	resolver := layout.NewResolver(catalog.Builtin(), viewport, layout.DefaultOptions())
//	pos := resolver.CalculatePosition("auction", 1)
package layout
