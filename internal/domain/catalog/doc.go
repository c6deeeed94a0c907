// Package catalog holds the static application table of the desktop.
//
// Each entry describes how a window or mini-app opens: title, icon, default
// and bounding sizes, anchor, margins and capabilities. The built-in table
// covers the stock apps (auction, probe, proposals, wallet ...). Deployments
// can override or extend it with YAML or TOML files selected by a doublestar
// glob:
//
//	apps:
//	  - id: auction
//	    title: Noun Auction
//	    default_size: {width: {value: 48, unit: rem}, height: {value: 36, unit: rem}}
//	    anchor: center
//	    can_resize: true
package catalog
