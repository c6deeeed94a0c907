package layout

import (
	"math"

	"github.com/nounsos/desktop/backend/internal/shared/types"
)

// Defaults for Options
const (
	DefaultStackingOffset = 30
	DefaultTaskbarHeight  = 48
)

// Catalog supplies static app configuration
type Catalog interface {
	Lookup(appID string) (types.AppConfig, bool)
}

// Options tunes position calculation
type Options struct {
	StackingOffset int // Pixel delta per extra instance of the same app
	TaskbarHeight  int // Pixels reserved at the bottom of the viewport
}

// DefaultOptions returns the standard desktop geometry options
func DefaultOptions() Options {
	return Options{
		StackingOffset: DefaultStackingOffset,
		TaskbarHeight:  DefaultTaskbarHeight,
	}
}

// Resolver computes panel geometry from the app catalog and live viewport.
// It holds no panel state; every call reads the environment afresh.
type Resolver struct {
	catalog Catalog
	env     Environment
	opts    Options
}

// NewResolver creates a geometry resolver
func NewResolver(catalog Catalog, env Environment, opts Options) *Resolver {
	if opts.StackingOffset < 0 {
		opts.StackingOffset = 0
	}
	if opts.TaskbarHeight < 0 {
		opts.TaskbarHeight = 0
	}
	return &Resolver{
		catalog: catalog,
		env:     env,
		opts:    opts,
	}
}

// DefaultConfig is the configuration used for app ids missing from the catalog:
// a resizable, centered 40rem x 30rem window titled "Application".
func DefaultConfig(appID string) types.AppConfig {
	return types.AppConfig{
		ID:          appID,
		Title:       "Application",
		Icon:        "app",
		Kind:        types.KindWindow,
		DefaultSize: types.Size{Width: types.Rem(40), Height: types.Rem(30)},
		MinSize:     types.Size{Width: types.Rem(20), Height: types.Rem(15)},
		Anchor:      types.AnchorCenter,
		Margins:     types.Margins{Top: 16, Right: 16, Bottom: 16, Left: 16},
		CanResize:   true,
	}
}

// Options returns the resolver's geometry options
func (r *Resolver) Options() Options {
	return r.opts
}

// Metrics reads the environment now
func (r *Resolver) Metrics() Metrics {
	return Read(r.env)
}

// ResolveConfig returns the configuration for appID, or DefaultConfig when unknown
func (r *Resolver) ResolveConfig(appID string) types.AppConfig {
	if r.catalog != nil {
		if cfg, ok := r.catalog.Lookup(appID); ok {
			return cfg
		}
	}
	return DefaultConfig(appID)
}

// CalculatePosition places the app's default-sized panel at its anchor,
// shifted by stackIndex stacking offsets and clamped inside the usable
// viewport (viewport minus margins and taskbar).
func (r *Resolver) CalculatePosition(appID string, stackIndex int) types.Position {
	cfg := r.ResolveConfig(appID)
	m := r.Metrics()

	w := int(math.Round(r.toPixels(cfg.DefaultSize.Width, m.RootFontSize)))
	h := int(math.Round(r.toPixels(cfg.DefaultSize.Height, m.RootFontSize)))
	mg := cfg.Margins
	usableH := m.Height - r.opts.TaskbarHeight

	var x, y int
	switch cfg.Anchor {
	case types.AnchorTopLeft:
		x, y = mg.Left, mg.Top
	case types.AnchorTopRight:
		x, y = m.Width-w-mg.Right, mg.Top
	case types.AnchorBottomLeft:
		x, y = mg.Left, usableH-h-mg.Bottom
	case types.AnchorBottomRight:
		x, y = m.Width-w-mg.Right, usableH-h-mg.Bottom
	case types.AnchorExplicit:
		x, y = cfg.Explicit.X, cfg.Explicit.Y
	default:
		x, y = (m.Width-w)/2, (usableH-h)/2
	}

	if stackIndex > 0 {
		offset := stackIndex * r.opts.StackingOffset
		x += offset
		y += offset
	}

	return types.Position{
		X: clamp(x, mg.Left, m.Width-mg.Right-w),
		Y: clamp(y, mg.Top, usableH-mg.Bottom-h),
	}
}

// ConvertToPixels converts d to pixels using the live root font size
func (r *Resolver) ConvertToPixels(d types.Dimension) float64 {
	return r.toPixels(d, r.Metrics().RootFontSize)
}

// FromPixels expresses px in unit using the live root font size
func (r *Resolver) FromPixels(px float64, unit types.Unit) types.Dimension {
	return fromPixels(px, unit, r.Metrics().RootFontSize)
}

// ConstrainSize clamps each axis of requested to [min, max] in pixel space.
// The result keeps the requested units; a nil max leaves the axis unbounded.
func (r *Resolver) ConstrainSize(requested, min types.Size, max *types.Size) types.Size {
	root := r.Metrics().RootFontSize

	var maxW, maxH *types.Dimension
	if max != nil {
		maxW, maxH = &max.Width, &max.Height
	}

	return types.Size{
		Width:  r.constrainAxis(requested.Width, min.Width, maxW, root),
		Height: r.constrainAxis(requested.Height, min.Height, maxH, root),
	}
}

func (r *Resolver) constrainAxis(req, min types.Dimension, max *types.Dimension, root float64) types.Dimension {
	px := r.toPixels(req, root)
	if lo := r.toPixels(min, root); px < lo {
		px = lo
	}
	if max != nil {
		// A zero max means no bound on that axis.
		if hi := r.toPixels(*max, root); hi > 0 && px > hi {
			px = hi
		}
	}
	return fromPixels(px, req.Unit, root)
}

func (r *Resolver) toPixels(d types.Dimension, root float64) float64 {
	if d.IsRem() {
		return d.Value * root
	}
	return d.Value
}

func fromPixels(px float64, unit types.Unit, root float64) types.Dimension {
	if unit == types.UnitRem {
		return types.Rem(px / root)
	}
	return types.Px(px)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
