package layout

import "sync"

// Fallbacks used when the environment cannot report its metrics
const (
	DefaultViewportWidth  = 1024
	DefaultViewportHeight = 768
	DefaultRootFontSize   = 16.0
)

// Environment reports the live display metrics of the client.
// Implementations return ok=false when a value is unavailable.
type Environment interface {
	ViewportSize() (width, height int, ok bool)
	RootFontSize() (px float64, ok bool)
}

// Viewport is an Environment updated by the connected client
type Viewport struct {
	mu           sync.RWMutex
	width        int
	height       int
	rootFontSize float64
}

// NewViewport creates a viewport with initial metrics. Zero values mean unknown.
func NewViewport(width, height int, rootFontSize float64) *Viewport {
	return &Viewport{
		width:        width,
		height:       height,
		rootFontSize: rootFontSize,
	}
}

// ViewportSize returns the current viewport dimensions
func (v *Viewport) ViewportSize() (int, int, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.width <= 0 || v.height <= 0 {
		return 0, 0, false
	}
	return v.width, v.height, true
}

// RootFontSize returns the current root font size in pixels
func (v *Viewport) RootFontSize() (float64, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.rootFontSize <= 0 {
		return 0, false
	}
	return v.rootFontSize, true
}

// Apply records metrics reported by a client. A zero font size keeps the
// current one.
func (v *Viewport) Apply(width, height int, rootFontSize float64) {
	v.mu.Lock()
	v.width = width
	v.height = height
	if rootFontSize > 0 {
		v.rootFontSize = rootFontSize
	}
	v.mu.Unlock()
}

// Metrics is a point-in-time view of the environment with fallbacks applied
type Metrics struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	RootFontSize float64 `json:"root_font_size"`
}

// Read resolves env into concrete metrics, substituting defaults for missing values
func Read(env Environment) Metrics {
	m := Metrics{
		Width:        DefaultViewportWidth,
		Height:       DefaultViewportHeight,
		RootFontSize: DefaultRootFontSize,
	}
	if env == nil {
		return m
	}
	if w, h, ok := env.ViewportSize(); ok {
		m.Width, m.Height = w, h
	}
	if px, ok := env.RootFontSize(); ok {
		m.RootFontSize = px
	}
	return m
}
