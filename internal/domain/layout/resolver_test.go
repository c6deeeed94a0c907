package layout

import (
	"testing"

	"github.com/nounsos/desktop/backend/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCatalog map[string]types.AppConfig

func (c mapCatalog) Lookup(appID string) (types.AppConfig, bool) {
	cfg, ok := c[appID]
	return cfg, ok
}

func testCatalog() mapCatalog {
	margins := types.Margins{Top: 10, Right: 10, Bottom: 10, Left: 10}
	size := types.Size{Width: types.Px(400), Height: types.Px(300)}
	return mapCatalog{
		"center":       {ID: "center", DefaultSize: size, Anchor: types.AnchorCenter, Margins: margins},
		"top-left":     {ID: "top-left", DefaultSize: size, Anchor: types.AnchorTopLeft, Margins: margins},
		"top-right":    {ID: "top-right", DefaultSize: size, Anchor: types.AnchorTopRight, Margins: margins},
		"bottom-left":  {ID: "bottom-left", DefaultSize: size, Anchor: types.AnchorBottomLeft, Margins: margins},
		"bottom-right": {ID: "bottom-right", DefaultSize: size, Anchor: types.AnchorBottomRight, Margins: margins},
		"explicit": {ID: "explicit", DefaultSize: size, Anchor: types.AnchorExplicit,
			Explicit: types.Position{X: 5000, Y: -20}, Margins: margins},
		"rem": {ID: "rem", DefaultSize: types.Size{Width: types.Rem(25), Height: types.Rem(20)},
			Anchor: types.AnchorTopLeft},
	}
}

func newTestResolver(env Environment) *Resolver {
	return NewResolver(testCatalog(), env, Options{StackingOffset: 30, TaskbarHeight: 40})
}

func TestReadFallbacks(t *testing.T) {
	m := Read(nil)
	assert.Equal(t, Metrics{Width: 1024, Height: 768, RootFontSize: 16}, m)

	m = Read(NewViewport(0, 0, 0))
	assert.Equal(t, Metrics{Width: 1024, Height: 768, RootFontSize: 16}, m)

	m = Read(NewViewport(1920, 1080, 20))
	assert.Equal(t, Metrics{Width: 1920, Height: 1080, RootFontSize: 20}, m)
}

func TestViewportUpdates(t *testing.T) {
	vp := NewViewport(800, 600, 16)
	vp.Apply(1280, 720, 18)

	w, h, ok := vp.ViewportSize()
	require.True(t, ok)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	px, ok := vp.RootFontSize()
	require.True(t, ok)
	assert.Equal(t, 18.0, px)
}

func TestViewportApply(t *testing.T) {
	vp := NewViewport(800, 600, 16)

	vp.Apply(1280, 720, 0)
	assert.Equal(t, Metrics{Width: 1280, Height: 720, RootFontSize: 16}, Read(vp))

	vp.Apply(1440, 900, 20)
	assert.Equal(t, Metrics{Width: 1440, Height: 900, RootFontSize: 20}, Read(vp))
}

func TestResolveConfig(t *testing.T) {
	r := newTestResolver(nil)

	cfg := r.ResolveConfig("center")
	assert.Equal(t, types.AnchorCenter, cfg.Anchor)

	unknown := r.ResolveConfig("does-not-exist")
	assert.Equal(t, "does-not-exist", unknown.ID)
	assert.Equal(t, "Application", unknown.Title)
	assert.True(t, unknown.CanResize)
	assert.Equal(t, types.AnchorCenter, unknown.Anchor)

	noCatalog := NewResolver(nil, nil, DefaultOptions())
	assert.Equal(t, DefaultConfig("x"), noCatalog.ResolveConfig("x"))
}

func TestCalculatePositionAnchors(t *testing.T) {
	r := newTestResolver(NewViewport(1000, 800, 16))
	// usable height = 800 - 40 = 760
	tests := []struct {
		appID string
		want  types.Position
	}{
		{"center", types.Position{X: 300, Y: 230}},
		{"top-left", types.Position{X: 10, Y: 10}},
		{"top-right", types.Position{X: 590, Y: 10}},
		{"bottom-left", types.Position{X: 10, Y: 450}},
		{"bottom-right", types.Position{X: 590, Y: 450}},
		{"explicit", types.Position{X: 590, Y: 10}}, // clamped into bounds
	}

	for _, tt := range tests {
		t.Run(tt.appID, func(t *testing.T) {
			assert.Equal(t, tt.want, r.CalculatePosition(tt.appID, 0))
		})
	}
}

func TestCalculatePositionStacking(t *testing.T) {
	r := newTestResolver(NewViewport(1000, 800, 16))

	first := r.CalculatePosition("center", 0)
	second := r.CalculatePosition("center", 1)
	third := r.CalculatePosition("center", 2)

	assert.Equal(t, first.X+30, second.X)
	assert.Equal(t, first.Y+30, second.Y)
	assert.Equal(t, first.X+60, third.X)
	assert.Equal(t, first.Y+60, third.Y)

	// Negative stack indexes are treated as zero.
	assert.Equal(t, first, r.CalculatePosition("center", -3))
}

func TestCalculatePositionStackingClamps(t *testing.T) {
	r := newTestResolver(NewViewport(1000, 800, 16))

	far := r.CalculatePosition("bottom-right", 5)
	assert.Equal(t, types.Position{X: 590, Y: 450}, far)
}

func TestCalculatePositionRemSizes(t *testing.T) {
	vp := NewViewport(1000, 800, 16)
	r := newTestResolver(vp)

	// 25rem x 20rem = 400x320 at 16px; top-left with zero margins.
	assert.Equal(t, types.Position{X: 0, Y: 0}, r.CalculatePosition("rem", 0))

	// Panel larger than the viewport pins to the top-left margin.
	vp.Apply(300, 200, 0)
	assert.Equal(t, types.Position{X: 0, Y: 0}, r.CalculatePosition("rem", 3))
}

func TestCalculatePositionFollowsViewport(t *testing.T) {
	vp := NewViewport(1000, 800, 16)
	r := newTestResolver(vp)

	before := r.CalculatePosition("center", 0)
	vp.Apply(1600, 1000, 0)
	after := r.CalculatePosition("center", 0)

	assert.NotEqual(t, before, after)
	assert.Equal(t, types.Position{X: 600, Y: 330}, after)
}

func TestConvertToPixels(t *testing.T) {
	vp := NewViewport(1000, 800, 16)
	r := newTestResolver(vp)

	assert.Equal(t, 120.0, r.ConvertToPixels(types.Px(120)))
	assert.Equal(t, 160.0, r.ConvertToPixels(types.Rem(10)))
	assert.Equal(t, 42.0, r.ConvertToPixels(types.Dimension{Value: 42}))

	vp.Apply(1000, 800, 20)
	assert.Equal(t, 200.0, r.ConvertToPixels(types.Rem(10)))

	fallback := newTestResolver(nil)
	assert.Equal(t, 160.0, fallback.ConvertToPixels(types.Rem(10)))
}

func TestConstrainSize(t *testing.T) {
	r := newTestResolver(NewViewport(1000, 800, 16))
	min := types.Size{Width: types.Rem(20), Height: types.Px(200)}
	max := &types.Size{Width: types.Px(800), Height: types.Rem(40)}

	t.Run("below minimum", func(t *testing.T) {
		got := r.ConstrainSize(types.Size{Width: types.Px(100), Height: types.Px(50)}, min, max)
		assert.Equal(t, types.Px(320), got.Width)
		assert.Equal(t, types.Px(200), got.Height)
	})

	t.Run("above maximum keeps requested unit", func(t *testing.T) {
		got := r.ConstrainSize(types.Size{Width: types.Rem(100), Height: types.Rem(100)}, min, max)
		assert.Equal(t, types.Rem(50), got.Width)
		assert.Equal(t, types.Rem(40), got.Height)
	})

	t.Run("within bounds", func(t *testing.T) {
		got := r.ConstrainSize(types.Size{Width: types.Px(500), Height: types.Rem(20)}, min, max)
		assert.Equal(t, types.Px(500), got.Width)
		assert.Equal(t, types.Rem(20), got.Height)
	})

	t.Run("no maximum", func(t *testing.T) {
		got := r.ConstrainSize(types.Size{Width: types.Px(5000), Height: types.Px(5000)}, min, nil)
		assert.Equal(t, types.Px(5000), got.Width)
		assert.Equal(t, types.Px(5000), got.Height)
	})

	t.Run("zero maximum axis is unbounded", func(t *testing.T) {
		got := r.ConstrainSize(types.Size{Width: types.Px(5000), Height: types.Px(5000)}, min,
			&types.Size{Width: types.Px(0), Height: types.Px(600)})
		assert.Equal(t, types.Px(5000), got.Width)
		assert.Equal(t, types.Px(600), got.Height)
	})
}

func TestFromPixels(t *testing.T) {
	r := newTestResolver(NewViewport(1000, 800, 16))

	assert.Equal(t, types.Rem(2), r.FromPixels(32, types.UnitRem))
	assert.Equal(t, types.Px(32), r.FromPixels(32, types.UnitPx))
	assert.Equal(t, types.Px(32), r.FromPixels(32, ""))
}
