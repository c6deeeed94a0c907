package types

// Unit tags a dimension value
type Unit string

const (
	UnitPx  Unit = "px"
	UnitRem Unit = "rem" // Relative to the root font size
)

// Dimension is a length tagged with its unit
type Dimension struct {
	Value float64 `json:"value" yaml:"value" toml:"value"`
	Unit  Unit    `json:"unit" yaml:"unit" toml:"unit"`
}

// Px builds a pixel dimension
func Px(v float64) Dimension { return Dimension{Value: v, Unit: UnitPx} }

// Rem builds a root-relative dimension
func Rem(v float64) Dimension { return Dimension{Value: v, Unit: UnitRem} }

// IsRem reports whether the dimension is root-relative. An empty unit is pixels.
func (d Dimension) IsRem() bool { return d.Unit == UnitRem }

// Size represents panel dimensions
type Size struct {
	Width  Dimension `json:"width" yaml:"width" toml:"width"`
	Height Dimension `json:"height" yaml:"height" toml:"height"`
}

// Position represents panel position on screen in pixels
type Position struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
}

// Margins keep anchored panels away from the viewport edges, in pixels
type Margins struct {
	Top    int `json:"top" yaml:"top" toml:"top"`
	Right  int `json:"right" yaml:"right" toml:"right"`
	Bottom int `json:"bottom" yaml:"bottom" toml:"bottom"`
	Left   int `json:"left" yaml:"left" toml:"left"`
}

// Anchor is the preferred initial placement of a panel
type Anchor string

const (
	AnchorCenter      Anchor = "center"
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
	AnchorExplicit    Anchor = "explicit"
)

// Valid reports whether a is a known anchor
func (a Anchor) Valid() bool {
	switch a {
	case AnchorCenter, AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight, AnchorExplicit:
		return true
	}
	return false
}
