package types

// PanelKind discriminates regular windows from mini-apps
type PanelKind string

const (
	KindWindow  PanelKind = "window"
	KindMiniApp PanelKind = "miniapp"
)

// AppConfig is the static configuration of one desktop application
type AppConfig struct {
	ID          string    `json:"id" yaml:"id" toml:"id"`
	Title       string    `json:"title" yaml:"title" toml:"title"`
	Icon        string    `json:"icon" yaml:"icon" toml:"icon"`
	Kind        PanelKind `json:"kind" yaml:"kind" toml:"kind"`
	DefaultSize Size      `json:"default_size" yaml:"default_size" toml:"default_size"`
	MinSize     Size      `json:"min_size" yaml:"min_size" toml:"min_size"`
	MaxSize     *Size     `json:"max_size,omitempty" yaml:"max_size,omitempty" toml:"max_size,omitempty"`
	Anchor      Anchor    `json:"anchor" yaml:"anchor" toml:"anchor"`
	Explicit    Position  `json:"explicit" yaml:"explicit" toml:"explicit"` // Used with AnchorExplicit
	Margins     Margins   `json:"margins" yaml:"margins" toml:"margins"`
	CanResize   bool      `json:"can_resize" yaml:"can_resize" toml:"can_resize"`
	Pinned      bool      `json:"pinned" yaml:"pinned" toml:"pinned"` // Initial pin state for mini-apps
}

// IsMiniApp reports whether the app opens as a mini-app
func (c AppConfig) IsMiniApp() bool {
	return c.Kind == KindMiniApp
}
