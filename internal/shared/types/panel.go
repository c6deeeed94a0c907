package types

import "time"

// MiniAppLayerOffset lifts mini-apps into their own band above windows
const MiniAppLayerOffset = 1000

// PrevState holds the geometry saved when a window was maximized
type PrevState struct {
	Position Position `json:"position"`
	Size     Size     `json:"size"`
}

// Panel is a window or mini-app tracked by the panel manager
type Panel struct {
	ID            string                 `json:"id"`
	Kind          PanelKind              `json:"kind"`
	ApplicationID string                 `json:"application_id"`
	ProcessID     string                 `json:"process_id"`
	Title         string                 `json:"title"`
	Icon          string                 `json:"icon"`
	Position      Position               `json:"position"`
	Size          Size                   `json:"size"`
	ZIndex        int                    `json:"z_index"`
	IsFocused     bool                   `json:"is_focused"`
	IsMinimized   bool                   `json:"is_minimized"`
	IsMaximized   bool                   `json:"is_maximized"`
	PrevState     *PrevState             `json:"prev_state,omitempty"`
	CanResize     bool                   `json:"can_resize"`
	IsPinned      bool                   `json:"is_pinned"` // Mini-apps only
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// IsMiniApp reports whether the panel is a mini-app
func (p *Panel) IsMiniApp() bool {
	return p.Kind == KindMiniApp
}

// MiniAppID is the application kind used to look up mini-apps
func (p *Panel) MiniAppID() string {
	if !p.IsMiniApp() {
		return ""
	}
	return p.ApplicationID
}

// Layer is the rendering z-order, with mini-apps in their own band
func (p *Panel) Layer() int {
	if p.IsMiniApp() {
		return p.ZIndex + MiniAppLayerOffset
	}
	return p.ZIndex
}

// Clone returns a deep copy safe to hand across package boundaries
func (p *Panel) Clone() Panel {
	c := *p
	if p.PrevState != nil {
		prev := *p.PrevState
		c.PrevState = &prev
	}
	if p.Metadata != nil {
		c.Metadata = make(map[string]interface{}, len(p.Metadata))
		for k, v := range p.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

// State is an immutable snapshot of the panel manager
type State struct {
	Windows      []Panel  `json:"windows"`
	MiniApps     []Panel  `json:"mini_apps"`
	FocusedID    *string  `json:"focused_window_id"`
	FocusHistory []string `json:"focus_history"`
	NextZIndex   int      `json:"next_z_index"`
}

// Stats contains panel manager statistics
type Stats struct {
	TotalWindows   int     `json:"total_windows"`
	TotalMiniApps  int     `json:"total_mini_apps"`
	MinimizedCount int     `json:"minimized"`
	MaximizedCount int     `json:"maximized"`
	FocusedID      *string `json:"focused_window_id,omitempty"`
}

// Clone returns a deep copy of the snapshot
func (s State) Clone() State {
	c := State{NextZIndex: s.NextZIndex}
	if s.Windows != nil {
		c.Windows = make([]Panel, len(s.Windows))
		for i := range s.Windows {
			c.Windows[i] = s.Windows[i].Clone()
		}
	}
	if s.MiniApps != nil {
		c.MiniApps = make([]Panel, len(s.MiniApps))
		for i := range s.MiniApps {
			c.MiniApps[i] = s.MiniApps[i].Clone()
		}
	}
	if s.FocusedID != nil {
		focused := *s.FocusedID
		c.FocusedID = &focused
	}
	if s.FocusHistory != nil {
		c.FocusHistory = append([]string(nil), s.FocusHistory...)
	}
	return c
}
