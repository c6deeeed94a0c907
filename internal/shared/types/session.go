package types

import "time"

// Layout is a named snapshot of the desktop arrangement
type Layout struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	Panels    []LayoutPanel `json:"panels"`
	FocusedID *string       `json:"focused_id,omitempty"`
}

// LayoutPanel captures one panel for restoration
type LayoutPanel struct {
	ID            string                 `json:"id"`
	Kind          PanelKind              `json:"kind"`
	ApplicationID string                 `json:"application_id"`
	ProcessID     string                 `json:"process_id"`
	Position      Position               `json:"position"`
	Size          Size                   `json:"size"`
	ZIndex        int                    `json:"z_index"`
	IsMinimized   bool                   `json:"is_minimized"`
	IsMaximized   bool                   `json:"is_maximized"`
	PrevState     *PrevState             `json:"prev_state,omitempty"`
	IsPinned      bool                   `json:"is_pinned"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// LayoutMetadata contains summary information
type LayoutMetadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	PanelCount int       `json:"panel_count"`
}

// ToMetadata extracts metadata from a layout
func (l *Layout) ToMetadata() LayoutMetadata {
	return LayoutMetadata{
		ID:         l.ID,
		Name:       l.Name,
		CreatedAt:  l.CreatedAt,
		PanelCount: len(l.Panels),
	}
}

// LayoutStats contains layout manager statistics
type LayoutStats struct {
	TotalLayouts int        `json:"total_layouts"`
	LastSaved    *time.Time `json:"last_saved,omitempty"`
	LastRestored *time.Time `json:"last_restored,omitempty"`
}
