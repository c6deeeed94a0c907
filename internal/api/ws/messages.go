package ws

import "github.com/nounsos/desktop/backend/internal/shared/types"

// Client message types
const (
	TypeCommand  = "command"
	TypeViewport = "viewport"
	TypePing     = "ping"
)

// Server message types, besides forwarded panel events
const (
	TypeSystem = "system"
	TypeState  = "state"
	TypeAck    = "ack"
	TypeError  = "error"
	TypePong   = "pong"
)

// Command operations
const (
	OpCreateWindow  = "create_window"
	OpCreateMiniApp = "create_miniapp"
	OpCloseWindow   = "close_window"
	OpCloseMiniApp  = "close_miniapp"
	OpFocus         = "focus"
	OpBlur          = "blur"
	OpMinimize      = "minimize"
	OpMaximize      = "maximize"
	OpRestore       = "restore"
	OpMove          = "move"
	OpResize        = "resize"
	OpSwitchFocus   = "switch_focus"
	OpClearFocus    = "clear_focus"
	OpPin           = "pin"
	OpUnpin         = "unpin"
	OpSaveLayout    = "save_layout"
	OpRestoreLayout = "restore_layout"
)

// ClientMessage is anything a client sends over the stream
type ClientMessage struct {
	Type string `json:"type"`

	// Commands
	Op        string                 `json:"op,omitempty"`
	ID        string                 `json:"id,omitempty"`
	AppID     string                 `json:"app_id,omitempty"`
	ProcessID string                 `json:"process_id,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Position  *types.Position        `json:"position,omitempty"`
	Size      *types.Size            `json:"size,omitempty"`
	Name      string                 `json:"name,omitempty"`

	// Viewport reports
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	RootFontSize float64 `json:"root_font_size,omitempty"`
}

// EventMessage forwards a panel manager notification
type EventMessage struct {
	Type      types.EventType `json:"type"`
	PanelID   string          `json:"panel_id,omitempty"`
	State     types.State     `json:"state"`
	Timestamp int64           `json:"timestamp"`
}

// ServerMessage covers every other message the server sends
type ServerMessage struct {
	Type      string       `json:"type"`
	Message   string       `json:"message,omitempty"`
	ClientID  string       `json:"client_id,omitempty"`
	Op        string       `json:"op,omitempty"`
	ID        string       `json:"id,omitempty"`
	State     *types.State `json:"state,omitempty"`
	Timestamp int64        `json:"timestamp"`
}
