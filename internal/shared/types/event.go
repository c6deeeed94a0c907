package types

import "time"

// EventType names a panel manager notification
type EventType string

const (
	EventStateChanged EventType = "state-changed"
	EventCreated      EventType = "created"
	EventFocused      EventType = "focused"
	EventBlurred      EventType = "blurred"
	EventMinimized    EventType = "minimized"
	EventMaximized    EventType = "maximized"
	EventRestored     EventType = "restored"
	EventFocusCleared EventType = "focus-cleared"
	EventClosed       EventType = "closed"
	EventPinned       EventType = "pinned"
	EventUnpinned     EventType = "unpinned"
)

// AllEventTypes lists every notification the manager emits
var AllEventTypes = []EventType{
	EventStateChanged,
	EventCreated,
	EventFocused,
	EventBlurred,
	EventMinimized,
	EventMaximized,
	EventRestored,
	EventFocusCleared,
	EventClosed,
	EventPinned,
	EventUnpinned,
}

// Event is delivered to subscribers after a mutation completes
type Event struct {
	Type      EventType `json:"type"`
	PanelID   string    `json:"panel_id,omitempty"`
	State     State     `json:"state"`
	Timestamp time.Time `json:"timestamp"`
}
