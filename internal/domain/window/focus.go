package window

import (
	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/shared/types"
)

// FocusWindow raises a panel of either kind to the top and focuses it.
// A minimized panel is restored to view as part of gaining focus.
func (m *Manager) FocusWindow(panelID string) {
	m.mu.Lock()

	if _, ok := m.panels[panelID]; !ok {
		m.mu.Unlock()
		return
	}

	notices := m.focusLocked(panelID)
	m.record("focus")
	m.publish(notices...)
}

// BlurWindow drops focus from a panel without focusing another one
func (m *Manager) BlurWindow(panelID string) {
	m.mu.Lock()

	panel, ok := m.panels[panelID]
	if !ok || !panel.IsFocused {
		m.mu.Unlock()
		return
	}

	panel.IsFocused = false
	m.focusedID = nil
	m.record("blur")
	m.publish(notice{types.EventBlurred, panelID})
}

// SwitchFocus swaps the two most recent focus history entries and focuses
// the new top, alt-tab style
func (m *Manager) SwitchFocus() {
	m.mu.Lock()

	n := len(m.focusHistory)
	if n < 2 {
		m.mu.Unlock()
		return
	}

	m.focusHistory[n-1], m.focusHistory[n-2] = m.focusHistory[n-2], m.focusHistory[n-1]
	target := m.focusHistory[n-1]

	notices := m.focusLocked(target)
	m.record("switch_focus")
	m.publish(notices...)
}

// ClearFocus unfocuses every panel. It always notifies, even when nothing
// was focused.
func (m *Manager) ClearFocus() {
	m.mu.Lock()

	for _, p := range m.panels {
		p.IsFocused = false
	}
	m.focusedID = nil

	m.record("clear_focus")
	m.publish(notice{eventType: types.EventFocusCleared})
}

// focusLocked is the only place the z-index counter moves. It leaves
// exactly one panel focused and keeps the history de-duplicated with the
// most recent id last. Must be called with mu held.
func (m *Manager) focusLocked(panelID string) []notice {
	target := m.panels[panelID]

	var notices []notice
	if m.focusedID != nil && *m.focusedID != panelID {
		if _, ok := m.panels[*m.focusedID]; ok {
			notices = append(notices, notice{types.EventBlurred, *m.focusedID})
		}
	}

	for _, p := range m.panels {
		p.IsFocused = false
	}

	m.nextZIndex++
	target.ZIndex = m.nextZIndex
	target.IsFocused = true
	target.IsMinimized = false

	focused := panelID
	m.focusedID = &focused

	m.focusHistory = append(removeID(m.focusHistory, panelID), panelID)

	m.logger.Debug("Panel focused",
		zap.String("panel_id", panelID),
		zap.Int("z_index", target.ZIndex),
	)

	return append(notices, notice{types.EventFocused, panelID})
}
