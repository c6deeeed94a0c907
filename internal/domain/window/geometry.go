package window

import (
	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/shared/types"
)

// MinimizeWindow hides a panel and drops its focus
func (m *Manager) MinimizeWindow(panelID string) {
	m.mu.Lock()

	panel, ok := m.panels[panelID]
	if !ok {
		m.mu.Unlock()
		return
	}

	panel.IsMinimized = true
	panel.IsFocused = false
	if m.focusedID != nil && *m.focusedID == panelID {
		m.focusedID = nil
	}

	m.record("minimize")
	m.publish(notice{types.EventMinimized, panelID})
}

// MaximizeWindow pins a window to the origin, remembering its geometry the
// first time so RestoreWindow can put it back. Mini-apps are ignored.
func (m *Manager) MaximizeWindow(panelID string) {
	m.mu.Lock()

	panel, ok := m.panels[panelID]
	if !ok || panel.Kind != types.KindWindow {
		m.mu.Unlock()
		return
	}

	if !panel.IsMaximized {
		panel.PrevState = &types.PrevState{
			Position: panel.Position,
			Size:     panel.Size,
		}
	}
	panel.IsMaximized = true
	panel.IsMinimized = false
	panel.Position = types.Position{}

	m.record("maximize")
	m.publish(notice{types.EventMaximized, panelID})
}

// RestoreWindow returns a panel to its normal state
func (m *Manager) RestoreWindow(panelID string) {
	m.mu.Lock()

	panel, ok := m.panels[panelID]
	if !ok {
		m.mu.Unlock()
		return
	}

	if panel.IsMaximized && panel.PrevState != nil {
		panel.Position = panel.PrevState.Position
		panel.Size = panel.PrevState.Size
		panel.PrevState = nil
	}
	panel.IsMaximized = false
	panel.IsMinimized = false

	m.record("restore")
	m.publish(notice{types.EventRestored, panelID})
}

// MoveWindow sets a panel's position; negative coordinates clamp to zero
func (m *Manager) MoveWindow(panelID string, pos types.Position) {
	m.mu.Lock()

	panel, ok := m.panels[panelID]
	if !ok {
		m.mu.Unlock()
		return
	}

	panel.Position = types.Position{X: max(pos.X, 0), Y: max(pos.Y, 0)}

	m.record("move")
	m.publish()
}

// ResizeWindow sets a panel's size within its app's bounds. Panels that
// cannot resize are left untouched.
func (m *Manager) ResizeWindow(panelID string, size types.Size) {
	cfg := m.resolver.ResolveConfig(m.applicationID(panelID))

	m.mu.Lock()

	panel, ok := m.panels[panelID]
	if !ok || !panel.CanResize {
		m.mu.Unlock()
		return
	}

	panel.Size = m.resolver.ConstrainSize(size, cfg.MinSize, cfg.MaxSize)

	m.logger.Debug("Panel resized",
		zap.String("panel_id", panelID),
		zap.Float64("width", panel.Size.Width.Value),
		zap.Float64("height", panel.Size.Height.Value),
	)
	m.record("resize")
	m.publish()
}

func (m *Manager) applicationID(panelID string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.panels[panelID]; ok {
		return p.ApplicationID
	}
	return ""
}
