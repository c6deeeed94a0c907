package window

import "github.com/nounsos/desktop/backend/internal/shared/types"

// GetWindow returns a copy of the panel with the given id, of either kind
func (m *Manager) GetWindow(panelID string) (types.Panel, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.panels[panelID]
	if !ok {
		return types.Panel{}, false
	}
	return p.Clone(), true
}

// GetAllWindows returns copies of all windows in creation order
func (m *Manager) GetAllWindows() []types.Panel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(types.KindWindow)
}

// GetAllMiniApps returns copies of all mini-apps in creation order
func (m *Manager) GetAllMiniApps() []types.Panel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(types.KindMiniApp)
}

// GetFocusHistory returns focused ids, most recent last
func (m *Manager) GetFocusHistory() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string{}, m.focusHistory...)
}

// FocusedID returns the focused panel id, if any
func (m *Manager) FocusedID() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.focusedID == nil {
		return "", false
	}
	return *m.focusedID, true
}

// Snapshot returns an immutable copy of the whole manager state
func (m *Manager) Snapshot() types.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Stats returns panel manager statistics
func (m *Manager) Stats() types.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stats types.Stats
	for _, p := range m.panels {
		if p.Kind == types.KindMiniApp {
			stats.TotalMiniApps++
		} else {
			stats.TotalWindows++
		}
		if p.IsMinimized {
			stats.MinimizedCount++
		}
		if p.IsMaximized {
			stats.MaximizedCount++
		}
	}
	if m.focusedID != nil {
		focused := *m.focusedID
		stats.FocusedID = &focused
	}
	return stats
}

func (m *Manager) listLocked(kind types.PanelKind) []types.Panel {
	out := make([]types.Panel, 0, len(m.order))
	for _, panelID := range m.order {
		if p := m.panels[panelID]; p.Kind == kind {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (m *Manager) snapshotLocked() types.State {
	state := types.State{
		Windows:      m.listLocked(types.KindWindow),
		MiniApps:     m.listLocked(types.KindMiniApp),
		FocusHistory: append([]string{}, m.focusHistory...),
		NextZIndex:   m.nextZIndex + 1,
	}
	if m.focusedID != nil {
		focused := *m.focusedID
		state.FocusedID = &focused
	}
	return state
}
