package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/infrastructure/monitoring"
	"github.com/nounsos/desktop/backend/internal/shared/id"
	"github.com/nounsos/desktop/backend/internal/shared/types"
)

// DefaultName is used when a layout is saved without a name
const DefaultName = "default"

// ErrNotFound is returned for unknown layout ids
var ErrNotFound = errors.New("layout not found")

// PanelManager is the part of the window manager layouts need
type PanelManager interface {
	Snapshot() types.State
	CloseAll()
	CreateWindow(appID, processID string, metadata map[string]interface{}) string
	CreateMiniApp(appID, processID string, metadata map[string]interface{}) string
	MoveWindow(panelID string, pos types.Position)
	ResizeWindow(panelID string, size types.Size)
	MaximizeWindow(panelID string)
	MinimizeWindow(panelID string)
	PinMiniApp(appID string)
	UnpinMiniApp(appID string)
	FocusWindow(panelID string)
	ClearFocus()
}

// Manager saves and restores named desktop layouts
type Manager struct {
	layouts      sync.Map // id -> *types.Layout
	panels       PanelManager
	store        Store // Optional
	logger       *zap.Logger
	metrics      *monitoring.Metrics
	mu           sync.RWMutex
	lastSaved    *time.Time
	lastRestored *time.Time
}

// NewManager creates a layout manager. A nil store keeps layouts in memory only.
func NewManager(panels PanelManager, store Store) *Manager {
	return &Manager{
		panels: panels,
		store:  store,
		logger: zap.NewNop(),
	}
}

// WithLogger sets the manager's logger
func (m *Manager) WithLogger(logger *zap.Logger) *Manager {
	m.logger = logger
	return m
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Load populates the cache from the store
func (m *Manager) Load(ctx context.Context) (int, error) {
	if m.store == nil {
		return 0, nil
	}

	layouts, err := m.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, l := range layouts {
		m.layouts.Store(l.ID, l)
	}

	m.updateGauge()
	return len(layouts), nil
}

// Save captures the current panel arrangement under name
func (m *Manager) Save(ctx context.Context, name string) (*types.Layout, error) {
	if name == "" {
		name = DefaultName
	}

	state := m.panels.Snapshot()
	now := time.Now()

	layout := &types.Layout{
		ID:        id.NewLayoutID().String(),
		Name:      name,
		CreatedAt: now,
		Panels:    capture(state),
		FocusedID: state.FocusedID,
	}

	if m.store != nil {
		if err := m.store.Put(ctx, layout); err != nil {
			return nil, fmt.Errorf("failed to save layout: %w", err)
		}
	}

	m.layouts.Store(layout.ID, layout)

	m.mu.Lock()
	m.lastSaved = &now
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncLayoutsSaved()
	}
	m.updateGauge()

	m.logger.Info("Layout saved",
		zap.String("layout_id", layout.ID),
		zap.String("name", name),
		zap.Int("panels", len(layout.Panels)),
	)

	return layout, nil
}

// Get returns a saved layout
func (m *Manager) Get(layoutID string) (*types.Layout, error) {
	v, ok := m.layouts.Load(layoutID)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*types.Layout), nil
}

// List returns all saved layouts, newest first
func (m *Manager) List() []types.LayoutMetadata {
	metadata := []types.LayoutMetadata{}
	m.layouts.Range(func(_, value interface{}) bool {
		metadata = append(metadata, value.(*types.Layout).ToMetadata())
		return true
	})

	sort.Slice(metadata, func(i, j int) bool {
		if metadata[i].CreatedAt.Equal(metadata[j].CreatedAt) {
			return metadata[i].ID > metadata[j].ID
		}
		return metadata[i].CreatedAt.After(metadata[j].CreatedAt)
	})
	return metadata
}

// Restore replaces every open panel with the panels of a saved layout
func (m *Manager) Restore(ctx context.Context, layoutID string) error {
	layout, err := m.Get(layoutID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.panels.CloseAll()

	saved := make([]types.LayoutPanel, len(layout.Panels))
	copy(saved, layout.Panels)
	sort.SliceStable(saved, func(i, j int) bool {
		return saved[i].ZIndex < saved[j].ZIndex
	})

	// Old id -> new id
	idMap := make(map[string]string, len(saved))
	for _, p := range saved {
		idMap[p.ID] = m.restorePanel(p)
	}

	if layout.FocusedID != nil {
		if newID, ok := idMap[*layout.FocusedID]; ok {
			m.panels.FocusWindow(newID)
		} else {
			m.panels.ClearFocus()
		}
	} else {
		m.panels.ClearFocus()
	}

	now := time.Now()
	m.mu.Lock()
	m.lastRestored = &now
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncLayoutsRestored()
	}

	m.logger.Info("Layout restored",
		zap.String("layout_id", layoutID),
		zap.Int("panels", len(saved)),
	)

	return nil
}

// Delete removes a layout
func (m *Manager) Delete(ctx context.Context, layoutID string) error {
	if _, ok := m.layouts.Load(layoutID); !ok {
		return ErrNotFound
	}

	if m.store != nil {
		if err := m.store.Delete(ctx, layoutID); err != nil {
			return err
		}
	}

	m.layouts.Delete(layoutID)
	m.updateGauge()
	return nil
}

// Stats returns layout manager statistics
func (m *Manager) Stats() types.LayoutStats {
	m.mu.RLock()
	lastSaved := m.lastSaved
	lastRestored := m.lastRestored
	m.mu.RUnlock()

	return types.LayoutStats{
		TotalLayouts: m.count(),
		LastSaved:    lastSaved,
		LastRestored: lastRestored,
	}
}

func (m *Manager) restorePanel(p types.LayoutPanel) string {
	metadata := make(map[string]interface{}, len(p.Metadata)+1)
	for k, v := range p.Metadata {
		metadata[k] = v
	}
	metadata["restored_from"] = p.ID

	var panelID string
	if p.Kind == types.KindMiniApp {
		panelID = m.panels.CreateMiniApp(p.ApplicationID, p.ProcessID, metadata)
		if p.IsPinned {
			m.panels.PinMiniApp(p.ApplicationID)
		} else {
			m.panels.UnpinMiniApp(p.ApplicationID)
		}
	} else {
		panelID = m.panels.CreateWindow(p.ApplicationID, p.ProcessID, metadata)
	}

	// Geometry from before the maximize, so a later restore returns there.
	pos, size := p.Position, p.Size
	if p.IsMaximized && p.PrevState != nil {
		pos, size = p.PrevState.Position, p.PrevState.Size
	}
	m.panels.MoveWindow(panelID, pos)
	m.panels.ResizeWindow(panelID, size)

	if p.IsMaximized {
		m.panels.MaximizeWindow(panelID)
	}
	if p.IsMinimized {
		m.panels.MinimizeWindow(panelID)
	}

	return panelID
}

func capture(state types.State) []types.LayoutPanel {
	panels := make([]types.LayoutPanel, 0, len(state.Windows)+len(state.MiniApps))
	for _, group := range [][]types.Panel{state.Windows, state.MiniApps} {
		for _, p := range group {
			panels = append(panels, types.LayoutPanel{
				ID:            p.ID,
				Kind:          p.Kind,
				ApplicationID: p.ApplicationID,
				ProcessID:     p.ProcessID,
				Position:      p.Position,
				Size:          p.Size,
				ZIndex:        p.ZIndex,
				IsMinimized:   p.IsMinimized,
				IsMaximized:   p.IsMaximized,
				PrevState:     p.PrevState,
				IsPinned:      p.IsPinned,
				Metadata:      p.Metadata,
			})
		}
	}
	return panels
}

func (m *Manager) count() int {
	var total int
	m.layouts.Range(func(_, _ interface{}) bool {
		total++
		return true
	})
	return total
}

func (m *Manager) updateGauge() {
	if m.metrics != nil {
		m.metrics.SetLayoutsStored(m.count())
	}
}
