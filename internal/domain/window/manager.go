package window

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/domain/layout"
	"github.com/nounsos/desktop/backend/internal/infrastructure/monitoring"
	"github.com/nounsos/desktop/backend/internal/shared/id"
	"github.com/nounsos/desktop/backend/internal/shared/types"
)

// Manager is the single source of truth for desktop panels
type Manager struct {
	mu           sync.RWMutex
	panels       map[string]*types.Panel // Protected by mu
	order        []string                // Creation order, protected by mu
	focusedID    *string                 // Protected by mu
	focusHistory []string                // Most recent last, protected by mu
	nextZIndex   int                     // Protected by mu

	resolver *layout.Resolver
	bus      *bus
	logger   *zap.Logger
	metrics  *monitoring.Metrics
	now      func() time.Time
}

// notice is a specific notification queued by an operation
type notice struct {
	eventType types.EventType
	panelID   string
}

// NewManager creates a panel manager that places panels with resolver
func NewManager(resolver *layout.Resolver) *Manager {
	logger := zap.NewNop()
	return &Manager{
		panels:   make(map[string]*types.Panel),
		resolver: resolver,
		bus:      newBus(logger),
		logger:   logger,
		now:      time.Now,
	}
}

// WithLogger sets the manager's logger
func (m *Manager) WithLogger(logger *zap.Logger) *Manager {
	m.logger = logger
	m.bus.logger = logger
	return m
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Resolver returns the geometry resolver used for placement
func (m *Manager) Resolver() *layout.Resolver {
	return m.resolver
}

// Subscribe registers handler for the given event types, or all types when none are given
func (m *Manager) Subscribe(handler Handler, eventTypes ...types.EventType) SubscriptionID {
	return m.bus.subscribe(handler, eventTypes...)
}

// Unsubscribe removes a handler. It reports whether the subscription existed.
func (m *Manager) Unsubscribe(id SubscriptionID) bool {
	return m.bus.unsubscribe(id)
}

// SubscriberCount returns the number of registered handlers
func (m *Manager) SubscriberCount() int {
	return m.bus.count()
}

// CreateWindow opens a window for appID and focuses it
func (m *Manager) CreateWindow(appID, processID string, metadata map[string]interface{}) string {
	return m.create(types.KindWindow, appID, processID, metadata)
}

// CreateMiniApp opens a mini-app for appID and focuses it.
// Instances of the same app are not deduplicated.
func (m *Manager) CreateMiniApp(appID, processID string, metadata map[string]interface{}) string {
	return m.create(types.KindMiniApp, appID, processID, metadata)
}

func (m *Manager) create(kind types.PanelKind, appID, processID string, metadata map[string]interface{}) string {
	cfg := m.resolver.ResolveConfig(appID)

	var panelID string
	if kind == types.KindMiniApp {
		panelID = id.NewMiniAppID().String()
	} else {
		panelID = id.NewWindowID().String()
	}

	m.mu.Lock()

	// Mini-apps are expected to run once, so they never stack.
	stackIndex, position := 0, m.resolver.CalculatePosition(appID, 0)
	if kind == types.KindWindow {
		stackIndex, position = m.stackSlotLocked(appID)
	}

	panel := &types.Panel{
		ID:            panelID,
		Kind:          kind,
		ApplicationID: appID,
		ProcessID:     processID,
		Title:         cfg.Title,
		Icon:          cfg.Icon,
		Position:      position,
		Size:          cfg.DefaultSize,
		CanResize:     cfg.CanResize,
		IsPinned:      kind == types.KindMiniApp && cfg.Pinned,
		Metadata:      copyMetadata(metadata),
		CreatedAt:     m.now(),
	}

	m.panels[panelID] = panel
	m.order = append(m.order, panelID)

	notices := []notice{{types.EventCreated, panelID}}
	notices = append(notices, m.focusLocked(panelID)...)

	m.logger.Debug("Panel created",
		zap.String("panel_id", panelID),
		zap.String("kind", string(kind)),
		zap.String("app_id", appID),
		zap.Int("stack_index", stackIndex),
	)
	m.record("create_" + string(kind))
	m.updateOpenGaugesLocked()
	m.publish(notices...)

	return panelID
}

// CloseWindow removes a window. Unknown ids are ignored.
func (m *Manager) CloseWindow(panelID string) {
	m.mu.Lock()

	panel, ok := m.panels[panelID]
	if !ok || panel.Kind != types.KindWindow {
		m.mu.Unlock()
		return
	}

	m.removeLocked(panelID)
	m.record("close_window")
	m.updateOpenGaugesLocked()
	m.publish(notice{types.EventClosed, panelID})
}

// CloseMiniApp removes the first mini-app instance of appID, in creation order
func (m *Manager) CloseMiniApp(appID string) {
	m.mu.Lock()

	panel := m.findMiniAppLocked(appID)
	if panel == nil {
		m.mu.Unlock()
		return
	}

	panelID := panel.ID
	m.removeLocked(panelID)
	m.record("close_miniapp")
	m.updateOpenGaugesLocked()
	m.publish(notice{types.EventClosed, panelID})
}

// CloseAll removes every panel. Focus history is emptied; the z-index
// counter keeps increasing.
func (m *Manager) CloseAll() {
	m.mu.Lock()

	if len(m.order) == 0 {
		m.mu.Unlock()
		return
	}

	notices := make([]notice, 0, len(m.order))
	for _, panelID := range m.order {
		notices = append(notices, notice{types.EventClosed, panelID})
	}

	m.panels = make(map[string]*types.Panel)
	m.order = nil
	m.focusHistory = nil
	m.focusedID = nil

	m.record("close_all")
	m.updateOpenGaugesLocked()
	m.publish(notices...)
}

// PinMiniApp pins the first mini-app instance of appID
func (m *Manager) PinMiniApp(appID string) {
	m.setPinned(appID, true)
}

// UnpinMiniApp unpins the first mini-app instance of appID
func (m *Manager) UnpinMiniApp(appID string) {
	m.setPinned(appID, false)
}

func (m *Manager) setPinned(appID string, pinned bool) {
	m.mu.Lock()

	panel := m.findMiniAppLocked(appID)
	if panel == nil {
		m.mu.Unlock()
		return
	}

	panel.IsPinned = pinned
	eventType, op := types.EventPinned, "pin_miniapp"
	if !pinned {
		eventType, op = types.EventUnpinned, "unpin_miniapp"
	}
	m.record(op)
	m.publish(notice{eventType, panel.ID})
}

// removeLocked deletes a panel and prunes it from order and focus history
func (m *Manager) removeLocked(panelID string) {
	delete(m.panels, panelID)
	m.order = removeID(m.order, panelID)
	m.focusHistory = removeID(m.focusHistory, panelID)

	if m.focusedID != nil && *m.focusedID == panelID {
		m.focusedID = nil
	}
}

func (m *Manager) findMiniAppLocked(appID string) *types.Panel {
	for _, panelID := range m.order {
		if p := m.panels[panelID]; p.Kind == types.KindMiniApp && p.ApplicationID == appID {
			return p
		}
	}
	return nil
}

// stackSlotLocked returns the lowest stacking index whose position no open
// window of appID occupies
func (m *Manager) stackSlotLocked(appID string) (int, types.Position) {
	occupied := make(map[types.Position]struct{})
	for _, p := range m.panels {
		if p.Kind == types.KindWindow && p.ApplicationID == appID {
			occupied[p.Position] = struct{}{}
		}
	}

	for i := 0; i < len(occupied); i++ {
		pos := m.resolver.CalculatePosition(appID, i)
		if _, taken := occupied[pos]; !taken {
			return i, pos
		}
	}
	return len(occupied), m.resolver.CalculatePosition(appID, len(occupied))
}

// publish snapshots the state, queues notices followed by a state-changed
// event, releases mu and delivers. Must be called with mu held.
func (m *Manager) publish(notices ...notice) {
	state := m.snapshotLocked()
	now := m.now()

	events := make([]types.Event, 0, len(notices)+1)
	for _, n := range notices {
		events = append(events, types.Event{Type: n.eventType, PanelID: n.panelID, State: state, Timestamp: now})
	}
	events = append(events, types.Event{Type: types.EventStateChanged, State: state, Timestamp: now})

	m.bus.enqueue(events)
	m.mu.Unlock()

	if m.metrics != nil {
		for _, ev := range events {
			m.metrics.RecordEvent(string(ev.Type))
		}
	}

	m.bus.drain()
}

func (m *Manager) record(op string) {
	if m.metrics != nil {
		m.metrics.RecordPanelOp(op)
	}
}

func (m *Manager) updateOpenGaugesLocked() {
	if m.metrics == nil {
		return
	}
	var windows, miniApps int
	for _, p := range m.panels {
		if p.Kind == types.KindMiniApp {
			miniApps++
		} else {
			windows++
		}
	}
	m.metrics.SetPanelsOpen(string(types.KindWindow), windows)
	m.metrics.SetPanelsOpen(string(types.KindMiniApp), miniApps)
}

func copyMetadata(metadata map[string]interface{}) map[string]interface{} {
	if metadata == nil {
		return nil
	}
	c := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		c[k] = v
	}
	return c
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
