package window

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nounsos/desktop/backend/internal/domain/catalog"
	"github.com/nounsos/desktop/backend/internal/domain/layout"
	"github.com/nounsos/desktop/backend/internal/infrastructure/monitoring"
	"github.com/nounsos/desktop/backend/internal/shared/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	viewport := layout.NewViewport(1600, 1200, 16)
	resolver := layout.NewResolver(catalog.Builtin(), viewport, layout.DefaultOptions())
	return NewManager(resolver)
}

type recorder struct {
	mu     sync.Mutex
	events []types.Event
}

func (r *recorder) handle(ev types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) types() []types.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func focusedCount(m *Manager) int {
	n := 0
	for _, p := range append(m.GetAllWindows(), m.GetAllMiniApps()...) {
		if p.IsFocused {
			n++
		}
	}
	return n
}

func TestCreateWindow(t *testing.T) {
	m := newTestManager(t)

	panelID := m.CreateWindow("auction", "proc-1", map[string]interface{}{"noun": 42})
	assert.Contains(t, panelID, "win_")

	p, ok := m.GetWindow(panelID)
	require.True(t, ok)
	assert.Equal(t, types.KindWindow, p.Kind)
	assert.Equal(t, "Noun Auction", p.Title)
	assert.Equal(t, "proc-1", p.ProcessID)
	assert.Equal(t, 42, p.Metadata["noun"])
	assert.True(t, p.IsFocused)
	assert.True(t, p.CanResize)
	assert.Equal(t, types.Size{Width: types.Rem(42), Height: types.Rem(34)}, p.Size)

	focused, ok := m.FocusedID()
	require.True(t, ok)
	assert.Equal(t, panelID, focused)
	assert.Equal(t, []string{panelID}, m.GetFocusHistory())
}

func TestCreateUnknownAppUsesDefaults(t *testing.T) {
	m := newTestManager(t)

	p, ok := m.GetWindow(m.CreateWindow("nope", "", nil))
	require.True(t, ok)
	assert.Equal(t, "Application", p.Title)
	assert.Equal(t, types.Size{Width: types.Rem(40), Height: types.Rem(30)}, p.Size)
}

func TestAtMostOneFocused(t *testing.T) {
	m := newTestManager(t)

	for _, app := range []string{"auction", "probe", "wallet", "treasury", "clock", "auction"} {
		cfg := m.Resolver().ResolveConfig(app)
		if cfg.IsMiniApp() {
			m.CreateMiniApp(app, "", nil)
		} else {
			m.CreateWindow(app, "", nil)
		}
		assert.Equal(t, 1, focusedCount(m))
	}
}

func TestFocusRaisesToTop(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	m.CreateWindow("probe", "", nil)
	m.CreateMiniApp("wallet", "", nil)

	m.FocusWindow(a)

	top := 0
	var topID string
	for _, p := range append(m.GetAllWindows(), m.GetAllMiniApps()...) {
		if p.ZIndex > top {
			top, topID = p.ZIndex, p.ID
		}
	}
	assert.Equal(t, a, topID)
	assert.Equal(t, 1, focusedCount(m))
}

func TestFocusHistoryDeduplicated(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	b := m.CreateWindow("probe", "", nil)
	m.FocusWindow(a)
	m.FocusWindow(b)
	m.FocusWindow(a)

	assert.Equal(t, []string{b, a}, m.GetFocusHistory())
}

func TestFocusUnknownIsNoop(t *testing.T) {
	m := newTestManager(t)
	m.CreateWindow("auction", "", nil)

	rec := &recorder{}
	m.Subscribe(rec.handle)
	before := m.Snapshot()

	m.FocusWindow("win_missing")

	assert.Equal(t, before, m.Snapshot())
	assert.Empty(t, rec.types())
}

func TestFocusMinimizedRestoresIt(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	m.MinimizeWindow(a)
	m.FocusWindow(a)

	p, _ := m.GetWindow(a)
	assert.True(t, p.IsFocused)
	assert.False(t, p.IsMinimized)
}

func TestMaximizeRestoreRoundTrip(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	m.MoveWindow(a, types.Position{X: 120, Y: 80})
	m.ResizeWindow(a, types.Size{Width: types.Px(700), Height: types.Px(500)})
	before, _ := m.GetWindow(a)

	m.MaximizeWindow(a)
	maxed, _ := m.GetWindow(a)
	assert.True(t, maxed.IsMaximized)
	assert.Equal(t, types.Position{}, maxed.Position)
	require.NotNil(t, maxed.PrevState)

	// A second maximize keeps the first snapshot.
	m.MaximizeWindow(a)

	m.RestoreWindow(a)
	after, _ := m.GetWindow(a)
	assert.Equal(t, before.Position, after.Position)
	assert.Equal(t, before.Size, after.Size)
	assert.Nil(t, after.PrevState)
	assert.False(t, after.IsMaximized)
	assert.False(t, after.IsMinimized)
}

func TestMaximizeIgnoresMiniApps(t *testing.T) {
	m := newTestManager(t)

	w := m.CreateMiniApp("wallet", "", nil)
	before, _ := m.GetWindow(w)
	m.MaximizeWindow(w)
	after, _ := m.GetWindow(w)

	assert.Equal(t, before, after)
}

func TestMaximizeClearsMinimized(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	m.MinimizeWindow(a)
	m.MaximizeWindow(a)

	p, _ := m.GetWindow(a)
	assert.True(t, p.IsMaximized)
	assert.False(t, p.IsMinimized)
}

func TestMinimize(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	m.MinimizeWindow(a)

	p, _ := m.GetWindow(a)
	assert.True(t, p.IsMinimized)
	assert.False(t, p.IsFocused)
	_, ok := m.FocusedID()
	assert.False(t, ok)
	assert.Equal(t, 1, m.Stats().MinimizedCount)
}

func TestMoveClampsNegative(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	m.MoveWindow(a, types.Position{X: -50, Y: -10})

	p, _ := m.GetWindow(a)
	assert.Equal(t, types.Position{X: 0, Y: 0}, p.Position)
}

func TestResize(t *testing.T) {
	tests := []struct {
		name string
		app  string
		req  types.Size
		want types.Size
	}{
		{
			name: "within bounds",
			app:  "auction",
			req:  types.Size{Width: types.Px(700), Height: types.Px(500)},
			want: types.Size{Width: types.Px(700), Height: types.Px(500)},
		},
		{
			name: "below minimum clamps",
			app:  "auction",
			req:  types.Size{Width: types.Px(100), Height: types.Px(100)},
			want: types.Size{Width: types.Px(480), Height: types.Px(384)},
		},
		{
			name: "above maximum clamps",
			app:  "auction",
			req:  types.Size{Width: types.Rem(100), Height: types.Rem(100)},
			want: types.Size{Width: types.Rem(80), Height: types.Rem(60)},
		},
		{
			name: "no maximum",
			app:  "probe",
			req:  types.Size{Width: types.Px(3000), Height: types.Px(2000)},
			want: types.Size{Width: types.Px(3000), Height: types.Px(2000)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			panelID := m.CreateWindow(tt.app, "", nil)
			m.ResizeWindow(panelID, tt.req)

			p, _ := m.GetWindow(panelID)
			assert.Equal(t, tt.want, p.Size)
		})
	}
}

func TestResizeNotResizable(t *testing.T) {
	m := newTestManager(t)

	n := m.CreateWindow("noun", "", nil)
	before, _ := m.GetWindow(n)
	m.ResizeWindow(n, types.Size{Width: types.Px(900), Height: types.Px(900)})
	after, _ := m.GetWindow(n)

	assert.Equal(t, before.Size, after.Size)
}

func TestCloseWindowClearsFocus(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	b := m.CreateWindow("probe", "", nil)
	m.CloseWindow(b)

	assert.Len(t, m.GetAllWindows(), 1)
	_, ok := m.GetWindow(b)
	assert.False(t, ok)

	// Focus is not handed back to a.
	_, ok = m.FocusedID()
	assert.False(t, ok)
	assert.Equal(t, []string{a}, m.GetFocusHistory())
}

func TestCloseWindowIgnoresMiniApps(t *testing.T) {
	m := newTestManager(t)

	w := m.CreateMiniApp("wallet", "", nil)
	m.CloseWindow(w)

	assert.Len(t, m.GetAllMiniApps(), 1)
}

func TestStackingOffset(t *testing.T) {
	m := newTestManager(t)

	a, _ := m.GetWindow(m.CreateWindow("auction", "", nil))
	b, _ := m.GetWindow(m.CreateWindow("auction", "", nil))

	offset := m.Resolver().Options().StackingOffset
	assert.Equal(t, a.Position.X+offset, b.Position.X)
	assert.Equal(t, a.Position.Y+offset, b.Position.Y)
}

func TestStackingSkipsOccupiedSlots(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	b := m.CreateWindow("auction", "", nil)
	m.CloseWindow(a)
	c := m.CreateWindow("auction", "", nil)

	bw, _ := m.GetWindow(b)
	cw, _ := m.GetWindow(c)
	assert.NotEqual(t, bw.Position, cw.Position)
	assert.Equal(t, m.Resolver().CalculatePosition("auction", 0), cw.Position)

	d := m.CreateWindow("auction", "", nil)
	dw, _ := m.GetWindow(d)
	assert.Equal(t, m.Resolver().CalculatePosition("auction", 2), dw.Position)
}

func TestStackingIgnoresMovedWindows(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	m.MoveWindow(a, types.Position{X: 5, Y: 5})
	b, _ := m.GetWindow(m.CreateWindow("auction", "", nil))

	assert.Equal(t, m.Resolver().CalculatePosition("auction", 0), b.Position)
}

func TestMiniAppsDoNotStack(t *testing.T) {
	m := newTestManager(t)

	a, _ := m.GetWindow(m.CreateMiniApp("wallet", "", nil))
	b, _ := m.GetWindow(m.CreateMiniApp("wallet", "", nil))

	assert.Equal(t, a.Position, b.Position)
}

func TestCloseMiniAppFirstMatch(t *testing.T) {
	m := newTestManager(t)

	first := m.CreateMiniApp("wallet", "", nil)
	second := m.CreateMiniApp("wallet", "", nil)
	assert.NotEqual(t, first, second)
	assert.Contains(t, first, "mini_")

	m.CloseMiniApp("wallet")

	remaining := m.GetAllMiniApps()
	require.Len(t, remaining, 1)
	assert.Equal(t, second, remaining[0].ID)
}

func TestPinMiniApp(t *testing.T) {
	m := newTestManager(t)

	clock := m.CreateMiniApp("clock", "", nil)
	p, _ := m.GetWindow(clock)
	assert.True(t, p.IsPinned)

	m.UnpinMiniApp("clock")
	p, _ = m.GetWindow(clock)
	assert.False(t, p.IsPinned)

	m.PinMiniApp("clock")
	p, _ = m.GetWindow(clock)
	assert.True(t, p.IsPinned)
}

func TestMiniAppLayer(t *testing.T) {
	m := newTestManager(t)

	w := m.CreateMiniApp("wallet", "", nil)
	a := m.CreateWindow("auction", "", nil)

	wp, _ := m.GetWindow(w)
	ap, _ := m.GetWindow(a)
	assert.Less(t, wp.ZIndex, ap.ZIndex)
	assert.Greater(t, wp.Layer(), ap.Layer())
}

func TestSwitchFocus(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	b := m.CreateWindow("probe", "", nil)

	m.SwitchFocus()
	focused, _ := m.FocusedID()
	assert.Equal(t, a, focused)
	assert.Equal(t, []string{b, a}, m.GetFocusHistory())

	m.SwitchFocus()
	focused, _ = m.FocusedID()
	assert.Equal(t, b, focused)
}

func TestSwitchFocusNeedsTwoEntries(t *testing.T) {
	m := newTestManager(t)
	m.CreateWindow("auction", "", nil)

	rec := &recorder{}
	m.Subscribe(rec.handle)
	before := m.Snapshot()

	m.SwitchFocus()

	assert.Equal(t, before, m.Snapshot())
	assert.Empty(t, rec.types())
}

func TestClearFocus(t *testing.T) {
	m := newTestManager(t)
	m.CreateWindow("auction", "", nil)
	m.CreateMiniApp("wallet", "", nil)

	rec := &recorder{}
	m.Subscribe(rec.handle)

	m.ClearFocus()
	assert.Equal(t, 0, focusedCount(m))
	_, ok := m.FocusedID()
	assert.False(t, ok)

	// Fires even when nothing is focused.
	m.ClearFocus()
	assert.Equal(t, []types.EventType{
		types.EventFocusCleared, types.EventStateChanged,
		types.EventFocusCleared, types.EventStateChanged,
	}, rec.types())
}

func TestBlurWindow(t *testing.T) {
	m := newTestManager(t)
	a := m.CreateWindow("auction", "", nil)

	rec := &recorder{}
	m.Subscribe(rec.handle)

	m.BlurWindow(a)
	m.BlurWindow(a)

	p, _ := m.GetWindow(a)
	assert.False(t, p.IsFocused)
	assert.Equal(t, []types.EventType{types.EventBlurred, types.EventStateChanged}, rec.types())
}

func TestCloseAll(t *testing.T) {
	m := newTestManager(t)
	m.CreateWindow("auction", "", nil)
	m.CreateMiniApp("wallet", "", nil)
	z := m.Snapshot().NextZIndex

	m.CloseAll()

	state := m.Snapshot()
	assert.Empty(t, state.Windows)
	assert.Empty(t, state.MiniApps)
	assert.Empty(t, state.FocusHistory)
	assert.Nil(t, state.FocusedID)
	assert.Equal(t, z, state.NextZIndex)
}

func TestEventOrder(t *testing.T) {
	m := newTestManager(t)

	rec := &recorder{}
	m.Subscribe(rec.handle)

	a := m.CreateWindow("auction", "", nil)
	assert.Equal(t, []types.EventType{types.EventCreated, types.EventFocused, types.EventStateChanged}, rec.types())

	rec.reset()
	m.CreateWindow("probe", "", nil)
	assert.Equal(t, []types.EventType{
		types.EventCreated, types.EventBlurred, types.EventFocused, types.EventStateChanged,
	}, rec.types())

	rec.reset()
	m.MinimizeWindow(a)
	m.RestoreWindow(a)
	m.MaximizeWindow(a)
	m.CloseWindow(a)
	assert.Equal(t, []types.EventType{
		types.EventMinimized, types.EventStateChanged,
		types.EventRestored, types.EventStateChanged,
		types.EventMaximized, types.EventStateChanged,
		types.EventClosed, types.EventStateChanged,
	}, rec.types())
}

func TestEventCarriesMutatedState(t *testing.T) {
	m := newTestManager(t)

	var seen types.State
	m.Subscribe(func(ev types.Event) {
		seen = ev.State
		// Handlers may read the manager.
		assert.Len(t, m.GetAllWindows(), len(ev.State.Windows))
	}, types.EventStateChanged)

	a := m.CreateWindow("auction", "", nil)

	require.Len(t, seen.Windows, 1)
	assert.Equal(t, a, seen.Windows[0].ID)
	require.NotNil(t, seen.FocusedID)
	assert.Equal(t, a, *seen.FocusedID)
}

func TestSnapshotIsolation(t *testing.T) {
	m := newTestManager(t)

	m.Subscribe(func(ev types.Event) {
		for i := range ev.State.Windows {
			ev.State.Windows[i].Title = "tampered"
		}
	})
	a := m.CreateWindow("auction", "", nil)

	p, _ := m.GetWindow(a)
	assert.Equal(t, "Noun Auction", p.Title)

	p.Metadata = map[string]interface{}{"x": 1}
	again, _ := m.GetWindow(a)
	assert.Nil(t, again.Metadata)
}

func TestSubscribeFilter(t *testing.T) {
	m := newTestManager(t)

	rec := &recorder{}
	subID := m.Subscribe(rec.handle, types.EventClosed)
	assert.Equal(t, 1, m.SubscriberCount())

	a := m.CreateWindow("auction", "", nil)
	m.CloseWindow(a)
	assert.Equal(t, []types.EventType{types.EventClosed}, rec.types())

	assert.True(t, m.Unsubscribe(subID))
	assert.False(t, m.Unsubscribe(subID))
	m.CreateWindow("auction", "", nil)
	assert.Len(t, rec.types(), 1)
}

func TestHandlerPanicRecovered(t *testing.T) {
	m := newTestManager(t)

	rec := &recorder{}
	m.Subscribe(func(types.Event) { panic("boom") })
	m.Subscribe(rec.handle)

	assert.NotPanics(t, func() { m.CreateWindow("auction", "", nil) })
	assert.Len(t, rec.types(), 3)
}

func TestHandlerMayMutateManager(t *testing.T) {
	m := newTestManager(t)

	a := m.CreateWindow("auction", "", nil)
	m.CreateWindow("treasury", "", nil)

	rec := &recorder{}
	m.Subscribe(func(ev types.Event) {
		m.FocusWindow(ev.PanelID)
	}, types.EventMinimized)
	m.Subscribe(rec.handle)

	done := make(chan struct{})
	go func() {
		m.MinimizeWindow(a)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("MinimizeWindow did not return")
	}

	panel, ok := m.GetWindow(a)
	require.True(t, ok)
	assert.True(t, panel.IsFocused)
	assert.False(t, panel.IsMinimized)

	// The nested batch follows the whole minimize batch.
	assert.Equal(t, []types.EventType{
		types.EventMinimized,
		types.EventStateChanged,
		types.EventBlurred,
		types.EventFocused,
		types.EventStateChanged,
	}, rec.types())

	// Later operations still deliver.
	rec.reset()
	m.ClearFocus()
	assert.Equal(t, []types.EventType{types.EventFocusCleared, types.EventStateChanged}, rec.types())
}

func TestConcurrentOperations(t *testing.T) {
	m := newTestManager(t)

	var mu sync.Mutex
	var seen []int
	m.Subscribe(func(ev types.Event) {
		mu.Lock()
		seen = append(seen, ev.State.NextZIndex)
		mu.Unlock()
	}, types.EventFocused)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			panelID := m.CreateWindow("auction", "", nil)
			m.FocusWindow(panelID)
		}()
	}
	wg.Wait()

	assert.Len(t, m.GetAllWindows(), 20)
	assert.Equal(t, 1, focusedCount(m))
	require.Len(t, seen, 40)
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i-1], seen[i], "notifications delivered out of order")
	}
}

func TestMetricsRecorded(t *testing.T) {
	metrics := monitoring.NewMetrics()
	m := newTestManager(t).WithMetrics(metrics)

	m.CreateWindow("auction", "", nil)
	m.CreateMiniApp("wallet", "", nil)

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
