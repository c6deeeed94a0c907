package window

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/shared/types"
)

// Handler receives panel notifications. A handler may call back into the
// manager; batches it causes are delivered after the current one.
type Handler func(types.Event)

// SubscriptionID identifies a registered handler
type SubscriptionID string

type subscription struct {
	handler Handler
	filter  map[types.EventType]struct{} // nil means every type
}

func (s *subscription) wants(t types.EventType) bool {
	if s.filter == nil {
		return true
	}
	_, ok := s.filter[t]
	return ok
}

// bus fans notifications out to subscribers. Batches are queued in
// mutation order and delivered by whichever goroutine finds the queue idle,
// so a handler that mutates the manager queues its batch behind the current one.
type bus struct {
	mu    sync.RWMutex
	subs  map[SubscriptionID]*subscription
	order []SubscriptionID

	queueMu  sync.Mutex
	queue    [][]types.Event
	draining bool

	logger *zap.Logger
}

func newBus(logger *zap.Logger) *bus {
	return &bus{
		subs:   make(map[SubscriptionID]*subscription),
		logger: logger,
	}
}

func (b *bus) subscribe(handler Handler, eventTypes ...types.EventType) SubscriptionID {
	sub := &subscription{handler: handler}
	if len(eventTypes) > 0 {
		sub.filter = make(map[types.EventType]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			sub.filter[t] = struct{}{}
		}
	}

	id := SubscriptionID(uuid.New().String())

	b.mu.Lock()
	b.subs[id] = sub
	b.order = append(b.order, id)
	b.mu.Unlock()

	return id
}

func (b *bus) unsubscribe(id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[id]; !ok {
		return false
	}
	delete(b.subs, id)
	for i, sid := range b.order {
		if sid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

func (b *bus) count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// enqueue appends a batch. Callers hold the manager lock, which fixes the
// batch order.
func (b *bus) enqueue(events []types.Event) {
	b.queueMu.Lock()
	b.queue = append(b.queue, events)
	b.queueMu.Unlock()
}

// drain delivers queued batches unless another call is already doing so
func (b *bus) drain() {
	b.queueMu.Lock()
	if b.draining {
		b.queueMu.Unlock()
		return
	}
	b.draining = true

	for len(b.queue) > 0 {
		events := b.queue[0]
		b.queue[0] = nil
		b.queue = b.queue[1:]
		b.queueMu.Unlock()

		b.dispatch(events)

		b.queueMu.Lock()
	}

	b.draining = false
	b.queueMu.Unlock()
}

// dispatch hands every event to matching subscribers
func (b *bus) dispatch(events []types.Event) {
	b.mu.RLock()
	targets := make([]*subscription, 0, len(b.order))
	for _, id := range b.order {
		targets = append(targets, b.subs[id])
	}
	b.mu.RUnlock()

	for _, ev := range events {
		for _, sub := range targets {
			if sub.wants(ev.Type) {
				b.call(sub.handler, ev)
			}
		}
	}
}

func (b *bus) call(handler Handler, ev types.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panel event handler panicked",
				zap.String("event", string(ev.Type)),
				zap.Any("panic", r),
			)
		}
	}()
	// Each handler gets its own copy of the state.
	ev.State = ev.State.Clone()
	handler(ev)
}
