// Package events holds the connection status and fans it out to subscribers
// and named event listeners.
package events

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

// StatusFunc receives every status change.
type StatusFunc func(tonconnect.Status)

// Listener receives the payload of a named event.
type Listener func(payload any)

type settings struct {
	logger *zap.Logger
}

// Option configures the Hub.
type Option func(*settings)

// WithLogger sets a custom logger for the hub.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

type subscriber struct {
	id int
	fn StatusFunc
}

type listener struct {
	id int
	fn Listener
}

// Hub is safe for concurrent use. Callbacks run outside the hub's lock and a
// panicking callback is recovered.
//
// Status deliveries go through a FIFO queue drained by one goroutine at a
// time, so every subscriber sees statuses in the order they were set, also
// when a callback changes the status itself. A change made while another
// goroutine (or an enclosing callback) is delivering is handed to that
// delivery loop instead of being delivered before returning.
type Hub struct {
	mu          sync.Mutex
	status      tonconnect.Status
	nextID      int
	subscribers []subscriber
	listeners   map[tonconnect.Event][]listener
	queue       []func()
	dispatching bool

	logger *zap.Logger
}

// NewHub creates a Hub in the disconnected state.
func NewHub(opts ...Option) *Hub {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return &Hub{
		status:    tonconnect.Disconnected(),
		listeners: make(map[tonconnect.Event][]listener),
		logger:    s.logger,
	}
}

// Status returns the current status.
func (h *Hub) Status() tonconnect.Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// SetStatus replaces the status, notifies every subscriber and emits statusChange.
// Connected is derived from the wallet so the two can never disagree.
func (h *Hub) SetStatus(s tonconnect.Status) {
	s = tonconnect.Connected(s.Wallet)

	h.mu.Lock()
	h.status = s
	for _, sub := range h.subscribers {
		h.enqueueLocked("subscriber", func() { sub.fn(s) })
	}
	for _, l := range h.listeners[tonconnect.EventStatusChange] {
		h.enqueueLocked(string(tonconnect.EventStatusChange), func() { l.fn(s) })
	}
	h.mu.Unlock()

	h.dispatch()
}

// Subscribe registers fn and calls it with the current status before any
// later status. Unless a delivery is already in progress, that call happens
// before Subscribe returns. The returned function unsubscribes.
func (h *Hub) Subscribe(fn StatusFunc) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subscribers = append(h.subscribers, subscriber{id: id, fn: fn})
	current := h.status
	h.enqueueLocked("subscriber", func() { fn(current) })
	h.mu.Unlock()

	h.dispatch()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, sub := range h.subscribers {
			if sub.id == id {
				h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
				return
			}
		}
	}
}

// On registers fn for event. The returned function removes it.
func (h *Hub) On(event tonconnect.Event, fn Listener) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.listeners[event] = append(h.listeners[event], listener{id: id, fn: fn})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		ls := h.listeners[event]
		for i, l := range ls {
			if l.id == id {
				h.listeners[event] = append(ls[:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every listener registered for event.
func (h *Hub) Emit(event tonconnect.Event, payload any) {
	h.mu.Lock()
	ls := make([]listener, len(h.listeners[event]))
	copy(ls, h.listeners[event])
	h.mu.Unlock()

	for _, l := range ls {
		h.safeCall(string(event), func() { l.fn(payload) })
	}
}

// Clear drops every subscriber, listener and undelivered status. The status is kept.
func (h *Hub) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers = nil
	h.listeners = make(map[tonconnect.Event][]listener)
	h.queue = nil
}

func (h *Hub) enqueueLocked(target string, fn func()) {
	h.queue = append(h.queue, func() { h.safeCall(target, fn) })
}

// dispatch drains the queue unless a delivery loop is already running.
func (h *Hub) dispatch() {
	h.mu.Lock()
	if h.dispatching {
		h.mu.Unlock()
		return
	}
	h.dispatching = true
	for len(h.queue) > 0 {
		fn := h.queue[0]
		h.queue[0] = nil
		h.queue = h.queue[1:]
		h.mu.Unlock()
		fn()
		h.mu.Lock()
	}
	h.dispatching = false
	h.mu.Unlock()
}

func (h *Hub) safeCall(target string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("event callback panicked",
				zap.String("target", target),
				zap.String("panic", fmt.Sprint(r)))
		}
	}()
	fn()
}
