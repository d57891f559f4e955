package platform

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// DefaultHistorySize is how many opened links a Relay keeps for inspection.
const DefaultHistorySize = 16

type relaySettings struct {
	logger      *zap.Logger
	initialURL  string
	refuse      bool
	historySize int
}

// RelayOption configures a Relay.
type RelayOption func(*relaySettings)

// WithRelayLogger sets a custom logger for the relay.
func WithRelayLogger(l *zap.Logger) RelayOption {
	return func(s *relaySettings) { s.logger = l }
}

// WithInitialURL sets the link reported once by InitialURL.
func WithInitialURL(url string) RelayOption {
	return func(s *relaySettings) { s.initialURL = url }
}

// WithHistorySize bounds the opened-link history. Zero disables recording.
func WithHistorySize(n int) RelayOption {
	return func(s *relaySettings) {
		if n >= 0 {
			s.historySize = n
		}
	}
}

// WithRefuseOpen makes OpenURL report that no app accepted the link.
func WithRefuseOpen() RelayOption {
	return func(s *relaySettings) { s.refuse = true }
}

// Relay is a linking capability for hosts that move deep links themselves,
// such as a daemon that returns the wallet link to an HTTP caller and later
// receives the callback link over HTTP. Outbound links are handed to whoever
// is waiting in Expect and the most recent ones are kept in a bounded
// history. Inbound links are pushed with Deliver to the registered listeners.
type Relay struct {
	mu            sync.Mutex
	initialURL    string
	initialServed bool
	refuse        bool
	opened        []string
	historySize   int
	openedTotal   int
	nextID        int
	waiters       map[int]chan string
	listeners     map[int]func(string)

	logger *zap.Logger
}

// NewRelay creates an empty Relay.
func NewRelay(opts ...RelayOption) *Relay {
	s := relaySettings{logger: zap.NewNop(), historySize: DefaultHistorySize}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return &Relay{
		initialURL:  s.initialURL,
		refuse:      s.refuse,
		historySize: s.historySize,
		waiters:     make(map[int]chan string),
		listeners:   make(map[int]func(string)),
		logger:      s.logger,
	}
}

// OpenURL passes url to every waiter registered with Expect and records it
// in the history, dropping the oldest entry once the history is full.
func (r *Relay) OpenURL(_ context.Context, url string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refuse {
		return false, nil
	}
	r.openedTotal++
	r.record(url)
	for id, ch := range r.waiters {
		ch <- url
		delete(r.waiters, id)
	}
	r.logger.Debug("relay opened url", zap.Int("length", len(url)))
	return true, nil
}

// InitialURL returns the configured initial link on the first call and "" afterwards.
func (r *Relay) InitialURL(context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.initialServed {
		return "", nil
	}
	r.initialServed = true
	return r.initialURL, nil
}

// AddURLListener registers fn for links passed to Deliver.
func (r *Relay) AddURLListener(fn func(url string)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Deliver pushes an inbound link to every listener and returns how many were called.
func (r *Relay) Deliver(url string) int {
	r.mu.Lock()
	fns := make([]func(string), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(url)
	}
	return len(fns)
}

// Expect returns a channel that receives the next opened link, and a
// function that withdraws the expectation.
func (r *Relay) Expect() (<-chan string, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	ch := make(chan string, 1)
	r.waiters[id] = ch
	return ch, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.waiters, id)
	}
}

func (r *Relay) record(url string) {
	switch {
	case r.historySize == 0:
	case len(r.opened) < r.historySize:
		r.opened = append(r.opened, url)
	default:
		copy(r.opened, r.opened[1:])
		r.opened[len(r.opened)-1] = url
	}
}

// OpenedCount returns how many links were opened, including those no longer
// in the history.
func (r *Relay) OpenedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openedTotal
}

// Opened returns the links in the history, oldest first.
func (r *Relay) Opened() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.opened))
	copy(out, r.opened)
	return out
}

// LastOpened returns the most recent opened link.
func (r *Relay) LastOpened() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.opened) == 0 {
		return "", false
	}
	return r.opened[len(r.opened)-1], true
}
