package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultLimit is the default number of admitted requests per window
	DefaultLimit = 60

	// DefaultWindow is the default rolling window size
	DefaultWindow = 60 * time.Second
)

// Limiter bounds request throughput per client identity to a fixed
// budget per rolling window. State lives in memory only and resets on
// process restart. Construct one per server; there is no package-level
// singleton.
type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time
}

// Option configures the Limiter
type Option func(*Limiter)

// WithLimit sets the number of admitted requests per window
func WithLimit(limit int) Option {
	return func(l *Limiter) {
		l.limit = limit
	}
}

// WithWindow sets the rolling window size
func WithWindow(window time.Duration) Option {
	return func(l *Limiter) {
		l.window = window
	}
}

// WithClock injects a clock, used by tests
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a Limiter with the given options
func New(opts ...Option) *Limiter {
	l := &Limiter{
		limit:   DefaultLimit,
		window:  DefaultWindow,
		now:     time.Now,
		clients: map[string][]time.Time{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check records a request timestamp for the client and reports whether
// the request is admitted. A timestamp whose age equals the window is
// still inside the window (inclusive boundary). Rejected requests also
// record their timestamp, so a sustained flood stays rejected until it
// backs off.
func (l *Limiter) Check(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.clients[clientID]

	// Prune from the front: timestamps are appended in order, so the
	// expired prefix is contiguous. Entries exactly at the boundary
	// (age == window) are kept.
	drop := 0
	for drop < len(recent) && recent[drop].Before(cutoff) {
		drop++
	}
	recent = recent[drop:]

	recent = append(recent, now)
	l.clients[clientID] = recent

	return len(recent) <= l.limit
}

// Prune drops clients whose recorded timestamps have all expired,
// keeping the table bounded. Called periodically by the sweep worker.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	removed := 0
	for clientID, recent := range l.clients {
		if len(recent) == 0 || recent[len(recent)-1].Before(cutoff) {
			delete(l.clients, clientID)
			removed++
		}
	}
	return removed
}

// Clients returns the number of tracked client identities
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Limit returns the configured per-window budget
func (l *Limiter) Limit() int {
	return l.limit
}

// Window returns the configured rolling window size
func (l *Limiter) Window() time.Duration {
	return l.window
}
