// Package ratelimit implements a per-client sliding-window admission gate.
package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // zero when allowed
}

// Limiter admits at most max requests per client within any rolling window.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time // admission times, oldest first

	stopOnce sync.Once
	stopCh   chan struct{}
}

type Option func(*Limiter)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option { return func(l *Limiter) { l.now = now } }

// New starts a limiter and its cleanup loop; call Stop when done.
func New(max int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		max:     max,
		window:  window,
		now:     time.Now,
		clients: make(map[string][]time.Time),
		stopCh:  make(chan struct{}),
	}
	for _, o := range opts {
		o(l)
	}
	go l.cleanupLoop()
	return l
}

func (l *Limiter) Stop() { l.stopOnce.Do(func() { close(l.stopCh) }) }

// Allow records an admission for client when the window has room.
// Rejections leave the window untouched.
func (l *Limiter) Allow(client string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := prune(l.clients[client], now.Add(-l.window))

	if len(hits) >= l.max {
		l.clients[client] = hits
		return Decision{
			Allowed:    false,
			Limit:      l.max,
			Remaining:  0,
			RetryAfter: hits[0].Add(l.window).Sub(now),
		}
	}

	hits = append(hits, now)
	l.clients[client] = hits
	return Decision{Allowed: true, Limit: l.max, Remaining: l.max - len(hits)}
}

// prune drops admissions at or before cutoff.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

// cleanup forgets clients with no admissions inside the current window.
func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-l.window)
	for k, hits := range l.clients {
		if hits = prune(hits, cutoff); len(hits) == 0 {
			delete(l.clients, k)
		} else {
			l.clients[k] = hits
		}
	}
}

// Clients reports how many clients currently hold window state.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
