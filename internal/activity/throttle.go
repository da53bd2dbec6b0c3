// Package activity rate-limits the presence signals the host forwards to the
// embedded surface.
package activity

import (
	"sync"
	"time"
)

// DefaultInterval is the minimum spacing between forwarded activity signals.
const DefaultInterval = 200 * time.Millisecond

// Throttle enforces a minimum interval between successive activity signals,
// with one exemption: while the window is dimmed, every signal passes so the
// surface can undim without delay. A leading-edge-exempt throttle, not a
// fixed-rate limiter.
type Throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

// New creates a throttle. A non-positive interval selects the default.
func New(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Throttle{interval: interval}
}

// Allow reports whether a signal observed at now should be forwarded.
// Forwarded signals re-arm the spacing window, including while dimmed, so the
// first signal after undimming is throttled normally.
func (t *Throttle) Allow(now time.Time, dimmed bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !dimmed && now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}
