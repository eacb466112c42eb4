// Package ratelimit provides request rate limiting: a sliding-window
// limiter for inbound clients and a token-bucket limiter pacing outbound
// requests per target host.
package ratelimit

import (
	"sync"
	"time"

	"github.com/webinsight-api/webinsight"
)

// Ensure SlidingWindow implements webinsight.Limiter at compile time.
var _ webinsight.Limiter = (*SlidingWindow)(nil)

// SlidingWindow admits at most limit requests per client within the
// trailing window, tracked as per-client timestamp logs. A background
// goroutine sweeps all clients every window and deletes the idle ones so
// memory stays bounded.
type SlidingWindow struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	clients map[string][]time.Time

	done      chan struct{}
	closeOnce sync.Once

	now func() time.Time // injectable clock for tests
}

// NewSlidingWindow creates a limiter admitting limit requests per window
// and starts its sweep goroutine. Call Close to stop it.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	sw := &SlidingWindow{
		limit:   limit,
		window:  window,
		clients: make(map[string][]time.Time),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go sw.sweepLoop()
	return sw
}

// Limit returns the admission limit per window.
func (sw *SlidingWindow) Limit() int { return sw.limit }

// Window returns the trailing window duration.
func (sw *SlidingWindow) Window() time.Duration { return sw.window }

// Allow reports whether the client may proceed right now. Admitted
// requests are recorded against the client; rejected ones are not.
func (sw *SlidingWindow) Allow(clientID string) bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	kept := sw.pruneLocked(clientID, now)
	if len(kept) >= sw.limit {
		return false
	}
	sw.clients[clientID] = append(kept, now)
	return true
}

// pruneLocked drops the client's timestamps that fell out of the window
// and stores the survivors. Caller must hold mu.
func (sw *SlidingWindow) pruneLocked(clientID string, now time.Time) []time.Time {
	entries := sw.clients[clientID]
	cutoff := now.Add(-sw.window)

	// Timestamps are appended in order, so the survivors are a suffix.
	i := 0
	for i < len(entries) && !entries[i].After(cutoff) {
		i++
	}
	kept := entries[i:]
	sw.clients[clientID] = kept
	return kept
}

// sweepLoop prunes every client each window, deleting the ones with no
// recent requests.
func (sw *SlidingWindow) sweepLoop() {
	ticker := time.NewTicker(sw.window)
	defer ticker.Stop()
	for {
		select {
		case <-sw.done:
			return
		case <-ticker.C:
			sw.sweep()
		}
	}
}

func (sw *SlidingWindow) sweep() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	for clientID := range sw.clients {
		if len(sw.pruneLocked(clientID, now)) == 0 {
			delete(sw.clients, clientID)
		}
	}
}

// Close stops the sweep goroutine. Safe to call more than once.
func (sw *SlidingWindow) Close() error {
	sw.closeOnce.Do(func() { close(sw.done) })
	return nil
}
