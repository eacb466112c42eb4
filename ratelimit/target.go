package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/webinsight-api/webinsight"
)

// Ensure HostLimiter implements webinsight.TargetLimiter at compile time.
var _ webinsight.TargetLimiter = (*HostLimiter)(nil)

// HostLimiter paces outbound requests per target host using token buckets.
// Each host gets its own limiter with a burst of 1, so concurrent scrapes
// of different hosts proceed in parallel while a single host is never hit
// faster than the configured rate.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter with the given requests-per-second
// limit per host.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
