package webinsight

import "context"

// Limiter admits or rejects requests per opaque client identity.
// Rejection is an outcome, not an error.
type Limiter interface {
	// Allow reports whether the client may proceed right now.
	// Admitted requests count against the client's quota; rejected
	// requests do not.
	Allow(clientID string) bool
}

// TargetLimiter paces outbound requests per target host so concurrent
// scrapes do not hammer a single site.
type TargetLimiter interface {
	// Wait blocks until a request to the host is permitted, or the
	// context is canceled.
	Wait(ctx context.Context, host string) error
}
