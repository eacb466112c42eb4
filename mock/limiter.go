package mock

import (
	"context"

	"github.com/webinsight-api/webinsight"
)

var _ webinsight.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of webinsight.Limiter.
type Limiter struct {
	AllowFn func(clientID string) bool
}

func (l *Limiter) Allow(clientID string) bool {
	return l.AllowFn(clientID)
}

var _ webinsight.TargetLimiter = (*TargetLimiter)(nil)

// TargetLimiter is a mock implementation of webinsight.TargetLimiter.
type TargetLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *TargetLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
