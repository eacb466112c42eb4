// Package retry executes failure-prone external calls with a fixed retry
// budget and a fixed inter-attempt delay.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/webinsight-api/webinsight"
)

// Do invokes op up to maxAttempts times, sleeping delay between attempts.
// The delay is fixed, not exponential. Each failed attempt short of the
// last is logged as a warning; the final failure is logged as an error and
// wrapped into an EUNAVAILABLE terminal error carrying its message.
//
// Do imposes no overall deadline across attempts; the context is checked
// only between them, so worst-case latency is the caller's to budget.
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), maxAttempts int, delay time.Duration, logger *slog.Logger) (T, error) {
	var zero T
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			logger.Error("call failed, max retries reached",
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"error", err,
			)
			break
		}

		logger.Warn("call failed, retrying",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	return zero, webinsight.Errorf(webinsight.EUNAVAILABLE,
		"call failed after %d attempts: %s", maxAttempts, failureMessage(lastErr))
}

// failureMessage extracts the underlying failure's message so the terminal
// error carries it verbatim.
func failureMessage(err error) string {
	var werr *webinsight.Error
	if errors.As(err, &werr) {
		return werr.Message
	}
	return err.Error()
}
