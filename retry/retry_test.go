package retry_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webinsight-api/webinsight"
	"github.com/webinsight-api/webinsight/retry"
)

// captureHandler records emitted log records so tests can count failure
// and terminal events.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

func TestDo(t *testing.T) {
	t.Parallel()

	t.Run("returns immediately on first success", func(t *testing.T) {
		t.Parallel()

		handler := &captureHandler{}
		calls := 0

		result, err := retry.Do(context.Background(), func(context.Context) (string, error) {
			calls++
			return "ok", nil
		}, 3, time.Millisecond, slog.New(handler))

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, calls)
		assert.Zero(t, handler.count(slog.LevelWarn))
		assert.Zero(t, handler.count(slog.LevelError))
	})

	t.Run("succeeds on third attempt after two failures", func(t *testing.T) {
		t.Parallel()

		handler := &captureHandler{}
		calls := 0

		result, err := retry.Do(context.Background(), func(context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("transient")
			}
			return "ok", nil
		}, 3, time.Millisecond, slog.New(handler))

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 2, handler.count(slog.LevelWarn))
		assert.Zero(t, handler.count(slog.LevelError))
	})

	t.Run("terminal error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		handler := &captureHandler{}
		calls := 0

		_, err := retry.Do(context.Background(), func(context.Context) (string, error) {
			calls++
			return "", errors.New("the backend is down")
		}, 3, time.Millisecond, slog.New(handler))

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, webinsight.EUNAVAILABLE, webinsight.ErrorCode(err))
		assert.Contains(t, webinsight.ErrorMessage(err), "the backend is down")

		// Three failure events total; exactly one is terminal.
		assert.Equal(t, 2, handler.count(slog.LevelWarn))
		assert.Equal(t, 1, handler.count(slog.LevelError))
	})

	t.Run("terminal error preserves application error messages", func(t *testing.T) {
		t.Parallel()

		_, err := retry.Do(context.Background(), func(context.Context) (string, error) {
			return "", webinsight.Errorf(webinsight.EUNAVAILABLE, "HTTP 503 for upstream")
		}, 2, time.Millisecond, slog.New(&captureHandler{}))

		require.Error(t, err)
		assert.Contains(t, webinsight.ErrorMessage(err), "HTTP 503 for upstream")
	})

	t.Run("delay separates attempts", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		_, err := retry.Do(context.Background(), func(context.Context) (string, error) {
			return "", errors.New("nope")
		}, 3, 30*time.Millisecond, slog.New(&captureHandler{}))
		elapsed := time.Since(start)

		require.Error(t, err)
		assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond, "two sleeps of 30ms expected")
	})

	t.Run("context cancellation aborts the sleep", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		calls := 0
		_, err := retry.Do(ctx, func(context.Context) (string, error) {
			calls++
			return "", errors.New("nope")
		}, 5, time.Second, slog.New(&captureHandler{}))

		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, calls)
	})

	t.Run("treats non-positive max attempts as one", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := retry.Do(context.Background(), func(context.Context) (string, error) {
			calls++
			return "", errors.New("nope")
		}, 0, time.Millisecond, slog.New(&captureHandler{}))

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
