// Package slog provides logging decorators for the core interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/webinsight-api/webinsight"
)

// Ensure LoggingFetcher implements webinsight.Fetcher.
var _ webinsight.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   webinsight.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webinsight.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch", "url", url, "duration", time.Since(begin), "err", err)
		return "", err
	}
	f.logger.Info("fetch", "url", url, "bytes", len(html), "duration", time.Since(begin))
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
