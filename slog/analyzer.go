package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/webinsight-api/webinsight"
)

// Ensure LoggingAnalyzer implements webinsight.Analyzer.
var _ webinsight.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with per-call logging.
type LoggingAnalyzer struct {
	next   webinsight.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next webinsight.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the outcome.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, content string, queryType webinsight.QueryType) (string, error) {
	begin := time.Now()
	result, err := a.next.Analyze(ctx, content, queryType)
	if err != nil {
		a.logger.Error("analyze", "query_type", queryType, "content_length", len(content), "duration", time.Since(begin), "err", err)
		return "", err
	}
	a.logger.Info("analyze", "query_type", queryType, "content_length", len(content), "result_length", len(result), "duration", time.Since(begin))
	return result, nil
}
