package mock

import (
	"context"

	"github.com/webinsight-api/webinsight"
)

var _ webinsight.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of webinsight.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, content string, queryType webinsight.QueryType) (string, error)
}

func (a *Analyzer) Analyze(ctx context.Context, content string, queryType webinsight.QueryType) (string, error) {
	return a.AnalyzeFn(ctx, content, queryType)
}
