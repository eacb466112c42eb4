package mock

import (
	"context"

	"github.com/webinsight-api/webinsight"
)

var _ webinsight.InsightService = (*InsightService)(nil)

// InsightService is a mock implementation of webinsight.InsightService.
type InsightService struct {
	ScrapeFn  func(ctx context.Context, url string) (*webinsight.ScrapeResult, error)
	AnalyzeFn func(ctx context.Context, url string, queryType webinsight.QueryType, customQuery string) (*webinsight.AnalyzeResult, error)
}

func (s *InsightService) Scrape(ctx context.Context, url string) (*webinsight.ScrapeResult, error) {
	return s.ScrapeFn(ctx, url)
}

func (s *InsightService) Analyze(ctx context.Context, url string, queryType webinsight.QueryType, customQuery string) (*webinsight.AnalyzeResult, error) {
	return s.AnalyzeFn(ctx, url, queryType, customQuery)
}
