// Package insight orchestrates page retrieval, content extraction, and
// LLM-backed analysis. It coordinates the fetcher, extractor, and analyzer
// behind the two operations the service exposes: scrape and analyze.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"github.com/webinsight-api/webinsight"
)

// Default policy limits, overridable per Service instance.
const (
	defaultMaxContentLength = webinsight.DefaultMaxContentLength
	defaultSummaryLimit     = 10000
	defaultAnalysisLimit    = 15000
	defaultPreviewLength    = 500
	defaultConcurrency      = 10
)

// Ensure Service implements webinsight.InsightService at compile time.
var _ webinsight.InsightService = (*Service)(nil)

// Service implements the scrape and analyze operations.
type Service struct {
	Fetcher   webinsight.Fetcher
	Extractor webinsight.Extractor

	// Analyzer is optional for Scrape (the result then has no summary)
	// and required for Analyze.
	Analyzer webinsight.Analyzer

	// Targets, when set, paces outbound fetches per host.
	Targets webinsight.TargetLimiter

	Logger *slog.Logger

	// MaxContentLength caps raw HTML before extraction; SummaryLimit and
	// AnalysisLimit truncate extracted content before it is sent to the
	// analysis backend. Zero values select the defaults.
	MaxContentLength int
	SummaryLimit     int
	AnalysisLimit    int
	PreviewLength    int

	// Concurrency bounds parallel fetches in ScrapeAll.
	Concurrency int
}

// Scrape fetches and extracts a page and, when an analyzer is configured,
// attaches a summary. A failed summary degrades to a partial result with
// SummaryErr set; it never fails the scrape.
func (s *Service) Scrape(ctx context.Context, rawURL string) (*webinsight.ScrapeResult, error) {
	page, err := s.fetchPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	result := &webinsight.ScrapeResult{
		URL:            rawURL,
		Title:          page.Title,
		Description:    page.Description,
		OpenGraph:      page.OpenGraph,
		ContentLength:  len(page.Content),
		ContentHash:    fmt.Sprintf("%016x", xxhash.Sum64String(page.Content)),
		ContentPreview: truncate(page.Content, s.previewLength()),
	}

	if s.Analyzer != nil {
		summary, err := s.Analyzer.Analyze(ctx, truncate(page.Content, s.summaryLimit()), webinsight.QuerySummary)
		if err != nil {
			s.logger().Error("summary failed", "url", rawURL, "error", err)
			result.SummaryErr = webinsight.ErrorMessage(err)
		} else {
			result.Summary = summary
		}
	}

	s.logger().Info("scrape completed", "url", rawURL, "title", result.Title, "content_length", result.ContentLength)
	return result, nil
}

// Analyze fetches and extracts a page, then runs the requested analysis.
// A custom query reframes the content and forces the custom query type.
// Unlike Scrape, an analysis failure fails the whole call.
func (s *Service) Analyze(ctx context.Context, rawURL string, queryType webinsight.QueryType, customQuery string) (*webinsight.AnalyzeResult, error) {
	if s.Analyzer == nil {
		return nil, webinsight.Errorf(webinsight.EUNAVAILABLE, "no analysis backend configured")
	}
	if queryType == "" {
		queryType = webinsight.QueryAnalysis
	}
	if err := queryType.Validate(); err != nil {
		return nil, err
	}

	page, err := s.fetchPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	content := truncate(page.Content, s.analysisLimit())
	if customQuery != "" {
		content = customQuery + "\n\nURL: " + rawURL + "\n\nContent:\n" + content
		queryType = webinsight.QueryCustom
	}

	analysis, err := s.Analyzer.Analyze(ctx, content, queryType)
	if err != nil {
		s.logger().Error("analysis failed", "url", rawURL, "query_type", queryType, "error", err)
		return nil, err
	}

	s.logger().Info("analysis completed", "url", rawURL, "query_type", queryType)
	return &webinsight.AnalyzeResult{
		URL:         rawURL,
		Title:       page.Title,
		Description: page.Description,
		Analysis:    analysis,
		Metadata: webinsight.AnalyzeMetadata{
			QueryType:     queryType,
			CustomQuery:   customQuery,
			ContentLength: len(page.Content),
		},
	}, nil
}

// fetchPage validates the URL, paces the target host, fetches the raw HTML
// (capped at MaxContentLength), and extracts it.
func (s *Service) fetchPage(ctx context.Context, rawURL string) (*webinsight.PageContent, error) {
	if err := webinsight.ValidateTargetURL(rawURL); err != nil {
		return nil, err
	}

	if s.Targets != nil {
		if host := hostOf(rawURL); host != "" {
			if err := s.Targets.Wait(ctx, host); err != nil {
				return nil, err
			}
		}
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if max := s.maxContentLength(); len(html) > max {
		s.logger().Warn("content too large, truncating", "url", rawURL, "bytes", len(html), "max", max)
		html = html[:max]
	}

	return s.Extractor.Extract(html), nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// truncate shortens s to at most limit runes, marking the cut with an
// ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Service) maxContentLength() int {
	if s.MaxContentLength > 0 {
		return s.MaxContentLength
	}
	return defaultMaxContentLength
}

func (s *Service) summaryLimit() int {
	if s.SummaryLimit > 0 {
		return s.SummaryLimit
	}
	return defaultSummaryLimit
}

func (s *Service) analysisLimit() int {
	if s.AnalysisLimit > 0 {
		return s.AnalysisLimit
	}
	return defaultAnalysisLimit
}

func (s *Service) previewLength() int {
	if s.PreviewLength > 0 {
		return s.PreviewLength
	}
	return defaultPreviewLength
}

func (s *Service) concurrency() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}
	return defaultConcurrency
}
