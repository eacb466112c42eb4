package webinsight

import "context"

// ScrapeResult is the outcome of scraping a URL: page metadata plus an
// optional LLM summary. A failed summary does not fail the scrape; the
// failure is carried in SummaryErr alongside the extracted metadata.
type ScrapeResult struct {
	URL            string            `json:"url"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	OpenGraph      map[string]string `json:"og_data"`
	ContentLength  int               `json:"content_length"`
	ContentHash    string            `json:"content_hash"`
	ContentPreview string            `json:"content_preview"`
	Summary        string            `json:"summary,omitempty"`
	SummaryErr     string            `json:"summary_error,omitempty"`
}

// AnalyzeResult is the outcome of analyzing a URL's content.
type AnalyzeResult struct {
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Analysis    string          `json:"analysis"`
	Metadata    AnalyzeMetadata `json:"metadata"`
}

// AnalyzeMetadata describes how an analysis was produced.
type AnalyzeMetadata struct {
	QueryType     QueryType `json:"query_type"`
	CustomQuery   string    `json:"custom_query,omitempty"`
	ContentLength int       `json:"content_length"`
}

// InsightService is the core scrape-and-analyze surface exposed to
// collaborators (the HTTP layer and the CLI).
type InsightService interface {
	// Scrape fetches and extracts a page, attaching a summary when an
	// analysis backend is configured. Summary failures degrade to a
	// partial result rather than an error.
	Scrape(ctx context.Context, url string) (*ScrapeResult, error)

	// Analyze fetches and extracts a page, then runs the requested
	// analysis. Unlike Scrape, an analysis failure fails the call.
	Analyze(ctx context.Context, url string, queryType QueryType, customQuery string) (*AnalyzeResult, error)
}
