package webinsight

import (
	"context"
	"strings"
)

// PageContent is the result of extracting a fetched page. All fields may be
// empty when the page carries no matching markup; none are ever nil.
type PageContent struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	OpenGraph   map[string]string `json:"og_data"`
	Content     string            `json:"content"`
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch issues a single GET against the URL and returns the decoded
	// body. The context controls timeout and cancellation. Failures are
	// classified as ETIMEOUT or EUNAVAILABLE; Fetch never retries.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Extractor extracts structured content from raw HTML.
//
// Extract never fails: malformed or empty HTML degrades to zero-value
// fields rather than an error.
type Extractor interface {
	Extract(rawHTML string) *PageContent
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// ValidateTargetURL checks that a scrape target is an absolute HTTP(S) URL.
func ValidateTargetURL(rawURL string) error {
	if rawURL == "" {
		return Errorf(EINVALID, "URL is required")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return Errorf(EINVALID, "not a valid URL: must start with http:// or https://")
	}
	return nil
}
