// Package http provides the HTTP implementations used at both edges of the
// service: the outbound page Fetcher and the inbound API server.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/webinsight-api/webinsight"
)

// userAgent identifies the fetcher as a desktop Chrome browser. Many sites
// serve reduced or blocked content to unidentified clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultFetchTimeout is the default timeout for page fetches.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements webinsight.Fetcher at compile time.
var _ webinsight.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML from URLs over plain HTTP. It does not execute
// JavaScript and never retries; resilience is a caller concern.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch issues a single GET against the URL and returns the body decoded
// to UTF-8. Timeouts map to ETIMEOUT; every other network or HTTP failure
// maps to EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", webinsight.Errorf(webinsight.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", webinsight.Errorf(webinsight.ETIMEOUT, "fetch timed out after %s: %s", f.timeout, url)
		}
		return "", webinsight.Errorf(webinsight.EUNAVAILABLE, "fetch failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return "", webinsight.Errorf(webinsight.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", webinsight.Errorf(webinsight.ETIMEOUT, "fetch timed out after %s: %s", f.timeout, url)
		}
		return "", webinsight.Errorf(webinsight.EUNAVAILABLE, "read body: %v", err)
	}

	return decodeBody(body, resp.Header.Get("Content-Type")), nil
}

// Close releases resources. No-op for the plain HTTP fetcher.
func (f *Fetcher) Close() error {
	return nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// decodeBody converts the response body to UTF-8. A server that declares
// the legacy ISO-8859-1 default usually never set a real charset, so the
// declaration is dropped and the encoding sniffed from the document itself
// (BOM, meta tags, content heuristics). Best effort: undecodable bodies are
// returned raw.
func decodeBody(body []byte, contentType string) string {
	if isLegacyDeclaration(contentType) {
		contentType = ""
	}
	enc, _, _ := charset.DetermineEncoding(body, contentType)
	if decoded, err := enc.NewDecoder().Bytes(body); err == nil {
		return string(decoded)
	}
	return string(body)
}

func isLegacyDeclaration(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "iso-8859-1") || strings.Contains(ct, "latin-1") || strings.Contains(ct, "latin1")
}
