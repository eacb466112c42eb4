package insight

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/webinsight-api/webinsight"
)

// Outcome is the per-URL result of a batch scrape.
type Outcome struct {
	URL    string
	Result *webinsight.ScrapeResult
	Err    error
}

// Progress reports batch scrape progress.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is called as URLs finish, from multiple goroutines.
type ProgressFunc func(Progress)

// ScrapeAll scrapes the URLs concurrently, bounded by Concurrency.
// Per-URL failures are captured in the outcomes rather than aborting the
// batch; the returned error is non-nil only when the context is canceled.
func (s *Service) ScrapeAll(ctx context.Context, urls []string, progress ProgressFunc) ([]Outcome, error) {
	outcomes := make([]Outcome, len(urls))

	var completed atomic.Int64
	total := len(urls)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())

	for i, rawURL := range urls {
		g.Go(func() error {
			result, err := s.Scrape(ctx, rawURL)
			outcomes[i] = Outcome{URL: rawURL, Result: result, Err: err}

			if progress != nil {
				progress(Progress{
					URL:       rawURL,
					Completed: int(completed.Add(1)),
					Total:     total,
					Err:       err,
				})
			}
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
