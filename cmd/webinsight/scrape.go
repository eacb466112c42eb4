package main

import (
	"encoding/json"
	"fmt"

	"github.com/webinsight-api/webinsight"
	"github.com/webinsight-api/webinsight/insight"
)

// scrapeOutput is the per-URL JSON emitted by the scrape command.
type scrapeOutput struct {
	URL    string                   `json:"url"`
	Result *webinsight.ScrapeResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	svc, ok := deps.Service.(*insight.Service)
	if !ok {
		return webinsight.Errorf(webinsight.EINTERNAL, "batch scraping is unavailable")
	}
	svc.Concurrency = c.Concurrency

	outcomes, err := svc.ScrapeAll(deps.Ctx, c.URLs, func(p insight.Progress) {
		status := "ok"
		if p.Err != nil {
			status = webinsight.ErrorMessage(p.Err)
		}
		fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n", p.Completed, p.Total, p.URL, status)
	})
	if err != nil {
		return err
	}

	outputs := make([]scrapeOutput, len(outcomes))
	failed := 0
	for i, o := range outcomes {
		outputs[i] = scrapeOutput{URL: o.URL, Result: o.Result}
		if o.Err != nil {
			outputs[i].Error = webinsight.ErrorMessage(o.Err)
			failed++
		}
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outputs); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(outcomes))
	}
	return nil
}
