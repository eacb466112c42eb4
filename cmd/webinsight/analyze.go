package main

import (
	"encoding/json"
	"fmt"

	"github.com/webinsight-api/webinsight"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	if !deps.AnalyzerConfigured {
		fmt.Fprintln(deps.Stderr, "Hint: Set PERPLEXITY_API_KEY or GEMINI_API_KEY to enable analysis")
		return webinsight.Errorf(webinsight.EUNAVAILABLE, "no analysis backend configured")
	}

	result, err := deps.Service.Analyze(deps.Ctx, c.URL, webinsight.QueryType(c.Type), c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webinsight.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
