package webinsight

import "context"

// QueryType selects the kind of analysis requested from the LLM backend.
type QueryType string

// QueryType values.
const (
	QuerySummary  QueryType = "summary"
	QueryAnalysis QueryType = "analysis"
	QueryCustom   QueryType = "custom"
)

// Validate returns an error if the query type is not recognized.
func (q QueryType) Validate() error {
	switch q {
	case QuerySummary, QueryAnalysis, QueryCustom:
		return nil
	}
	return Errorf(EINVALID, "invalid query type %q", string(q))
}

// Analyzer analyzes page content using an external language model.
// Implementations own their retry policy; callers see only the final
// disposition (result or a terminal EUNAVAILABLE error).
type Analyzer interface {
	Analyze(ctx context.Context, content string, queryType QueryType) (string, error)
}
