package mock

import "github.com/webinsight-api/webinsight"

var _ webinsight.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webinsight.Extractor.
type Extractor struct {
	ExtractFn func(rawHTML string) *webinsight.PageContent
}

func (e *Extractor) Extract(rawHTML string) *webinsight.PageContent {
	return e.ExtractFn(rawHTML)
}
