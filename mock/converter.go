package mock

import "github.com/webinsight-api/webinsight"

var _ webinsight.Converter = (*Converter)(nil)

// Converter is a mock implementation of webinsight.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
