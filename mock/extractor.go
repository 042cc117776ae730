package mock

import "github.com/fwojciec/pagecap"

var _ pagecap.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagecap.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pagecap.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pagecap.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ pagecap.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagecap.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
