// Package readability adapts go-readability as a fallback content extractor
// for pages where trafilatura finds nothing.
package readability

import (
	"strings"

	"github.com/fwojciec/pagecap"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagecap.Extractor at compile time.
var _ pagecap.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*pagecap.ExtractResult, error) {
	if rawHTML == "" {
		return nil, pagecap.Errorf(pagecap.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &pagecap.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Author:      article.Byline,
		Image:       article.Image,
	}, nil
}
