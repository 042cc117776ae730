// Package trafilatura adapts go-trafilatura as a pagecap content extractor.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagecap"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagecap.Extractor at compile time.
var _ pagecap.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content plus the page
// metadata the clip record carries: author, lead image and tags.
func (e *Extractor) Extract(rawHTML string) (*pagecap.ExtractResult, error) {
	if rawHTML == "" {
		return nil, pagecap.Errorf(pagecap.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &pagecap.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Author:      result.Metadata.Author,
		Image:       result.Metadata.Image,
		Tags:        result.Metadata.Tags,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
