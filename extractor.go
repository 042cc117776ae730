package pagecap

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// Author is the author name from page metadata, if present.
	Author string

	// Image is the lead image URL from page metadata, if present.
	Image string

	// Tags are content tags from page metadata, if present.
	Tags []string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// The Generic adapter probes a cascade of extractors and keeps the first
// non-empty result.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
