package pagecap

import (
	"context"
	"time"
)

// Page abstracts DOM access to a platform page so that extraction algorithms
// (selector cascades, subtitle parsing, tie-break logic) are testable without
// a live browser. Live implementations drive a real browser tab; static
// implementations answer read-only queries over parsed HTML and return
// EUNAVAILABLE for interaction methods.
//
// Every DOM read is best-effort: selectors are an interface to third-party
// markup, not a stable wire format, so callers must treat any element as
// possibly absent.
type Page interface {
	// URL returns the page's current URL.
	URL() string

	// HTML returns the page's rendered HTML.
	HTML(ctx context.Context) (string, error)

	// Eval runs a JavaScript expression on the page and returns its result
	// as a string.
	Eval(ctx context.Context, js string) (string, error)

	// Element returns the first element matching the selector.
	// Returns ENOTFOUND if no element matches.
	Element(ctx context.Context, selector string) (Element, error)

	// Elements returns all elements matching the selector.
	Elements(ctx context.Context, selector string) ([]Element, error)

	// Click clicks the first element matching the selector.
	Click(ctx context.Context, selector string) error

	// WaitVisible polls until an element matching the selector is visible
	// or the timeout elapses.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// Screenshot captures the first element matching the selector as PNG.
	Screenshot(ctx context.Context, selector string) ([]byte, error)

	// Close releases page resources.
	Close() error
}

// Element is a handle to a DOM element obtained from a Page.
type Element interface {
	// Text returns the element's visible text.
	Text(ctx context.Context) (string, error)

	// Attr returns the named attribute, or "" if absent.
	Attr(ctx context.Context, name string) (string, error)

	// Find returns descendant elements matching the selector.
	Find(ctx context.Context, selector string) ([]Element, error)

	// Next returns the element's next sibling.
	// Returns ENOTFOUND if there is none.
	Next(ctx context.Context) (Element, error)
}

// PageOpener creates pages for URLs. Live implementations navigate a browser
// tab and wait for the page to load.
type PageOpener interface {
	Open(ctx context.Context, url string) (Page, error)
}
