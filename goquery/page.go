// Package goquery provides a static-HTML implementation of pagecap.Page.
// It answers read-only DOM queries over parsed HTML and is used for content
// parsing and for testing extraction algorithms without a live browser.
package goquery

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagecap"
)

// Ensure Page implements pagecap.Page at compile time.
var _ pagecap.Page = (*Page)(nil)

// Page is a read-only pagecap.Page over parsed HTML. Interaction methods
// (Eval, Click, WaitVisible, Screenshot) return EUNAVAILABLE.
type Page struct {
	doc *goquery.Document
	url string
}

// NewPage parses HTML and returns a static Page anchored at the given URL.
func NewPage(html, url string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagecap.Errorf(pagecap.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{doc: doc, url: url}, nil
}

// URL returns the page's URL.
func (p *Page) URL() string {
	return p.url
}

// HTML returns the parsed document rendered back to HTML.
func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.doc.Html()
}

// Eval is unavailable on a static page.
func (p *Page) Eval(ctx context.Context, js string) (string, error) {
	return "", pagecap.Errorf(pagecap.EUNAVAILABLE, "static page cannot evaluate script")
}

// Element returns the first element matching the selector.
func (p *Page) Element(ctx context.Context, selector string) (pagecap.Element, error) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, pagecap.Errorf(pagecap.ENOTFOUND, "no element matches %q", selector)
	}
	return &element{sel: sel}, nil
}

// Elements returns all elements matching the selector.
func (p *Page) Elements(ctx context.Context, selector string) ([]pagecap.Element, error) {
	var out []pagecap.Element
	p.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &element{sel: sel})
	})
	return out, nil
}

// Click is unavailable on a static page.
func (p *Page) Click(ctx context.Context, selector string) error {
	return pagecap.Errorf(pagecap.EUNAVAILABLE, "static page cannot click")
}

// WaitVisible is unavailable on a static page.
func (p *Page) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return pagecap.Errorf(pagecap.EUNAVAILABLE, "static page cannot wait for visibility")
}

// Screenshot is unavailable on a static page.
func (p *Page) Screenshot(ctx context.Context, selector string) ([]byte, error) {
	return nil, pagecap.Errorf(pagecap.EUNAVAILABLE, "static page cannot capture screenshots")
}

// Close is a no-op for a static page.
func (p *Page) Close() error {
	return nil
}

type element struct {
	sel *goquery.Selection
}

var _ pagecap.Element = (*element)(nil)

func (e *element) Text(ctx context.Context) (string, error) {
	return e.sel.Text(), nil
}

func (e *element) Attr(ctx context.Context, name string) (string, error) {
	return e.sel.AttrOr(name, ""), nil
}

func (e *element) Find(ctx context.Context, selector string) ([]pagecap.Element, error) {
	var out []pagecap.Element
	e.sel.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &element{sel: sel})
	})
	return out, nil
}

func (e *element) Next(ctx context.Context) (pagecap.Element, error) {
	next := e.sel.Next()
	if next.Length() == 0 {
		return nil, pagecap.Errorf(pagecap.ENOTFOUND, "element has no next sibling")
	}
	return &element{sel: next}, nil
}
