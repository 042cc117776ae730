// Package rod implements the pagecap page accessor over a live Chrome
// browser using go-rod.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pagecap"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Page implements pagecap.Page at compile time.
var _ pagecap.Page = (*Page)(nil)

// Page drives a live browser tab. DOM queries never wait for elements to
// appear; callers that need to wait use WaitVisible or poll.
type Page struct {
	page *rod.Page
	url  string
}

// URL returns the URL the page was opened with.
func (p *Page) URL() string {
	return p.url
}

// HTML returns the tab's rendered HTML.
func (p *Page) HTML(ctx context.Context) (string, error) {
	html, err := p.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("reading html: %w", err)
	}
	return html, nil
}

// Eval evaluates a JavaScript expression in the tab and returns the result
// rendered as a string.
func (p *Page) Eval(ctx context.Context, js string) (string, error) {
	obj, err := p.page.Context(ctx).Eval("() => " + js)
	if err != nil {
		return "", fmt.Errorf("evaluating script: %w", err)
	}
	return obj.Value.Str(), nil
}

// Element returns the first element matching the selector without waiting.
func (p *Page) Element(ctx context.Context, selector string) (pagecap.Element, error) {
	has, el, err := p.page.Context(ctx).Has(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	if !has {
		return nil, pagecap.Errorf(pagecap.ENOTFOUND, "no element matches %q", selector)
	}
	return &element{el: el}, nil
}

// Elements returns all elements matching the selector.
func (p *Page) Elements(ctx context.Context, selector string) ([]pagecap.Element, error) {
	els, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	out := make([]pagecap.Element, len(els))
	for i, el := range els {
		out[i] = &element{el: el}
	}
	return out, nil
}

// Click clicks the first element matching the selector.
func (p *Page) Click(ctx context.Context, selector string) error {
	el, err := p.Element(ctx, selector)
	if err != nil {
		return err
	}
	if err := el.(*element).el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("clicking %q: %w", selector, err)
	}
	return nil
}

// WaitVisible waits until an element matching the selector is visible.
func (p *Page) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	el, err := p.page.Context(waitCtx).Element(selector)
	if err != nil {
		return pagecap.Errorf(pagecap.EUNAVAILABLE, "waiting for %q: %v", selector, err)
	}
	if err := el.WaitVisible(); err != nil {
		return pagecap.Errorf(pagecap.EUNAVAILABLE, "waiting for %q: %v", selector, err)
	}
	return nil
}

// Screenshot captures the first element matching the selector as PNG.
func (p *Page) Screenshot(ctx context.Context, selector string) ([]byte, error) {
	el, err := p.Element(ctx, selector)
	if err != nil {
		return nil, err
	}
	data, err := el.(*element).el.Context(ctx).Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("capturing %q: %w", selector, err)
	}
	return data, nil
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.page.Close()
}

type element struct {
	el *rod.Element
}

func (e *element) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *element) Attr(ctx context.Context, name string) (string, error) {
	val, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil
	}
	return *val, nil
}

func (e *element) Find(ctx context.Context, selector string) ([]pagecap.Element, error) {
	els, err := e.el.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	out := make([]pagecap.Element, len(els))
	for i, el := range els {
		out[i] = &element{el: el}
	}
	return out, nil
}

func (e *element) Next(ctx context.Context) (pagecap.Element, error) {
	el, err := e.el.Context(ctx).Next()
	if err != nil {
		return nil, pagecap.Errorf(pagecap.ENOTFOUND, "no next sibling")
	}
	return &element{el: el}, nil
}
