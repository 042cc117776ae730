package mock

import (
	"context"
	"time"

	"github.com/fwojciec/pagecap"
)

var _ pagecap.Page = (*Page)(nil)

// Page is a mock implementation of pagecap.Page.
type Page struct {
	URLFn         func() string
	HTMLFn        func(ctx context.Context) (string, error)
	EvalFn        func(ctx context.Context, js string) (string, error)
	ElementFn     func(ctx context.Context, selector string) (pagecap.Element, error)
	ElementsFn    func(ctx context.Context, selector string) ([]pagecap.Element, error)
	ClickFn       func(ctx context.Context, selector string) error
	WaitVisibleFn func(ctx context.Context, selector string, timeout time.Duration) error
	ScreenshotFn  func(ctx context.Context, selector string) ([]byte, error)
	CloseFn       func() error
}

func (p *Page) URL() string {
	if p.URLFn != nil {
		return p.URLFn()
	}
	return ""
}

func (p *Page) HTML(ctx context.Context) (string, error) {
	if p.HTMLFn != nil {
		return p.HTMLFn(ctx)
	}
	return "", nil
}

func (p *Page) Eval(ctx context.Context, js string) (string, error) {
	if p.EvalFn != nil {
		return p.EvalFn(ctx, js)
	}
	return "", pagecap.Errorf(pagecap.EUNAVAILABLE, "eval not mocked")
}

func (p *Page) Element(ctx context.Context, selector string) (pagecap.Element, error) {
	if p.ElementFn != nil {
		return p.ElementFn(ctx, selector)
	}
	return nil, pagecap.Errorf(pagecap.ENOTFOUND, "no element matches %q", selector)
}

func (p *Page) Elements(ctx context.Context, selector string) ([]pagecap.Element, error) {
	if p.ElementsFn != nil {
		return p.ElementsFn(ctx, selector)
	}
	return nil, nil
}

func (p *Page) Click(ctx context.Context, selector string) error {
	if p.ClickFn != nil {
		return p.ClickFn(ctx, selector)
	}
	return pagecap.Errorf(pagecap.ENOTFOUND, "no element matches %q", selector)
}

func (p *Page) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if p.WaitVisibleFn != nil {
		return p.WaitVisibleFn(ctx, selector, timeout)
	}
	return pagecap.Errorf(pagecap.ENOTFOUND, "no element matches %q", selector)
}

func (p *Page) Screenshot(ctx context.Context, selector string) ([]byte, error) {
	if p.ScreenshotFn != nil {
		return p.ScreenshotFn(ctx, selector)
	}
	return nil, pagecap.Errorf(pagecap.EUNAVAILABLE, "screenshot not mocked")
}

func (p *Page) Close() error {
	if p.CloseFn != nil {
		return p.CloseFn()
	}
	return nil
}

var _ pagecap.Element = (*Element)(nil)

// Element is a mock implementation of pagecap.Element.
type Element struct {
	TextFn func(ctx context.Context) (string, error)
	AttrFn func(ctx context.Context, name string) (string, error)
	FindFn func(ctx context.Context, selector string) ([]pagecap.Element, error)
	NextFn func(ctx context.Context) (pagecap.Element, error)
}

func (e *Element) Text(ctx context.Context) (string, error) {
	if e.TextFn != nil {
		return e.TextFn(ctx)
	}
	return "", nil
}

func (e *Element) Attr(ctx context.Context, name string) (string, error) {
	if e.AttrFn != nil {
		return e.AttrFn(ctx, name)
	}
	return "", nil
}

func (e *Element) Find(ctx context.Context, selector string) ([]pagecap.Element, error) {
	if e.FindFn != nil {
		return e.FindFn(ctx, selector)
	}
	return nil, nil
}

func (e *Element) Next(ctx context.Context) (pagecap.Element, error) {
	if e.NextFn != nil {
		return e.NextFn(ctx)
	}
	return nil, pagecap.Errorf(pagecap.ENOTFOUND, "element has no next sibling")
}

var _ pagecap.PageOpener = (*PageOpener)(nil)

// PageOpener is a mock implementation of pagecap.PageOpener.
type PageOpener struct {
	OpenFn func(ctx context.Context, url string) (pagecap.Page, error)
}

func (o *PageOpener) Open(ctx context.Context, url string) (pagecap.Page, error) {
	return o.OpenFn(ctx, url)
}
