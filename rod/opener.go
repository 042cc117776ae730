package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/pagecap"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the default number of pages opened before the browser
// is recycled.
const DefaultMaxPages = 75

// Ensure Opener implements pagecap.PageOpener at compile time.
var _ pagecap.PageOpener = (*Opener)(nil)

// Opener opens platform pages in a managed headless Chrome instance. Chrome
// accumulates memory over long sessions even with proper tab cleanup, so the
// browser is recycled after a fixed number of opened pages.
//
// Opener is safe for concurrent use.
type Opener struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int64
	maxPages  int64
	mu        sync.Mutex
	closed    atomic.Bool
}

// OpenerOption configures an Opener.
type OpenerOption func(*Opener)

// WithMaxPages sets the number of opened pages before the browser is
// recycled. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) OpenerOption {
	return func(o *Opener) {
		o.maxPages = n
	}
}

// NewOpener launches a headless Chrome browser. Close must be called when
// the Opener is no longer needed.
func NewOpener(opts ...OpenerOption) (*Opener, error) {
	o := &Opener{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(o)
	}
	if err := o.launchBrowser(); err != nil {
		return nil, err
	}
	return o, nil
}

// Open navigates a fresh tab to the URL and waits for the page to load.
// The returned page must be closed by the caller.
func (o *Opener) Open(ctx context.Context, url string) (pagecap.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := o.acquireBrowser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	atomic.AddInt64(&o.pageCount, 1)

	p := page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		page.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		page.Close()
		return nil, fmt.Errorf("loading %s: %w", url, err)
	}

	return &Page{page: page, url: url}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (o *Opener) Close() error {
	if !o.closed.CompareAndSwap(false, true) {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closeBrowser()
}

// acquireBrowser returns the current browser, recycling it first when the
// page count has reached maxPages.
func (o *Opener) acquireBrowser() *rod.Browser {
	o.mu.Lock()
	defer o.mu.Unlock()

	if atomic.LoadInt64(&o.pageCount) >= o.maxPages {
		o.recycleBrowser()
	}
	return o.browser
}

// launchBrowser starts a new browser instance with stability flags.
func (o *Opener) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	o.browser = browser
	o.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (o *Opener) closeBrowser() error {
	var err error
	if o.browser != nil {
		err = o.browser.Close()
		o.browser = nil
	}
	if o.launcher != nil {
		o.launcher.Kill()
		o.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one. If launching
// the new browser fails, the old browser is kept.
// Must be called with mu held.
func (o *Opener) recycleBrowser() {
	oldBrowser := o.browser
	oldLauncher := o.launcher
	o.browser = nil
	o.launcher = nil

	if err := o.launchBrowser(); err != nil {
		o.browser = oldBrowser
		o.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&o.pageCount, 0)
}

// LauncherPID returns the process ID of the browser launcher. It exists for
// tests that verify cleanup.
func (o *Opener) LauncherPID() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.launcher == nil {
		return 0
	}
	return o.launcher.PID()
}
