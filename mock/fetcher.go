package mock

import (
	"context"

	"github.com/fwojciec/pagecap"
)

var _ pagecap.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagecap.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url, referer string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url, referer string) ([]byte, error) {
	return f.FetchFn(ctx, url, referer)
}

var _ pagecap.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of pagecap.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *Limiter) Wait(ctx context.Context, host string) error {
	if l.WaitFn != nil {
		return l.WaitFn(ctx, host)
	}
	return nil
}
