package pagecap

import "context"

// Fetcher performs an HTTP fetch on behalf of extraction code. The referer
// carries the originating page URL; implementations that proxy through a
// privileged context forward it so the upstream host sees an in-page request.
//
// Implementations share one error taxonomy regardless of transport: callers
// must not be able to tell a proxied fetch from a direct one.
type Fetcher interface {
	Fetch(ctx context.Context, url, referer string) ([]byte, error)
}

// Limiter gates outbound requests per host.
type Limiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, host string) error
}
