package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/pagecap"
)

// DefaultProxiedHosts are hosts known to reject direct in-page credentialed
// fetches. The rule is part of the extraction algorithm, not configuration.
var DefaultProxiedHosts = []string{
	"hdslb.com",
}

// Ensure Router implements pagecap.Fetcher at compile time.
var _ pagecap.Fetcher = (*Router)(nil)

// Router dispatches fetches by host: requests to proxied hosts go through
// the cross-origin proxy, everything else uses the direct fetcher.
type Router struct {
	direct  pagecap.Fetcher
	proxied pagecap.Fetcher
	hosts   []string
}

// NewRouter creates a Router over the given fetchers for
// DefaultProxiedHosts.
func NewRouter(direct, proxied pagecap.Fetcher) *Router {
	return &Router{direct: direct, proxied: proxied, hosts: DefaultProxiedHosts}
}

// Fetch routes the request to the proxy when the URL's host matches a
// proxied host suffix, otherwise fetches directly.
func (r *Router) Fetch(ctx context.Context, rawURL, referer string) ([]byte, error) {
	if r.proxied != nil && proxiedHost(rawURL, r.hosts) {
		return r.proxied.Fetch(ctx, rawURL, referer)
	}
	return r.direct.Fetch(ctx, rawURL, referer)
}

// proxiedHost reports whether the URL's hostname is one of the hosts or a
// subdomain of one.
func proxiedHost(rawURL string, hosts []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}
