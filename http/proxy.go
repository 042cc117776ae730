package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fwojciec/pagecap"
)

// Ensure ProxyClient implements pagecap.Fetcher at compile time.
var _ pagecap.Fetcher = (*ProxyClient)(nil)

// ProxyClient fetches through a cross-origin fetch proxy: a privileged
// endpoint that performs the request on the caller's behalf when the target
// host rejects direct in-page fetches. Callers cannot tell a proxied fetch
// from a direct one; failures surface through the same error taxonomy.
type ProxyClient struct {
	endpoint string
	client   *http.Client
}

// NewProxyClient creates a client for the proxy at the given endpoint.
func NewProxyClient(endpoint string, opts ...Option) *ProxyClient {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	return &ProxyClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: f.timeout},
	}
}

type proxyRequest struct {
	URL     string `json:"url"`
	Referer string `json:"referer"`
}

type proxyResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Fetch asks the proxy to perform the request and returns the payload.
func (c *ProxyClient) Fetch(ctx context.Context, url, referer string) ([]byte, error) {
	body, err := json.Marshal(proxyRequest{URL: url, Referer: referer})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for proxy %s", resp.StatusCode, c.endpoint)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var pr proxyResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("decoding proxy response: %w", err)
	}
	if !pr.Success {
		return nil, fmt.Errorf("HTTP proxy fetch of %s: %s", url, pr.Error)
	}
	return []byte(pr.Data), nil
}
