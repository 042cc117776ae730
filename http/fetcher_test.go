package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pagecaphttp "github.com/fwojciec/pagecap/http"
	"github.com/fwojciec/pagecap/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and forwards the referer", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "https://www.bilibili.com/video/BV1", r.Header.Get("Referer"))
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		fetcher := pagecaphttp.NewFetcher()
		got, err := fetcher.Fetch(context.Background(), server.URL, "https://www.bilibili.com/video/BV1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"ok":true}`), got)
	})

	t.Run("cookies persist across requests", func(t *testing.T) {
		t.Parallel()

		var sawCookie bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie("session"); err == nil && c.Value == "abc" {
				sawCookie = true
			}
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := pagecaphttp.NewFetcher()
		_, err := fetcher.Fetch(context.Background(), server.URL, "")
		require.NoError(t, err)
		_, err = fetcher.Fetch(context.Background(), server.URL, "")
		require.NoError(t, err)
		assert.True(t, sawCookie)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		fetcher := pagecaphttp.NewFetcher()
		_, err := fetcher.Fetch(context.Background(), server.URL, "")
		assert.ErrorContains(t, err, "HTTP 403")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		fetcher := pagecaphttp.NewFetcher()
		_, err := fetcher.Fetch(ctx, server.URL, "")
		assert.Error(t, err)
	})
}

func TestProxyClient_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("posts url and referer and returns data", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				URL     string `json:"url"`
				Referer string `json:"referer"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "https://i0.hdslb.com/subs/zh.json", req.URL)
			assert.Equal(t, "https://www.bilibili.com/video/BV1", req.Referer)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": `{"body":[]}`})
		}))
		defer server.Close()

		client := pagecaphttp.NewProxyClient(server.URL)
		got, err := client.Fetch(context.Background(), "https://i0.hdslb.com/subs/zh.json", "https://www.bilibili.com/video/BV1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"body":[]}`), got)
	})

	t.Run("proxy-level failure surfaces the error message", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "blocked upstream"})
		}))
		defer server.Close()

		client := pagecaphttp.NewProxyClient(server.URL)
		_, err := client.Fetch(context.Background(), "https://i0.hdslb.com/x", "")
		assert.ErrorContains(t, err, "blocked upstream")
	})
}

func TestRouter_Fetch(t *testing.T) {
	t.Parallel()

	newRouter := func(directCalled, proxiedCalled *string) *pagecaphttp.Router {
		direct := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url, referer string) ([]byte, error) {
				*directCalled = url
				return []byte("direct"), nil
			},
		}
		proxied := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url, referer string) ([]byte, error) {
				*proxiedCalled = url
				return []byte("proxied"), nil
			},
		}
		return pagecaphttp.NewRouter(direct, proxied)
	}

	t.Run("known-blocked host goes through the proxy", func(t *testing.T) {
		t.Parallel()

		var direct, proxied string
		r := newRouter(&direct, &proxied)

		got, err := r.Fetch(context.Background(), "https://i0.hdslb.com/subs/zh.json", "ref")
		require.NoError(t, err)
		assert.Equal(t, []byte("proxied"), got)
		assert.Empty(t, direct)
	})

	t.Run("other hosts fetch directly", func(t *testing.T) {
		t.Parallel()

		var direct, proxied string
		r := newRouter(&direct, &proxied)

		got, err := r.Fetch(context.Background(), "https://api.bilibili.com/x/web-interface/view", "ref")
		require.NoError(t, err)
		assert.Equal(t, []byte("direct"), got)
		assert.Empty(t, proxied)
	})

	t.Run("matching is by host suffix, not substring", func(t *testing.T) {
		t.Parallel()

		var direct, proxied string
		r := newRouter(&direct, &proxied)

		_, err := r.Fetch(context.Background(), "https://nothdslb.com/x", "")
		require.NoError(t, err)
		assert.Empty(t, proxied)
		assert.NotEmpty(t, direct)
	})
}
