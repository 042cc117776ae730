package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagecap"
)

// DefaultRetryDelays returns the backoff delays for page-open retries:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// openWithRetry opens a page with backoff retries. len(delays)+1 total
// attempts; the context is checked before each sleep.
func openWithRetry(ctx context.Context, opener pagecap.PageOpener, url string, logger *slog.Logger, delays []time.Duration) (pagecap.Page, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, err := opener.Open(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		logger.Debug("retrying page open",
			"url", url,
			"attempt", attempt+2,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
