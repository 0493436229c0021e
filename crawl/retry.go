package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hfscrape"
)

var _ hfscrape.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns n backoff delays doubling from 1s.
func DefaultRetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for range n {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// RetryFetcher retries failed fetches after each of its delays.
// A fetcher with no delays makes a single attempt.
type RetryFetcher struct {
	next   hfscrape.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryFetcher wraps next with retries. logger may be nil.
func NewRetryFetcher(next hfscrape.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch attempts the fetch up to len(delays)+1 times.
// Returns the last error if every attempt fails.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.delays); attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(f.delays) {
			break
		}

		f.logger.Warn("retrying fetch",
			"url", url,
			"attempt", attempt+2,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}
	return "", lastErr
}

// Close closes the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
