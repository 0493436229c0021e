package crawl_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/hfscrape/crawl"
	"github.com/fwojciec/hfscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkupCache_GetOrFetch(t *testing.T) {
	t.Parallel()

	t.Run("fetches once and serves from cache", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls.Add(1)
				return "<html>" + url + "</html>", nil
			},
		}
		cache := crawl.NewMarkupCache(fetcher, nil, nil)

		first, ok := cache.GetOrFetch(context.Background(), "https://hub.test/a")
		require.True(t, ok)
		second, ok := cache.GetOrFetch(context.Background(), "https://hub.test/a")
		require.True(t, ok)

		assert.Equal(t, "<html>https://hub.test/a</html>", first)
		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("caches failures as absent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var calls atomic.Int32
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls.Add(1)
				return "", errors.New("HTTP 404 for " + url)
			},
		}
		cache := crawl.NewMarkupCache(fetcher, nil, logger)

		_, ok := cache.GetOrFetch(context.Background(), "https://hub.test/missing")
		assert.False(t, ok)
		_, ok = cache.GetOrFetch(context.Background(), "https://hub.test/missing")
		assert.False(t, ok)

		assert.Equal(t, int32(1), calls.Load())
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "url=https://hub.test/missing")
	})

	t.Run("waits on limiter with URL host", func(t *testing.T) {
		t.Parallel()

		var hosts []string
		limiter := &mock.HostLimiter{
			WaitFn: func(ctx context.Context, host string) error {
				hosts = append(hosts, host)
				return nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "ok", nil
			},
		}
		cache := crawl.NewMarkupCache(fetcher, limiter, nil)

		cache.GetOrFetch(context.Background(), "https://hub.test/a")
		cache.GetOrFetch(context.Background(), "https://hub.test/a")
		cache.GetOrFetch(context.Background(), "https://other.test/b")

		assert.Equal(t, []string{"hub.test", "other.test"}, hosts)
	})

	t.Run("limiter error is a fetch failure", func(t *testing.T) {
		t.Parallel()

		limiter := &mock.HostLimiter{
			WaitFn: func(ctx context.Context, host string) error {
				return context.Canceled
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Fatal("fetch should not be called")
				return "", nil
			},
		}
		cache := crawl.NewMarkupCache(fetcher, limiter, nil)

		_, ok := cache.GetOrFetch(context.Background(), "https://hub.test/a")

		assert.False(t, ok)
	})

	t.Run("concurrent misses share one fetch", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		release := make(chan struct{})
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls.Add(1)
				<-release
				return "shared", nil
			},
		}
		cache := crawl.NewMarkupCache(fetcher, nil, nil)

		var wg sync.WaitGroup
		results := make([]string, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], _ = cache.GetOrFetch(context.Background(), "https://hub.test/a")
			}()
		}
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, r := range results {
			assert.Equal(t, "shared", r)
		}
	})
}
