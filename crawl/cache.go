package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/fwojciec/hfscrape"
	"golang.org/x/sync/singleflight"
)

// MarkupCache memoizes fetched markup by URL for the duration of one run.
// Failed fetches are cached as absent, so a URL is fetched at most once.
// Concurrent misses for the same URL share one fetch.
type MarkupCache struct {
	fetcher hfscrape.Fetcher
	limiter hfscrape.HostLimiter
	logger  *slog.Logger

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	html string
	ok   bool
}

// NewMarkupCache creates an empty cache backed by fetcher.
// limiter and logger may be nil.
func NewMarkupCache(fetcher hfscrape.Fetcher, limiter hfscrape.HostLimiter, logger *slog.Logger) *MarkupCache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MarkupCache{
		fetcher: fetcher,
		limiter: limiter,
		logger:  logger,
		entries: make(map[string]cacheEntry),
	}
}

// GetOrFetch returns the markup for rawURL, fetching it on first use.
// Returns false if the markup is absent.
func (c *MarkupCache) GetOrFetch(ctx context.Context, rawURL string) (string, bool) {
	if e, ok := c.lookup(rawURL); ok {
		return e.html, e.ok
	}

	v, _, _ := c.group.Do(rawURL, func() (any, error) {
		if e, ok := c.lookup(rawURL); ok {
			return e, nil
		}
		e := c.fetch(ctx, rawURL)
		c.mu.Lock()
		c.entries[rawURL] = e
		c.mu.Unlock()
		return e, nil
	})
	e := v.(cacheEntry)
	return e.html, e.ok
}

// Len returns the number of cached URLs, including failures.
func (c *MarkupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MarkupCache) lookup(rawURL string) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[rawURL]
	return e, ok
}

func (c *MarkupCache) fetch(ctx context.Context, rawURL string) cacheEntry {
	if c.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			c.logger.Error("fetch failed", "url", rawURL, "err", err)
			return cacheEntry{}
		}
		if err := c.limiter.Wait(ctx, u.Host); err != nil {
			c.logger.Error("fetch failed", "url", rawURL, "err", err)
			return cacheEntry{}
		}
	}

	html, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		c.logger.Error("fetch failed", "url", rawURL, "err", err)
		return cacheEntry{}
	}
	return cacheEntry{html: html, ok: true}
}
