// Package crawl orchestrates a scrape of the model hub. It plans the listing
// pages, collects model links, extracts each model's detail page and
// aggregates the records in discovery order.
package crawl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/hfscrape"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates one scrape of the model hub.
type Scraper struct {
	Fetcher     hfscrape.Fetcher
	Listing     hfscrape.ListingParser
	Details     hfscrape.DetailParser
	RateLimiter hfscrape.HostLimiter
	Logger      *slog.Logger

	// Origin is prepended to model addresses. Defaults to hfscrape.DefaultOrigin.
	Origin string

	// MaxPages truncates the planned listing pages. Zero means no limit.
	MaxPages int

	// BatchSize groups listing pages; BatchDelay pauses between groups.
	BatchSize  int
	BatchDelay time.Duration

	// Concurrency bounds detail page fetches in flight. Defaults to 1.
	Concurrency int
}

// Result holds the outcome of a scrape.
type Result struct {
	ListingPages int
	Records      []*hfscrape.ModelRecord

	// Failed counts pages whose markup was absent or unparsable.
	Failed int
}

// Scrape runs the pipeline against the listing at baseURL.
// Per-page failures are logged and skipped; only context cancellation is
// returned as an error.
func (s *Scraper) Scrape(ctx context.Context, baseURL string) (*Result, error) {
	begin := time.Now()
	logger := s.logger()
	cache := NewMarkupCache(s.Fetcher, s.RateLimiter, logger)
	result := &Result{Records: []*hfscrape.ModelRecord{}}

	pages := s.plan(ctx, cache, baseURL)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.ListingPages = len(pages)

	links, failed := s.collectLinks(ctx, cache, pages)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Failed += failed

	details, failed, err := s.extractDetails(ctx, cache, links)
	if err != nil {
		return nil, err
	}
	result.Failed += failed

	result.Records = hfscrape.Aggregate(links, details)

	logger.Info("scrape finished",
		"url", baseURL,
		"pages", result.ListingPages,
		"records", len(result.Records),
		"failed", result.Failed,
		"duration", time.Since(begin),
	)
	return result, nil
}

// plan returns the listing URLs to visit, or nil if the base page is
// unreachable or has no usable pagination.
func (s *Scraper) plan(ctx context.Context, cache *MarkupCache, baseURL string) []string {
	logger := s.logger()

	html, ok := cache.GetOrFetch(ctx, baseURL)
	if !ok {
		logger.Error("base listing page unreachable", "url", baseURL)
		return nil
	}

	maxPage, err := s.Listing.MaxPage(html)
	if err != nil {
		logger.Error("pagination planning failed", "url", baseURL, "err", err)
		return nil
	}

	pages, err := PlanPages(baseURL, maxPage, s.MaxPages)
	if err != nil {
		logger.Error("pagination planning failed", "url", baseURL, "err", err)
		return nil
	}

	logger.Info("planned listing pages",
		"url", baseURL,
		"max_page", maxPage,
		"pages", len(pages),
	)
	return pages
}

// collectLinks visits listing pages in order and returns their model links
// in discovery order.
func (s *Scraper) collectLinks(ctx context.Context, cache *MarkupCache, pages []string) ([]hfscrape.ModelLink, int) {
	logger := s.logger()
	origin := s.Origin
	if origin == "" {
		origin = hfscrape.DefaultOrigin
	}

	links := []hfscrape.ModelLink{}
	failed := 0
	for i, batch := range Batches(pages, s.BatchSize) {
		if i > 0 && s.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return links, failed
			case <-time.After(s.BatchDelay):
			}
		}

		for _, page := range batch {
			if ctx.Err() != nil {
				return links, failed
			}

			html, ok := cache.GetOrFetch(ctx, page)
			if !ok {
				failed++
				continue
			}

			hrefs, err := s.Listing.ModelLinks(html)
			if err != nil {
				logger.Error("link extraction failed", "url", page, "err", err)
				failed++
				continue
			}

			for _, href := range hrefs {
				links = append(links, hfscrape.ParseModelLink(href, origin))
			}
			logger.Info("listing page", "url", page, "links", len(hrefs))
		}
	}
	return links, failed
}

// extractDetails fetches and parses the detail page of every distinct link
// URL. Details are keyed by URL; absent pages have no entry.
func (s *Scraper) extractDetails(ctx context.Context, cache *MarkupCache, links []hfscrape.ModelLink) (map[string]*hfscrape.Detail, int, error) {
	logger := s.logger()

	var urls []string
	seen := make(map[string]bool)
	for _, link := range links {
		if !seen[link.URL] {
			seen[link.URL] = true
			urls = append(urls, link.URL)
		}
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var (
		mu      sync.Mutex
		details = make(map[string]*hfscrape.Detail, len(urls))
		failed  atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, u := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			html, ok := cache.GetOrFetch(gctx, u)
			if !ok {
				failed.Add(1)
				return nil
			}

			detail, err := s.Details.ParseDetail(html)
			if err != nil {
				logger.Error("detail extraction failed", "url", u, "err", err)
				failed.Add(1)
				return nil
			}
			if !detail.HasDescription {
				logger.Warn("no content region", "url", u)
			}

			mu.Lock()
			details[u] = detail
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return details, int(failed.Load()), nil
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
