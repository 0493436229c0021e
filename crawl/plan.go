package crawl

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/hfscrape"
)

// DefaultMaxPages is the number of listing pages visited by default.
const DefaultMaxPages = 3

// MaxPlannedPages bounds the number of listing URLs a single plan may hold.
const MaxPlannedPages = 10000

// DefaultBatchSize is the number of listing pages visited per batch.
const DefaultBatchSize = 50

// PlanPages returns the listing URLs for pages 0 through maxPage, sorted by
// trending. When limit is positive only the first limit URLs are returned.
// Returns EINVALID if the plan would exceed MaxPlannedPages.
func PlanPages(baseURL string, maxPage, limit int) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, hfscrape.Errorf(hfscrape.EINVALID, "invalid base URL: %v", err)
	}

	n := maxPage + 1
	if limit > 0 && limit < n {
		n = limit
	}
	if n > MaxPlannedPages {
		return nil, hfscrape.Errorf(hfscrape.EINVALID, "page %d exceeds the limit of %d listing pages", maxPage, MaxPlannedPages)
	}

	urls := []string{}
	for page := 0; page < n; page++ {
		ref := &url.URL{RawQuery: fmt.Sprintf("p=%d&sort=trending", page)}
		urls = append(urls, base.ResolveReference(ref).String())
	}
	return urls, nil
}

// Batches splits urls into consecutive groups of at most size.
func Batches(urls []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var batches [][]string
	for start := 0; start < len(urls); start += size {
		end := min(start+size, len(urls))
		batches = append(batches, urls[start:end])
	}
	return batches
}
