// Package hfscrape scrapes the model listing of a public model hub. It walks
// the paginated listing, extracts per-model metadata from each detail page
// and writes the aggregated records as table rows.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, csv/).
package hfscrape

import "context"

// DefaultOrigin is the site root prepended to model addresses.
const DefaultOrigin = "https://huggingface.co"

// DefaultBaseURL is the first listing page of the model hub.
const DefaultBaseURL = DefaultOrigin + "/models"

// Fetcher retrieves raw markup from URLs.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// Non-success status codes are reported as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// ListingParser reads the listing pages of the model hub.
type ListingParser interface {
	// ModelLinks returns the raw relative model links of a listing page in
	// document order. Duplicates are kept.
	ModelLinks(html string) ([]string, error)

	// MaxPage returns the highest page index referenced by the pagination
	// control. Returns EINVALID if the control is missing or malformed.
	MaxPage(html string) (int, error)
}

// DetailParser extracts per-model fields from a model detail page.
type DetailParser interface {
	ParseDetail(html string) (*Detail, error)
}

// HostLimiter provides per-host rate limiting.
type HostLimiter interface {
	// Wait blocks until a request to host is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}

// TableWriter persists an ordered table of rows, replacing any previous
// content at its destination.
type TableWriter interface {
	WriteTable(ctx context.Context, rows []Row) error
}
