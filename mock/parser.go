package mock

import "github.com/fwojciec/hfscrape"

// Compile-time interface verification.
var (
	_ hfscrape.ListingParser = (*ListingParser)(nil)
	_ hfscrape.DetailParser  = (*DetailParser)(nil)
)

// ListingParser is a mock implementation of hfscrape.ListingParser.
type ListingParser struct {
	ModelLinksFn func(html string) ([]string, error)
	MaxPageFn    func(html string) (int, error)
}

func (p *ListingParser) ModelLinks(html string) ([]string, error) {
	return p.ModelLinksFn(html)
}

func (p *ListingParser) MaxPage(html string) (int, error) {
	return p.MaxPageFn(html)
}

// DetailParser is a mock implementation of hfscrape.DetailParser.
type DetailParser struct {
	ParseDetailFn func(html string) (*hfscrape.Detail, error)
}

func (p *DetailParser) ParseDetail(html string) (*hfscrape.Detail, error) {
	return p.ParseDetailFn(html)
}
