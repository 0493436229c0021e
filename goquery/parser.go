// Package goquery implements hfscrape.ListingParser and hfscrape.DetailParser
// using CSS selectors over the hub's page markup.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hfscrape"
)

var (
	_ hfscrape.ListingParser = (*Parser)(nil)
	_ hfscrape.DetailParser  = (*Parser)(nil)
)

// Selectors locates the structural regions the parser reads.
// Page layouts change without notice, so every region is configurable.
type Selectors struct {
	// ModelLink matches the anchor of each model card on a listing page.
	ModelLink string

	// PaginationItem matches the items of the listing pagination control.
	// The last item links to the highest page.
	PaginationItem string

	// Content matches the primary content region of a detail page.
	Content string

	// Exclude lists regions inside Content that are page chrome. The first
	// match of each selector is removed before text extraction.
	Exclude []string
}

// DefaultSelectors returns the selectors matching the hub's current markup.
func DefaultSelectors() Selectors {
	return Selectors{
		ModelLink:      ".block.p-2",
		PaginationItem: `li.hidden[class~="sm:block"]`,
		Content:        "main",
		Exclude: []string{
			// page header with title, likes and tabs
			"header",
			// metadata sidebar, rendered as either element
			`div[class~="md:col-span-5"][class~="md:border-l"]`,
			`section[class~="md:col-span-5"][class~="md:border-l"]`,
			// "Edit model card" button
			`a.btn[class~="md:absolute"]`,
		},
	}
}

// Parser extracts listing and detail data from raw markup.
type Parser struct {
	selectors Selectors
}

// Option configures a Parser.
type Option func(*Parser)

// WithSelectors replaces the default selectors.
func WithSelectors(s Selectors) Option {
	return func(p *Parser) {
		p.selectors = s
	}
}

// WithExclude replaces the regions removed before description extraction.
func WithExclude(selectors ...string) Option {
	return func(p *Parser) {
		p.selectors.Exclude = selectors
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{selectors: DefaultSelectors()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, hfscrape.Errorf(hfscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}
