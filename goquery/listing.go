package goquery

import (
	"net/url"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hfscrape"
)

// ModelLinks returns the href of every model card anchor in document order.
// Anchors without an href are skipped.
func (p *Parser) ModelLinks(html string) ([]string, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	links := []string{}
	doc.Find(p.selectors.ModelLink).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			links = append(links, href)
		}
	})
	return links, nil
}

// MaxPage reads the page number linked by the last pagination item.
// A link without a page parameter points at page 0.
func (p *Parser) MaxPage(html string) (int, error) {
	doc, err := parse(html)
	if err != nil {
		return 0, err
	}

	items := doc.Find(p.selectors.PaginationItem)
	if items.Length() == 0 {
		return 0, hfscrape.Errorf(hfscrape.EINVALID, "pagination control not found")
	}

	href, ok := items.Last().Find("a").First().Attr("href")
	if !ok {
		return 0, hfscrape.Errorf(hfscrape.EINVALID, "last pagination item has no link")
	}

	u, err := url.Parse(href)
	if err != nil {
		return 0, hfscrape.Errorf(hfscrape.EINVALID, "invalid pagination link %q: %v", href, err)
	}

	page := u.Query().Get("p")
	if page == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(page)
	if err != nil {
		return 0, hfscrape.Errorf(hfscrape.EINVALID, "invalid page number %q", page)
	}
	return n, nil
}
