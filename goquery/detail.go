package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hfscrape"
)

// Href prefixes of the hub's tag filter links.
const (
	prefixTask     = "/models?pipeline_tag="
	prefixLibrary  = "/models?library="
	prefixLanguage = "/models?language="
	prefixOther    = "/models?other="
	prefixLicense  = "/models?license=license%3A"
	prefixDataset  = "/models?dataset=dataset%3A"
)

var pipInstallRe = regexp.MustCompile(`pip install git\+(https://github\.com/[^\s]+)`)

// ParseDetail extracts tags, repository links and description text from a
// model detail page.
func (p *Parser) ParseDetail(html string) (*hfscrape.Detail, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	detail := &hfscrape.Detail{
		Tags:            CategorizeTags(doc),
		RepositoryLinks: RepositoryLinks(html, doc),
	}
	// Description removes regions from the document, so it runs last.
	detail.Description, detail.HasDescription = p.description(doc)
	return detail, nil
}

// Categorize classifies a tag link by its href.
// Returns false if the href is not a tag filter link.
func Categorize(href string) (hfscrape.Category, bool) {
	switch {
	case strings.HasPrefix(href, prefixTask):
		return hfscrape.CategoryTask, true
	case strings.HasPrefix(href, prefixLibrary):
		return hfscrape.CategoryLibrary, true
	case strings.HasPrefix(href, prefixLanguage):
		return hfscrape.CategoryLanguage, true
	case strings.HasPrefix(href, prefixOther):
		if strings.Contains(href, "=arxiv%") {
			return hfscrape.CategoryArxiv, true
		}
		return hfscrape.CategoryOthers, true
	case strings.HasPrefix(href, prefixLicense):
		return hfscrape.CategoryLicense, true
	case strings.HasPrefix(href, prefixDataset):
		return hfscrape.CategoryDataset, true
	}
	return "", false
}

// CategorizeTags collects the text of every tag link in the document,
// grouped by category in document order.
func CategorizeTags(doc *goquery.Document) hfscrape.Tags {
	tags := hfscrape.NewTags()
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		category, ok := Categorize(href)
		if !ok {
			return
		}

		text := strings.ReplaceAll(strings.TrimSpace(sel.Text()), "\n", "")
		if category == hfscrape.CategoryLicense {
			text = strings.TrimPrefix(text, "License: ")
		}
		tags.Add(category, text)
	})
	return tags
}

// RepositoryLinks returns the GitHub links referenced by pip install
// commands in the raw markup and by anchors in the document. Links are
// deduplicated and kept in discovery order.
func RepositoryLinks(html string, doc *goquery.Document) []string {
	seen := make(map[string]bool)
	links := []string{}
	add := func(link string) {
		if seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	}

	for _, m := range pipInstallRe.FindAllStringSubmatch(html, -1) {
		add(m[1])
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if strings.HasPrefix(href, "https://github.com/") || strings.HasPrefix(href, "http://github.com/") {
			add(href)
		}
	})
	return links
}

// description strips page chrome from the content region and returns its
// flattened text. Returns false if the document has no content region.
func (p *Parser) description(doc *goquery.Document) (string, bool) {
	content := doc.Find(p.selectors.Content).First()
	if content.Length() == 0 {
		return "", false
	}

	for _, selector := range p.selectors.Exclude {
		content.Find(selector).First().Remove()
	}

	return CleanText(Text(content, " ")), true
}
