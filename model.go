package hfscrape

import "strings"

// Category is a tag classification bucket on a model detail page.
type Category string

// Tag categories.
const (
	CategoryTask     Category = "Task"
	CategoryLibrary  Category = "Library"
	CategoryLanguage Category = "Language"
	CategoryOthers   Category = "Others"
	CategoryArxiv    Category = "Arxiv"
	CategoryLicense  Category = "License"
	CategoryDataset  Category = "Dataset"
)

// Categories returns every tag category.
func Categories() []Category {
	return []Category{
		CategoryTask,
		CategoryLibrary,
		CategoryLanguage,
		CategoryOthers,
		CategoryArxiv,
		CategoryLicense,
		CategoryDataset,
	}
}

// ColumnCategories returns the tag categories in table column order.
func ColumnCategories() []Category {
	return []Category{
		CategoryTask,
		CategoryLibrary,
		CategoryDataset,
		CategoryLanguage,
		CategoryOthers,
		CategoryArxiv,
		CategoryLicense,
	}
}

// Tags maps each category to its tag texts in document order.
type Tags map[Category][]string

// NewTags returns Tags with every category present and empty.
func NewTags() Tags {
	tags := make(Tags, len(Categories()))
	for _, c := range Categories() {
		tags[c] = []string{}
	}
	return tags
}

// Add appends text to the category.
func (t Tags) Add(c Category, text string) {
	t[c] = append(t[c], text)
}

// Joined returns the category's tags separated by ", ".
func (t Tags) Joined(c Category) string {
	return strings.Join(t[c], ", ")
}

// ModelLink is a model reference found on a listing page.
type ModelLink struct {
	// Address is the raw relative link, e.g. "/owner/name".
	Address    string
	Name       string
	Repository string
	URL        string
}

// NamePlaceholder is the name given to links with fewer than two slashes.
const NamePlaceholder = " "

// ParseModelLink derives the name, repository and absolute URL of a raw
// relative model link.
func ParseModelLink(address, origin string) ModelLink {
	link := ModelLink{
		Address: address,
		Name:    NamePlaceholder,
		URL:     origin + address,
	}

	parts := strings.Split(address, "/")
	if strings.Count(address, "/") >= 2 {
		link.Name = parts[len(parts)-1]
	}
	if len(parts) > 1 {
		link.Repository = parts[1]
	}
	return link
}

// Detail holds the fields extracted from one model detail page.
type Detail struct {
	Tags Tags

	// RepositoryLinks are deduplicated external source repository URLs
	// in discovery order.
	RepositoryLinks []string

	Description string

	// HasDescription is false when the page has no primary content region.
	HasDescription bool
}

// ModelRecord is one aggregated output record.
type ModelRecord struct {
	Index           int      `json:"index"`
	Name            string   `json:"name"`
	Repository      string   `json:"repository"`
	Address         string   `json:"address"`
	URL             string   `json:"url"`
	Tags            Tags     `json:"tags"`
	RepositoryLinks []string `json:"repositoryLinks"`
	Description     string   `json:"description"`
}

// RepositoryLinksJoined returns the repository links separated by ", ".
func (r *ModelRecord) RepositoryLinksJoined() string {
	return strings.Join(r.RepositoryLinks, ", ")
}

// Aggregate merges listing links with the details extracted for their URLs.
// Records follow the order of links and are numbered from 1. A link whose
// detail is missing still yields a record with empty detail fields.
func Aggregate(links []ModelLink, details map[string]*Detail) []*ModelRecord {
	records := make([]*ModelRecord, 0, len(links))
	for i, link := range links {
		rec := &ModelRecord{
			Index:           i + 1,
			Name:            link.Name,
			Repository:      link.Repository,
			Address:         link.Address,
			URL:             link.URL,
			Tags:            NewTags(),
			RepositoryLinks: []string{},
		}
		if d, ok := details[link.URL]; ok && d != nil {
			for _, c := range Categories() {
				rec.Tags[c] = append(rec.Tags[c], d.Tags[c]...)
			}
			rec.RepositoryLinks = append(rec.RepositoryLinks, d.RepositoryLinks...)
			rec.Description = d.Description
		}
		records = append(records, rec)
	}
	return records
}
