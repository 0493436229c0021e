package hfscrape

import "strconv"

// Columns is the header row of the output table.
var Columns = []string{
	"Sr.no",
	"ModelName",
	"ModelRepo",
	"ModelAddress",
	"ModelUrl",
	"Tasks",
	"Libraries",
	"Dataset",
	"Languages",
	"Other",
	"Arxiv",
	"Licenses",
	"Github Links",
	"Body",
}

// Row is one output table row with len(Columns) fields.
type Row []string

// Row flattens the record into a table row.
func (r *ModelRecord) Row() Row {
	row := make(Row, 0, len(Columns))
	row = append(row,
		strconv.Itoa(r.Index),
		r.Name,
		r.Repository,
		r.Address,
		r.URL,
	)
	for _, c := range ColumnCategories() {
		row = append(row, r.Tags.Joined(c))
	}
	row = append(row,
		r.RepositoryLinksJoined(),
		r.Description,
	)
	return row
}

// Rows flattens records into table rows, preserving order.
func Rows(records []*ModelRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return rows
}
