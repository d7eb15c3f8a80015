package jobs

import (
	"net/url"

	"github.com/mcggEz/gradalyze/pkg/query"
	"github.com/mcggEz/gradalyze/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "jobs", "j").
	Project("id", "ID").
	Project("title", "Title").
	Project("company", "Company").
	Project("location", "Location").
	Project("description", "Description").
	Project("url", "URL").
	Project("source", "Source").
	Project("posted_at", "PostedAt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "PostedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for job queries. Nil fields
// are ignored.
type Filters struct {
	Title    *string `json:"title,omitempty"`
	Company  *string `json:"company,omitempty"`
	Location *string `json:"location,omitempty"`
	Source   *string `json:"source,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Title", f.Title).
		WhereContains("Company", f.Company).
		WhereContains("Location", f.Location).
		WhereEquals("Source", f.Source)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}
	if c := values.Get("company"); c != "" {
		f.Company = &c
	}
	if l := values.Get("location"); l != "" {
		f.Location = &l
	}
	if s := values.Get("source"); s != "" {
		f.Source = &s
	}

	return f
}

func scanJob(s repository.Scanner) (Job, error) {
	var j Job
	err := s.Scan(
		&j.ID,
		&j.Title,
		&j.Company,
		&j.Location,
		&j.Description,
		&j.URL,
		&j.Source,
		&j.PostedAt,
		&j.CreatedAt,
	)
	return j, err
}
