package hfscrape

import (
	"context"
	"time"
)

// Run is one completed scrape, as stored in the run history.
type Run struct {
	ID           string         `json:"id"`
	BaseURL      string         `json:"baseUrl"`
	Origin       string         `json:"origin"`
	ListingPages int            `json:"listingPages"`
	StartedAt    time.Time      `json:"startedAt"`
	FinishedAt   time.Time      `json:"finishedAt"`
	Records      []*ModelRecord `json:"records"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.BaseURL == "" {
		return Errorf(EINVALID, "run base URL required")
	}
	for i, rec := range r.Records {
		if rec.Index != i+1 {
			return Errorf(EINVALID, "record %d has index %d", i+1, rec.Index)
		}
	}
	return nil
}

// RunService represents a service for managing the run history.
type RunService interface {
	// CreateRun stores a run and its records. Assigns the run ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with its records.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs, newest first, without their records.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindRecords retrieves records matching the filter in index order.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*ModelRecord, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	BaseURL *string `json:"baseUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	RunID      *string `json:"runId"`
	Repository *string `json:"repository"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
