package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/hfscrape"
)

// RunsCmd lists the recorded runs, newest first.
type RunsCmd struct{}

// Run executes the runs command.
func (c *RunsCmd) Run(ctx context.Context, deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(ctx, hfscrape.RunFilter{})
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Scrape with --db to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d pages\n",
			r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.BaseURL, r.ListingPages)
	}
	return nil
}

// RecordsCmd prints the records of one recorded run.
type RecordsCmd struct {
	RunID      string
	Repository string
}

// Run executes the records command.
func (c *RecordsCmd) Run(ctx context.Context, deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(ctx, c.RunID)
	if err != nil {
		return err
	}

	records := run.Records
	if c.Repository != "" {
		records, err = deps.Runs.FindRecords(ctx, hfscrape.RecordFilter{
			RunID:      &run.ID,
			Repository: &c.Repository,
		})
		if err != nil {
			return err
		}
	}

	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No records for run %s.\n", run.ID)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Records for run %s (%d total):\n\n", run.ID, len(records))
	for _, rec := range records {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", rec.Index, strings.TrimPrefix(rec.Address, "/"), rec.URL)
	}
	return nil
}
