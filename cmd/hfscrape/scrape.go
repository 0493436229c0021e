package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/hfscrape"
)

// ScrapeCmd scrapes the listing and writes the table.
type ScrapeCmd struct {
	BaseURL string
	Origin  string
	Out     string
}

// Run executes the scrape. The table is written even when no records were
// scraped; that case is then reported as ENOTFOUND.
func (c *ScrapeCmd) Run(ctx context.Context, deps *Dependencies) error {
	started := deps.Now()

	result, err := deps.Scraper.Scrape(ctx, c.BaseURL)
	if err != nil {
		return err
	}

	if err := deps.Table.WriteTable(ctx, hfscrape.Rows(result.Records)); err != nil {
		return err
	}

	if deps.Runs != nil {
		run := &hfscrape.Run{
			BaseURL:      c.BaseURL,
			Origin:       c.Origin,
			ListingPages: result.ListingPages,
			StartedAt:    started,
			FinishedAt:   deps.Now(),
			Records:      result.Records,
		}
		if err := deps.Runs.CreateRun(ctx, run); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		deps.Logger.Info("run recorded", "id", run.ID, "records", len(run.Records))
	}

	if len(result.Records) == 0 {
		return hfscrape.Errorf(hfscrape.ENOTFOUND, "no model records scraped from %s", c.BaseURL)
	}

	deps.Logger.Info("data saved", "path", c.Out, "records", len(result.Records), "failed", result.Failed)
	fmt.Fprintf(deps.Stdout, "Data has been saved to %s\n", c.Out)
	return nil
}
