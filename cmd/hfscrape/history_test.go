package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/hfscrape"
	main "github.com/fwojciec/hfscrape/cmd/hfscrape"
	"github.com/fwojciec/hfscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with ID, start time, URL and pages", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ hfscrape.RunFilter) ([]*hfscrape.Run, error) {
				return []*hfscrape.Run{
					{
						ID:           "run-2",
						BaseURL:      "https://huggingface.co/models",
						ListingPages: 3,
						StartedAt:    time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
					},
					{
						ID:           "run-1",
						BaseURL:      "https://huggingface.co/models?pipeline_tag=fill-mask",
						ListingPages: 1,
						StartedAt:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}

		err := (&main.RunsCmd{}).Run(context.Background(), &main.Dependencies{Stdout: stdout, Runs: runs})

		require.NoError(t, err)
		assert.Equal(t,
			"run-2  2024-03-02T10:00:00Z  https://huggingface.co/models  3 pages\n"+
				"run-1  2024-03-01T10:00:00Z  https://huggingface.co/models?pipeline_tag=fill-mask  1 pages\n",
			stdout.String())
	})

	t.Run("reports empty history", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ hfscrape.RunFilter) ([]*hfscrape.Run, error) {
				return []*hfscrape.Run{}, nil
			},
		}
		stdout := &bytes.Buffer{}

		err := (&main.RunsCmd{}).Run(context.Background(), &main.Dependencies{Stdout: stdout, Runs: runs})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs recorded")
	})

	t.Run("returns service error", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ hfscrape.RunFilter) ([]*hfscrape.Run, error) {
				return nil, errors.New("database is locked")
			},
		}

		err := (&main.RunsCmd{}).Run(context.Background(), &main.Dependencies{Stdout: &bytes.Buffer{}, Runs: runs})

		require.EqualError(t, err, "database is locked")
	})
}

func TestRecordsCmd_Run(t *testing.T) {
	t.Parallel()

	run := &hfscrape.Run{
		ID: "run-1",
		Records: []*hfscrape.ModelRecord{
			{Index: 1, Address: "/alice/m1", URL: "https://huggingface.co/alice/m1"},
			{Index: 2, Address: "/bob/m2", URL: "https://huggingface.co/bob/m2"},
		},
	}

	t.Run("prints every record of the run", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*hfscrape.Run, error) {
				assert.Equal(t, "run-1", id)
				return run, nil
			},
		}
		stdout := &bytes.Buffer{}

		err := (&main.RecordsCmd{RunID: "run-1"}).Run(context.Background(), &main.Dependencies{Stdout: stdout, Runs: runs})

		require.NoError(t, err)
		assert.Equal(t,
			"Records for run run-1 (2 total):\n\n"+
				"  1. alice/m1\n     https://huggingface.co/alice/m1\n"+
				"  2. bob/m2\n     https://huggingface.co/bob/m2\n",
			stdout.String())
	})

	t.Run("filters records by repository", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, _ string) (*hfscrape.Run, error) {
				return run, nil
			},
			FindRecordsFn: func(_ context.Context, filter hfscrape.RecordFilter) ([]*hfscrape.ModelRecord, error) {
				require.NotNil(t, filter.RunID)
				require.NotNil(t, filter.Repository)
				assert.Equal(t, "run-1", *filter.RunID)
				assert.Equal(t, "bob", *filter.Repository)
				return run.Records[1:], nil
			},
		}
		stdout := &bytes.Buffer{}

		err := (&main.RecordsCmd{RunID: "run-1", Repository: "bob"}).Run(context.Background(), &main.Dependencies{Stdout: stdout, Runs: runs})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "(1 total)")
		assert.Contains(t, stdout.String(), "bob/m2")
		assert.NotContains(t, stdout.String(), "alice/m1")
	})

	t.Run("returns ENOTFOUND for unknown run", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, _ string) (*hfscrape.Run, error) {
				return nil, hfscrape.Errorf(hfscrape.ENOTFOUND, "run not found")
			},
		}

		err := (&main.RecordsCmd{RunID: "missing"}).Run(context.Background(), &main.Dependencies{Stdout: &bytes.Buffer{}, Runs: runs})

		require.Error(t, err)
		assert.Equal(t, hfscrape.ENOTFOUND, hfscrape.ErrorCode(err))
	})
}
