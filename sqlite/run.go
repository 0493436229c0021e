package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/hfscrape"
	"github.com/google/uuid"
)

// timeFormat is a fixed-width RFC3339 layout so stored timestamps sort
// lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Compile-time interface verification.
var _ hfscrape.RunService = (*RunService)(nil)

// RunService implements hfscrape.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores the run and its records in a single transaction.
func (s *RunService) CreateRun(ctx context.Context, run *hfscrape.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if run.StartedAt.IsZero() {
		run.StartedAt = now
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = now
	}
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, base_url, origin, listing_pages, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, run.BaseURL, run.Origin, run.ListingPages,
		run.StartedAt.UTC().Format(timeFormat), run.FinishedAt.UTC().Format(timeFormat)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (run_id, idx, name, repository, address, url, tags, repository_links, description, description_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range run.Records {
		tags, err := json.Marshal(rec.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}
		links, err := json.Marshal(rec.RepositoryLinks)
		if err != nil {
			return fmt.Errorf("failed to encode repository links: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, id, rec.Index, rec.Name, rec.Repository, rec.Address, rec.URL,
			string(tags), string(links), rec.Description, hashContent(rec.Description)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	run.ID = id
	return nil
}

// FindRunByID retrieves a run with its records.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*hfscrape.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, base_url, origin, listing_pages, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, hfscrape.Errorf(hfscrape.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.Records, err = s.FindRecords(ctx, hfscrape.RecordFilter{RunID: &run.ID})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter hfscrape.RunFilter) ([]*hfscrape.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, base_url, origin, listing_pages, started_at, finished_at FROM runs WHERE 1=1")

	if filter.BaseURL != nil {
		query.WriteString(" AND base_url = ?")
		args = append(args, *filter.BaseURL)
	}

	query.WriteString(" ORDER BY started_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*hfscrape.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// FindRecords retrieves records matching the filter. Records of newer runs
// come first; within a run they follow their index.
func (s *RunService) FindRecords(ctx context.Context, filter hfscrape.RecordFilter) ([]*hfscrape.ModelRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT r.idx, r.name, r.repository, r.address, r.url, r.tags, r.repository_links, r.description
		FROM records r JOIN runs ON runs.id = r.run_id WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND r.run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Repository != nil {
		query.WriteString(" AND r.repository = ?")
		args = append(args, *filter.Repository)
	}

	query.WriteString(" ORDER BY runs.started_at DESC, r.run_id, r.idx")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*hfscrape.ModelRecord{}
	for rows.Next() {
		var rec hfscrape.ModelRecord
		var tags, links string
		if err := rows.Scan(&rec.Index, &rec.Name, &rec.Repository, &rec.Address, &rec.URL,
			&tags, &links, &rec.Description); err != nil {
			return nil, err
		}

		rec.Tags = hfscrape.NewTags()
		if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
		rec.RepositoryLinks = []string{}
		if err := json.Unmarshal([]byte(links), &rec.RepositoryLinks); err != nil {
			return nil, fmt.Errorf("failed to decode repository links: %w", err)
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*hfscrape.Run, error) {
	var run hfscrape.Run
	var startedAt, finishedAt string

	if err := row.Scan(&run.ID, &run.BaseURL, &run.Origin, &run.ListingPages, &startedAt, &finishedAt); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}
	return &run, nil
}
