package mock

import (
	"context"

	"github.com/fwojciec/hfscrape"
)

var _ hfscrape.RunService = (*RunService)(nil)

// RunService is a mock implementation of hfscrape.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *hfscrape.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*hfscrape.Run, error)
	FindRunsFn    func(ctx context.Context, filter hfscrape.RunFilter) ([]*hfscrape.Run, error)
	FindRecordsFn func(ctx context.Context, filter hfscrape.RecordFilter) ([]*hfscrape.ModelRecord, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *hfscrape.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*hfscrape.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter hfscrape.RunFilter) ([]*hfscrape.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindRecords(ctx context.Context, filter hfscrape.RecordFilter) ([]*hfscrape.ModelRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}
