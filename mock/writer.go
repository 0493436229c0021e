package mock

import (
	"context"

	"github.com/fwojciec/hfscrape"
)

var _ hfscrape.TableWriter = (*TableWriter)(nil)

// TableWriter is a mock implementation of hfscrape.TableWriter.
type TableWriter struct {
	WriteTableFn func(ctx context.Context, rows []hfscrape.Row) error
}

func (w *TableWriter) WriteTable(ctx context.Context, rows []hfscrape.Row) error {
	return w.WriteTableFn(ctx, rows)
}
