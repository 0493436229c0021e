package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hfscrape"
)

// Ensure LoggingTableWriter implements hfscrape.TableWriter.
var _ hfscrape.TableWriter = (*LoggingTableWriter)(nil)

// LoggingTableWriter wraps a TableWriter, logging each write. dest names the
// destination in log lines.
type LoggingTableWriter struct {
	next   hfscrape.TableWriter
	dest   string
	logger *slog.Logger
}

// NewLoggingTableWriter creates a new LoggingTableWriter.
func NewLoggingTableWriter(next hfscrape.TableWriter, dest string, logger *slog.Logger) *LoggingTableWriter {
	return &LoggingTableWriter{next: next, dest: dest, logger: logger}
}

// WriteTable delegates to the wrapped writer. Success is logged at info,
// failure at error.
func (w *LoggingTableWriter) WriteTable(ctx context.Context, rows []hfscrape.Row) (err error) {
	defer func(begin time.Time) {
		if err != nil {
			w.logger.Error("write table failed",
				"dest", w.dest,
				"rows", len(rows),
				"err", err,
			)
			return
		}
		w.logger.Info("write table",
			"dest", w.dest,
			"rows", len(rows),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return w.next.WriteTable(ctx, rows)
}
