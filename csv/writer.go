// Package csv implements hfscrape.TableWriter as a CSV file.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/hfscrape"
)

// Ensure Writer implements hfscrape.TableWriter at compile time.
var _ hfscrape.TableWriter = (*Writer)(nil)

// Writer writes the table to a CSV file with a header row.
// The file is replaced atomically: rows are written to a temporary file in
// the same directory, which is renamed over the destination on success.
type Writer struct {
	path string
}

// NewWriter creates a Writer for the file at path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the destination file path.
func (w *Writer) Path() string {
	return w.path
}

// WriteTable writes hfscrape.Columns followed by rows, replacing the file.
// On failure the previous file, if any, is left untouched.
func (w *Writer) WriteTable(ctx context.Context, rows []hfscrape.Row) (err error) {
	dir, name := filepath.Split(w.path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	cw := csv.NewWriter(f)
	cw.UseCRLF = true
	if err := cw.Write(hfscrape.Columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if err := f.Chmod(0644); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, w.path)
}
