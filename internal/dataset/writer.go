package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/transform"

	"socleaner/internal/logger"
	"socleaner/internal/models"
)

// ErrWrite is returned when the output file cannot be produced.
var ErrWrite = errors.New("failed to write dataset")

// WriterOptions configures output encoding and delimiter. When Escape is set,
// occurrences of it in values are doubled so the Loader reads them back unchanged.
type WriterOptions struct {
	Encoding  string
	Delimiter rune
	Escape    rune
}

// Writer serializes a Table as a delimited file.
type Writer struct {
	opts WriterOptions
	log  *logger.Logger
}

// NewWriter creates a writer.
func NewWriter(opts WriterOptions, log *logger.Logger) *Writer {
	return &Writer{opts: opts, log: log}
}

// Write stores the table at path: one header row, one row per record, no index column.
// The file is written under a temporary name and renamed into place, so a failed
// write never leaves partial output behind.
func (w *Writer) Write(path string, table *models.Table) (err error) {
	enc, err := LookupEncoding(w.opts.Encoding)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(dir, ".socleaner-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	encoded := transform.NewWriter(tmp, enc.NewEncoder())

	cw := csv.NewWriter(encoded)
	if w.opts.Delimiter != 0 {
		cw.Comma = w.opts.Delimiter
	}

	if err = cw.Write(table.Columns); err != nil {
		return fmt.Errorf("%w: header: %w", ErrWrite, err)
	}

	row := make([]string, len(table.Columns))

	for i, rec := range table.Records {
		for c, cell := range rec.Cells {
			row[c] = w.escape(cell.String())
		}

		if err = cw.Write(row); err != nil {
			return fmt.Errorf("%w: record %d: %w", ErrWrite, i, err)
		}
	}

	cw.Flush()

	if err = cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err = encoded.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	w.log.Info("dataset written", "path", path, "rows", table.Len())

	return nil
}

func (w *Writer) escape(value string) string {
	if w.opts.Escape == 0 {
		return value
	}

	esc := string(w.opts.Escape)

	return strings.ReplaceAll(value, esc, esc+esc)
}
