// Package dataset reads and writes the delimited question/answer files.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/transform"

	"socleaner/internal/logger"
	"socleaner/internal/models"
)

// Loader errors.
var (
	ErrLoad          = errors.New("failed to load dataset")
	ErrEmptyInput    = errors.New("input has no header row")
	ErrMalformedLine = errors.New("malformed line")
)

// DefaultNAValues are the cell spellings read as missing values.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

// LoaderOptions configures how input files are decoded and tokenized.
type LoaderOptions struct {
	Encoding string
	Dialect  Dialect
	NAValues []string
}

// LoadResult is the outcome of a successful load.
type LoadResult struct {
	Table     *models.Table
	Strategy  string
	Malformed int
}

// Loader reads a delimited file into a Table, first strictly and then,
// if the strict attempt fails as a whole, leniently.
type Loader struct {
	opts LoaderOptions
	na   map[string]struct{}
	log  *logger.Logger
}

// NewLoader creates a loader.
func NewLoader(opts LoaderOptions, log *logger.Logger) *Loader {
	na := make(map[string]struct{}, len(opts.NAValues))
	for _, v := range opts.NAValues {
		na[v] = struct{}{}
	}

	return &Loader{opts: opts, na: na, log: log}
}

// Load reads the file at path.
func (l *Loader) Load(path string) (*LoadResult, error) {
	text, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	res, strictErr := l.parse(text, modeStrict)
	if strictErr == nil {
		return res, nil
	}

	l.log.Warn("strict parse failed, retrying with lenient parser", "path", path, "error", strictErr)

	res, lenientErr := l.parse(text, modeLenient)
	if lenientErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, errors.Join(strictErr, lenientErr))
	}

	return res, nil
}

func (l *Loader) readFile(path string) (string, error) {
	enc, err := LookupEncoding(l.opts.Encoding)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(transform.NewReader(f, enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("failed to decode input: %w", err)
	}

	return string(data), nil
}

func (l *Loader) parse(text string, mode parseMode) (*LoadResult, error) {
	tok := newTokenizer(strings.NewReader(text), l.opts.Dialect, mode)

	header, _, err := tok.next()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}

	if err != nil {
		return nil, err
	}

	table := models.NewTable(header)
	malformed := 0

	for {
		fields, line, err := tok.next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		// short rows are padded with nulls by Append
		if len(fields) > len(header) {
			malformed++

			l.log.Warn("skipping line",
				"error", fmt.Errorf("%w: line %d: expected %d fields, saw %d", ErrMalformedLine, line, len(header), len(fields)))

			continue
		}

		table.Append(l.cells(fields))
	}

	return &LoadResult{Table: table, Strategy: mode.String(), Malformed: malformed}, nil
}

func (l *Loader) cells(fields []string) []models.Cell {
	cells := make([]models.Cell, len(fields))

	for i, f := range fields {
		if _, isNA := l.na[f]; isNA {
			cells[i] = models.Null()
			continue
		}

		cells[i] = models.Text(f)
	}

	return cells
}
