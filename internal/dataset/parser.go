package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrSyntax reports a quoted field left open at end of input, which only the
// lenient parser accepts.
var ErrSyntax = errors.New("csv syntax error")

type parseMode int

const (
	modeStrict parseMode = iota
	modeLenient
)

func (m parseMode) String() string {
	if m == modeLenient {
		return "lenient"
	}

	return "strict"
}

// Dialect describes the delimiter, quote and escape characters of a file.
// An Escape of 0 disables escaping.
type Dialect struct {
	Delimiter rune
	Quote     rune
	Escape    rune
}

// DefaultDialect is comma separated, double-quoted, backslash escaped.
var DefaultDialect = Dialect{Delimiter: ',', Quote: '"', Escape: '\\'}

// tokenizer splits decoded text into records.
type tokenizer struct {
	r       *bufio.Reader
	dialect Dialect
	mode    parseMode
	line    int
}

func newTokenizer(r io.Reader, d Dialect, mode parseMode) *tokenizer {
	return &tokenizer{
		r:       bufio.NewReader(r),
		dialect: d,
		mode:    mode,
		line:    1,
	}
}

// next returns the fields of the next record and the line it started on.
// Blank lines are skipped. io.EOF is returned once input is exhausted.
func (t *tokenizer) next() ([]string, int, error) {
	var (
		fields     []string
		field      strings.Builder
		inQuotes   bool
		closed     bool
		fieldStart = true
	)

	start := t.line

	for {
		r, _, err := t.r.ReadRune()
		if errors.Is(err, io.EOF) {
			if inQuotes && t.mode == modeStrict {
				return nil, start, fmt.Errorf("%w: line %d: EOF inside quoted field", ErrSyntax, start)
			}

			if len(fields) == 0 && field.Len() == 0 && fieldStart && !inQuotes && !closed {
				return nil, start, io.EOF
			}

			return append(fields, field.String()), start, nil
		}

		if err != nil {
			return nil, start, err
		}

		if t.dialect.Escape != 0 && r == t.dialect.Escape {
			escaped, _, escErr := t.r.ReadRune()
			if escErr != nil {
				// dangling escape at EOF is kept as-is
				field.WriteRune(r)
				fieldStart = false

				continue
			}

			if escaped == '\n' {
				t.line++
			}

			field.WriteRune(escaped)
			fieldStart = false

			continue
		}

		if inQuotes {
			switch r {
			case t.dialect.Quote:
				if t.peek() == t.dialect.Quote {
					_, _, _ = t.r.ReadRune()
					field.WriteRune(r)

					continue
				}

				inQuotes = false
				closed = true
			case '\n':
				t.line++
				field.WriteRune(r)
			default:
				field.WriteRune(r)
			}

			continue
		}

		switch r {
		case t.dialect.Delimiter:
			fields = append(fields, field.String())
			field.Reset()

			fieldStart = true
			closed = false
		case '\r', '\n':
			if r == '\r' && t.peek() == '\n' {
				_, _, _ = t.r.ReadRune()
			}

			t.line++

			if len(fields) == 0 && field.Len() == 0 && fieldStart && !closed {
				start = t.line

				continue
			}

			return append(fields, field.String()), start, nil
		case t.dialect.Quote:
			if fieldStart {
				inQuotes = true
				fieldStart = false

				continue
			}

			// a quote inside an unquoted field is literal
			field.WriteRune(r)
		default:
			field.WriteRune(r)
			fieldStart = false
		}
	}
}

// peek returns the next rune without consuming it, or -1 at EOF.
func (t *tokenizer) peek() rune {
	r, _, err := t.r.ReadRune()
	if err != nil {
		return -1
	}

	_ = t.r.UnreadRune()

	return r
}
