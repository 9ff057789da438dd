package dataset

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string, mode parseMode) ([][]string, error) {
	t.Helper()

	tok := newTokenizer(strings.NewReader(input), DefaultDialect, mode)

	var records [][]string

	for {
		fields, _, err := tok.next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return records, err
		}

		records = append(records, fields)
	}
}

func TestTokenizer_Records(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "plain",
			input: "a,b,c\n1,2,3\n",
			want:  [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:  "no trailing newline",
			input: "a,b\n1,2",
			want:  [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "crlf",
			input: "a,b\r\n1,2\r\n",
			want:  [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:  "quoted delimiter and newline",
			input: "a,b\n\"x, y\",\"line1\nline2\"\n",
			want:  [][]string{{"a", "b"}, {"x, y", "line1\nline2"}},
		},
		{
			name:  "doubled quote",
			input: "a\n\"say \"\"hi\"\"\"\n",
			want:  [][]string{{"a"}, {`say "hi"`}},
		},
		{
			name:  "backslash escaped quote",
			input: "a,b\n\"say \\\"hi\\\"\",x\n",
			want:  [][]string{{"a", "b"}, {`say "hi"`, "x"}},
		},
		{
			name:  "escaped delimiter outside quotes",
			input: "a,b\n1\\,5,2\n",
			want:  [][]string{{"a", "b"}, {"1,5", "2"}},
		},
		{
			name:  "blank lines skipped",
			input: "a,b\n\n1,2\n\r\n3,4\n",
			want:  [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}},
		},
		{
			name:  "empty fields",
			input: "a,b,c\n,,\n",
			want:  [][]string{{"a", "b", "c"}, {"", "", ""}},
		},
		{
			name:  "empty quoted field",
			input: "a\n\"\"\n",
			want:  [][]string{{"a"}, {""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readAll(t, tt.input, modeStrict)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizer_StrictUnterminatedQuote(t *testing.T) {
	_, err := readAll(t, "a,b\n\"open,2\n", modeStrict)
	require.ErrorIs(t, err, ErrSyntax)
}

func TestTokenizer_StrayQuotes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "bare quote kept",
			input: "a,b\nsa\"y,2\n",
			want:  [][]string{{"a", "b"}, {`sa"y`, "2"}},
		},
		{
			name:  "text after closing quote appended",
			input: "a,b\n\"x\"y,2\n",
			want:  [][]string{{"a", "b"}, {"xy", "2"}},
		},
	}

	for _, tt := range tests {
		for _, mode := range []parseMode{modeStrict, modeLenient} {
			t.Run(tt.name+"/"+mode.String(), func(t *testing.T) {
				got, err := readAll(t, tt.input, mode)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	}
}

func TestTokenizer_LenientUnterminatedQuote(t *testing.T) {
	got, err := readAll(t, "a,b\n\"open,2\n", modeLenient)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"open,2\n"}}, got)
}

func TestTokenizer_LineNumbers(t *testing.T) {
	tok := newTokenizer(strings.NewReader("h\n\"a\nb\"\n\nc\n"), DefaultDialect, modeStrict)

	_, line, err := tok.next()
	require.NoError(t, err)
	assert.Equal(t, 1, line)

	_, line, err = tok.next()
	require.NoError(t, err)
	assert.Equal(t, 2, line)

	fields, line, err := tok.next()
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, fields)
	assert.Equal(t, 5, line)
}
