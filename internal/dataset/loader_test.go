package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socleaner/internal/logger"
	"socleaner/internal/models"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func newTestLoader() *Loader {
	return NewLoader(LoaderOptions{
		Encoding: "utf-8-sig",
		Dialect:  DefaultDialect,
		NAValues: DefaultNAValues,
	}, logger.Discard())
}

func TestLoader_StripsBOM(t *testing.T) {
	path := writeInput(t, "\xEF\xBB\xBFquestion_id,question_title\n1,Hello\n")

	res, err := newTestLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"question_id", "question_title"}, res.Table.Columns)
	assert.Equal(t, "strict", res.Strategy)
	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, models.Text("Hello"), res.Table.Value(0, "question_title"))
}

func TestLoader_NAValuesBecomeNull(t *testing.T) {
	path := writeInput(t, "a,b,c,d\n,NA,null,text\n")

	res, err := newTestLoader().Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, res.Table.Len())

	assert.False(t, res.Table.Value(0, "a").Valid)
	assert.False(t, res.Table.Value(0, "b").Valid)
	assert.False(t, res.Table.Value(0, "c").Valid)
	assert.Equal(t, models.Text("text"), res.Table.Value(0, "d"))
}

func TestLoader_SkipsLongLines(t *testing.T) {
	path := writeInput(t, "a,b\n1,2\n3,4,5\n6\n7,8\n")

	res, err := newTestLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "strict", res.Strategy)
	assert.Equal(t, 1, res.Malformed)
	require.Equal(t, 3, res.Table.Len())
	assert.Equal(t, "1", res.Table.Value(0, "a").Value)
	assert.Equal(t, "6", res.Table.Value(1, "a").Value)
	assert.False(t, res.Table.Value(1, "b").Valid)
	assert.Equal(t, "7", res.Table.Value(2, "a").Value)
	assert.Equal(t, 2, res.Table.Records[2].Index)
}

func TestLoader_ShortLineKeepsRow(t *testing.T) {
	path := writeInput(t, "question_id,question_title,tags\n1,t1,go\n2,t2\n")

	res, err := newTestLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "strict", res.Strategy)
	assert.Zero(t, res.Malformed)
	require.Equal(t, 2, res.Table.Len())
	assert.Equal(t, models.Text("t2"), res.Table.Value(1, "question_title"))
	assert.Equal(t, models.Null(), res.Table.Value(1, "tags"))
}

func TestLoader_StrayQuoteStaysStrict(t *testing.T) {
	path := writeInput(t, "a,b\n1,say \"hi\"\n2,x,EXTRA\n")

	res, err := newTestLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "strict", res.Strategy)
	assert.Equal(t, 1, res.Malformed)
	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, `say "hi"`, res.Table.Value(0, "b").Value)
}

func TestLoader_FallsBackToLenient(t *testing.T) {
	path := writeInput(t, "a,b,c\n1,2,3\n4,5,6,7\n8,\"open\n")

	res, err := newTestLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "lenient", res.Strategy)
	assert.Equal(t, 1, res.Malformed)
	require.Equal(t, 2, res.Table.Len())
	assert.Equal(t, "1", res.Table.Value(0, "a").Value)
	assert.Equal(t, "8", res.Table.Value(1, "a").Value)
	assert.Equal(t, "open\n", res.Table.Value(1, "b").Value)
	assert.False(t, res.Table.Value(1, "c").Valid)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := newTestLoader().Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, ErrLoad)
}

func TestLoader_EmptyFile(t *testing.T) {
	path := writeInput(t, "")

	_, err := newTestLoader().Load(path)
	require.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestLoader_LegacyEncoding(t *testing.T) {
	// "café" in windows-1252
	path := writeInput(t, "title\ncaf\xE9\n")

	loader := NewLoader(LoaderOptions{
		Encoding: "windows-1252",
		Dialect:  DefaultDialect,
		NAValues: DefaultNAValues,
	}, logger.Discard())

	res, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "café", res.Table.Value(0, "title").Value)
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"utf-8-sig", "UTF_8_SIG", "utf-8", "windows-1252", "latin1"} {
		_, err := LookupEncoding(name)
		assert.NoError(t, err, name)
	}

	_, err := LookupEncoding("klingon")
	assert.ErrorIs(t, err, ErrUnknownEncoding)

	_, err = LookupEncoding("")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}
