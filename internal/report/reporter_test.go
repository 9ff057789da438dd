package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socleaner/internal/models"
	"socleaner/internal/normalizer"
)

func buildTable(titles ...string) *models.Table {
	table := models.NewTable([]string{
		models.ColumnQuestionID,
		models.ColumnQuestionTitle,
		models.ColumnQuestionBody,
		models.ColumnHumanAnswer,
		models.ColumnGPTAnswer,
	})

	for i, title := range titles {
		table.Append([]models.Cell{
			models.Text(string(rune('0' + i))),
			models.Text(title),
			models.Text(strings.Repeat("b", 10*(i+1))),
			models.Text("human"),
			models.Text("çğü"),
		})
	}

	return table
}

func TestCompute(t *testing.T) {
	long := strings.Repeat("t", 70)
	table := buildTable("one", long, "three", "four", "five", "six")

	stats := Compute(table, DefaultOptions())

	assert.Equal(t, 6, stats.Total)
	require.Len(t, stats.Means, 4)
	assert.Equal(t, models.ColumnQuestionTitle, stats.Means[0].Field)
	assert.InDelta(t, float64(3+70+5+4+4+3)/6, stats.Means[0].Mean, 1e-9)
	assert.InDelta(t, 35.0, stats.Means[1].Mean, 1e-9)
	assert.InDelta(t, 5.0, stats.Means[2].Mean, 1e-9)
	assert.InDelta(t, 3.0, stats.Means[3].Mean, 1e-9, "lengths are counted in characters")

	require.Len(t, stats.Samples, 5)
	assert.Equal(t, "one...", stats.Samples[0])
	assert.Equal(t, strings.Repeat("t", 60)+"...", stats.Samples[1])
	assert.Equal(t, 6, table.Len(), "table must not change")
}

func TestCompute_EmptyTable(t *testing.T) {
	stats := Compute(buildTable(), DefaultOptions())

	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.Samples)

	for _, m := range stats.Means {
		assert.Zero(t, m.Mean)
	}
}

func sampleSummary() *Summary {
	table := buildTable("How do I parse CSV in Go?", "Why is my loop so slow?")

	return &Summary{
		RunID:      "run-1",
		InputPath:  "in.csv",
		OutputPath: "out.csv",
		Strategy:   "strict",
		Loaded:     5,
		Malformed:  1,
		Stages: []normalizer.StageResult{
			{Name: normalizer.StageMissingFields, Removed: 1, Remaining: 4},
			{Name: normalizer.StageErrorMarker, Removed: 0, Remaining: 4},
			{Name: normalizer.StageNormalize, Removed: 0, Remaining: 4},
			{Name: normalizer.StageDuplicates, Removed: 1, Remaining: 3},
			{Name: normalizer.StageShortAnswers, Removed: 1, Remaining: 2},
		},
		Stats: Compute(table, DefaultOptions()),
	}
}

func TestSummary_Render(t *testing.T) {
	s := sampleSummary()

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "Cleaned dataset saved: out.csv")
	assert.Contains(t, out, "Total clean rows: 2")
	assert.Contains(t, out, "Loaded (strict parser): 5, malformed lines: 1")
	assert.Contains(t, out, "  - missing_fields : 1\n")
	assert.Contains(t, out, "  - normalize      : 0\n")
	assert.Contains(t, out, "  - question_title : 24\n")
	assert.Contains(t, out, "  1. How do I parse CSV in Go?...\n")
	assert.Contains(t, out, "  2. Why is my loop so slow?...\n")
	assert.Equal(t, 3, s.Removed())
}

func TestWriteMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "socleaner.prom")

	require.NoError(t, WriteMetrics(path, sampleSummary()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, "socleaner_rows_loaded 5")
	assert.Contains(t, out, "socleaner_rows_written 2")
	assert.Contains(t, out, `socleaner_rows_removed{stage="duplicates"} 1`)
	assert.Contains(t, out, `socleaner_mean_length_chars{field="gpt_answer"} 3`)
	assert.Contains(t, out, "socleaner_last_success_timestamp_seconds")
}
