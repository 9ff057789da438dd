// Package report computes and renders the summary of a cleaning run.
package report

import (
	"time"

	"socleaner/internal/models"
	"socleaner/internal/normalizer"
	"socleaner/pkg/metadata"
	"socleaner/pkg/utils"
)

// Options controls which statistics are computed.
type Options struct {
	Fields     []string
	TitleField string
	SampleSize int
	TitleWidth int
}

// DefaultOptions reports on the four text fields and the first five titles.
func DefaultOptions() Options {
	return Options{
		Fields:     normalizer.DefaultOptions().TextFields,
		TitleField: models.ColumnQuestionTitle,
		SampleSize: 5,
		TitleWidth: 60,
	}
}

// FieldMean is the mean character length of one column.
type FieldMean struct {
	Field string
	Mean  float64
}

// Stats are the aggregate figures of the cleaned table.
type Stats struct {
	Total   int
	Means   []FieldMean
	Samples []string
}

// Compute reads the table and returns its statistics. The table is not modified.
// Means of an empty table are 0.
func Compute(table *models.Table, opts Options) Stats {
	stats := Stats{Total: table.Len()}

	for _, field := range opts.Fields {
		mean := 0.0

		if table.Len() > 0 {
			sum := 0
			for i := range table.Records {
				sum += utils.CharCount(table.Value(i, field).String())
			}

			mean = float64(sum) / float64(table.Len())
		}

		stats.Means = append(stats.Means, FieldMean{Field: field, Mean: mean})
	}

	n := min(opts.SampleSize, table.Len())
	for i := 0; i < n; i++ {
		title := table.Value(i, opts.TitleField).String()
		stats.Samples = append(stats.Samples, utils.TruncateChars(title, opts.TitleWidth, "..."))
	}

	return stats
}

// Summary collects everything known about one run.
type Summary struct {
	RunID      string
	InputPath  string
	OutputPath string
	Strategy   string
	Loaded     int
	Malformed  int
	Stages     []normalizer.StageResult
	Output     *metadata.Metadata
	Stats      Stats
	Duration   time.Duration
}

// Removed returns the number of rows dropped by the filter chain.
func (s *Summary) Removed() int {
	total := 0
	for _, st := range s.Stages {
		total += st.Removed
	}

	return total
}
