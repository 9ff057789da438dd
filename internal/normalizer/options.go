// Package normalizer cleans the question/answer table: it drops incomplete,
// failed, duplicate and too-short rows and normalizes the text fields.
package normalizer

import "socleaner/internal/models"

// DefaultMinLength is the minimum answer length in characters.
const DefaultMinLength = 50

// DefaultErrorMarker flags AI answers that are really failure messages.
const DefaultErrorMarker = "ERROR"

// Options selects the columns and thresholds used by the filter chain.
type Options struct {
	RequiredFields []string
	TextFields     []string
	LengthFields   []string
	DedupKey       string
	ErrorField     string
	ErrorMarker    string
	MinLength      int
}

// DefaultOptions returns the settings for the Stack Overflow answers dataset.
func DefaultOptions() Options {
	textFields := []string{
		models.ColumnQuestionTitle,
		models.ColumnQuestionBody,
		models.ColumnHumanAnswer,
		models.ColumnGPTAnswer,
	}

	return Options{
		RequiredFields: textFields,
		TextFields:     append([]string(nil), textFields...),
		LengthFields:   []string{models.ColumnHumanAnswer, models.ColumnGPTAnswer},
		DedupKey:       models.ColumnQuestionID,
		ErrorField:     models.ColumnGPTAnswer,
		ErrorMarker:    DefaultErrorMarker,
		MinLength:      DefaultMinLength,
	}
}

// columns lists every column the options refer to.
func (o Options) columns() []string {
	cols := make([]string, 0, len(o.RequiredFields)+len(o.TextFields)+len(o.LengthFields)+2)
	cols = append(cols, o.RequiredFields...)
	cols = append(cols, o.TextFields...)
	cols = append(cols, o.LengthFields...)
	cols = append(cols, o.DedupKey, o.ErrorField)

	return cols
}
