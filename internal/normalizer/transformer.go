package normalizer

import "socleaner/internal/models"

// Transformer rewrites the text fields of a table in place.
type Transformer struct {
	fields []string
}

// NewTransformer creates a transformer for the given columns.
func NewTransformer(fields []string) *Transformer {
	return &Transformer{fields: fields}
}

// Transform applies Clean to every configured cell and returns how many
// cells changed. Null cells become empty strings.
func (t *Transformer) Transform(table *models.Table) int {
	changed := 0

	for i := range table.Records {
		for _, col := range t.fields {
			before := table.Value(i, col)
			after := models.Text(CleanCell(before))

			if after != before {
				table.Set(i, col, after)
				changed++
			}
		}
	}

	return changed
}
