package normalizer

import "socleaner/internal/models"

// Deduplicate keeps the first record for each value of key, in original
// order, and returns how many records were dropped. Null keys count as one value.
func Deduplicate(table *models.Table, key string) int {
	seen := make(map[models.Cell]struct{}, table.Len())

	return table.Filter(func(i int) bool {
		k := table.Value(i, key)
		if _, dup := seen[k]; dup {
			return false
		}

		seen[k] = struct{}{}

		return true
	})
}
