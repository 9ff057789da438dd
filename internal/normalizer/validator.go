package normalizer

import (
	"strings"

	"socleaner/internal/models"
	"socleaner/pkg/utils"
)

// Validator holds the row predicates of the filter chain.
type Validator struct {
	required    []string
	lengths     []string
	errorField  string
	errorMarker string
	minLength   int
}

// NewValidator creates a validator from the options.
func NewValidator(opts Options) *Validator {
	return &Validator{
		required:    opts.RequiredFields,
		lengths:     opts.LengthFields,
		errorField:  opts.ErrorField,
		errorMarker: strings.ToLower(opts.ErrorMarker),
		minLength:   opts.MinLength,
	}
}

// HasRequiredFields reports whether none of the required cells of record i is null.
func (v *Validator) HasRequiredFields(t *models.Table, i int) bool {
	for _, col := range v.required {
		if !t.Value(i, col).Valid {
			return false
		}
	}

	return true
}

// HasErrorMarker reports whether the error field of record i contains the
// marker, ignoring case. Null cells never match.
func (v *Validator) HasErrorMarker(t *models.Table, i int) bool {
	cell := t.Value(i, v.errorField)
	if !cell.Valid {
		return false
	}

	return strings.Contains(strings.ToLower(cell.Value), v.errorMarker)
}

// MeetsMinLength reports whether every length-checked cell of record i has
// at least the minimum number of characters.
func (v *Validator) MeetsMinLength(t *models.Table, i int) bool {
	for _, col := range v.lengths {
		if utils.CharCount(t.Value(i, col).String()) < v.minLength {
			return false
		}
	}

	return true
}
