// Package models defines the tabular data structures shared by the loader, normalizer and writer.
package models

import (
	"errors"
	"fmt"
)

// Column names of the Stack Overflow question/answer dataset.
const (
	ColumnQuestionID    = "question_id"
	ColumnQuestionTitle = "question_title"
	ColumnQuestionBody  = "question_body"
	ColumnHumanAnswer   = "human_answer"
	ColumnGPTAnswer     = "gpt_answer"
)

// ErrMissingColumn is returned when a configured column is absent from the header.
var ErrMissingColumn = errors.New("column not found in header")

// Cell is a single nullable value of a record.
type Cell struct {
	Value string
	Valid bool
}

// Text returns a non-null cell holding s.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Null returns a missing cell.
func Null() Cell {
	return Cell{}
}

// String returns the value, or "" for a null cell.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}

	return c.Value
}

// Record is one row of the dataset. Cells are aligned with Table.Columns.
type Record struct {
	Index int
	Cells []Cell
}

// Table is the in-memory dataset passed from stage to stage.
type Table struct {
	Columns []string
	Records []Record

	lookup map[string]int
}

// NewTable creates an empty table with the given header.
// When a name repeats, lookups resolve to its first occurrence.
func NewTable(columns []string) *Table {
	lookup := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, ok := lookup[name]; !ok {
			lookup[name] = i
		}
	}

	return &Table{
		Columns: columns,
		lookup:  lookup,
	}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// ColumnIndex returns the position of a column in the header.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.lookup[name]
	return i, ok
}

// RequireColumns checks that every named column exists.
func (t *Table) RequireColumns(names ...string) error {
	for _, name := range names {
		if _, ok := t.ColumnIndex(name); !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	return nil
}

// Append adds a record. The cells slice is padded with nulls or truncated to the header width.
func (t *Table) Append(cells []Cell) {
	switch {
	case len(cells) < len(t.Columns):
		padded := make([]Cell, len(t.Columns))
		copy(padded, cells)
		cells = padded
	case len(cells) > len(t.Columns):
		cells = cells[:len(t.Columns)]
	}

	t.Records = append(t.Records, Record{Index: len(t.Records), Cells: cells})
}

// Value returns the cell of record i in the named column. Unknown columns yield a null cell.
func (t *Table) Value(i int, column string) Cell {
	c, ok := t.ColumnIndex(column)
	if !ok {
		return Null()
	}

	return t.Records[i].Cells[c]
}

// Set replaces the cell of record i in the named column.
func (t *Table) Set(i int, column string, cell Cell) {
	if c, ok := t.ColumnIndex(column); ok {
		t.Records[i].Cells[c] = cell
	}
}

// Filter keeps the records for which keep returns true, preserving order,
// and returns how many were removed. Record indices are left untouched.
func (t *Table) Filter(keep func(i int) bool) int {
	kept := t.Records[:0]

	for i := range t.Records {
		if keep(i) {
			kept = append(kept, t.Records[i])
		}
	}

	removed := len(t.Records) - len(kept)
	clear(t.Records[len(kept):])
	t.Records = kept

	return removed
}

// ResetIndex renumbers the records contiguously from 0.
func (t *Table) ResetIndex() {
	for i := range t.Records {
		t.Records[i].Index = i
	}
}
