package datatable

import (
	"errors"
	"fmt"
)

// ErrDuplicateColumn is reported when two columns share a key.
var ErrDuplicateColumn = errors.New("duplicate column key")

// Column describes how one field of a row of type R is labeled, sorted,
// sized and rendered.
type Column[R any] struct {
	Key      string
	Label    string
	Visible  bool
	Sortable bool
	Width    int // zero means intrinsic sizing
	MinWidth int

	// Value extracts the typed field from a row.
	Value func(R) Value
	// Render optionally overrides the cell text.
	Render func(v Value, row R) string
}

// ColumnInfo is the row-type-free metadata of a column.
type ColumnInfo struct {
	Key      string
	Label    string
	Visible  bool
	Sortable bool
	Width    int
	MinWidth int
}

// Info strips the accessor functions from the column.
func (c Column[R]) Info() ColumnInfo {
	return ColumnInfo{
		Key:      c.Key,
		Label:    c.Label,
		Visible:  c.Visible,
		Sortable: c.Sortable,
		Width:    c.Width,
		MinWidth: c.MinWidth,
	}
}

// cell returns the value and display text for a row.
func (c Column[R]) cell(row R) (Value, string) {
	var v Value
	if c.Value != nil {
		v = c.Value(row)
	}
	if c.Render != nil {
		return v, c.Render(v, row)
	}
	return v, v.String()
}

// ValidateColumns checks that every key in the set is non-empty and unique.
func ValidateColumns[R any](cols []Column[R]) error {
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if c.Key == "" {
			return fmt.Errorf("column %d: empty key", i)
		}
		if _, ok := seen[c.Key]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Key)
		}
		seen[c.Key] = struct{}{}
	}
	return nil
}

// FindColumn returns the index of the column with key, or -1.
func FindColumn[R any](cols []Column[R], key string) int {
	for i, c := range cols {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// VisibleColumns returns the visible columns in configuration order.
func VisibleColumns[R any](cols []Column[R]) []Column[R] {
	out := make([]Column[R], 0, len(cols))
	for _, c := range cols {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// Infos returns the metadata of every column in order.
func Infos[R any](cols []Column[R]) []ColumnInfo {
	out := make([]ColumnInfo, len(cols))
	for i, c := range cols {
		out[i] = c.Info()
	}
	return out
}
