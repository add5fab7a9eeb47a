package datatable

import "slices"

// ColumnControl applies visibility and sizing changes to a column list it
// does not own. Every change builds a fresh slice and hands it to OnChange;
// the original slice and its elements are left untouched and the column
// order never changes.
type ColumnControl[R any] struct {
	Columns  []Column[R]
	OnChange func([]Column[R])
}

// Toggle flips the visibility of key.
func (c ColumnControl[R]) Toggle(key string) bool {
	return c.update(key, func(col *Column[R]) { col.Visible = !col.Visible })
}

// SetVisible sets the visibility of key.
func (c ColumnControl[R]) SetVisible(key string, visible bool) bool {
	return c.update(key, func(col *Column[R]) { col.Visible = visible })
}

// AutoSize clears the explicit width of key.
func (c ColumnControl[R]) AutoSize(key string) bool {
	return c.update(key, func(col *Column[R]) { col.Width = 0 })
}

// Resize adjusts the explicit width of key by delta. A column without an
// explicit width starts from base, normally its current rendered width.
func (c ColumnControl[R]) Resize(key string, base, delta int) bool {
	return c.update(key, func(col *Column[R]) {
		w := col.Width
		if w == 0 {
			w = base
		}
		col.Width = max(w+delta, col.MinWidth, 1)
	})
}

// AutoSizeAll clears the explicit width of every column.
func (c ColumnControl[R]) AutoSizeAll() {
	next := slices.Clone(c.Columns)
	for i := range next {
		next[i].Width = 0
	}
	c.emit(next)
}

// ShowAll makes every column visible.
func (c ColumnControl[R]) ShowAll() {
	next := slices.Clone(c.Columns)
	for i := range next {
		next[i].Visible = true
	}
	c.emit(next)
}

func (c ColumnControl[R]) update(key string, fn func(*Column[R])) bool {
	idx := FindColumn(c.Columns, key)
	if idx < 0 {
		return false
	}
	next := slices.Clone(c.Columns)
	fn(&next[idx])
	c.emit(next)
	return true
}

func (c ColumnControl[R]) emit(next []Column[R]) {
	if c.OnChange != nil {
		c.OnChange(next)
	}
}
