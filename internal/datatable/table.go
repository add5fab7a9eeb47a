package datatable

// Table bundles the static configuration of one list view: how rows are
// keyed, searched, faceted and what to say when nothing matches.
type Table[R any] struct {
	RowKey       func(R) string
	Filter       Filter[R]
	EmptyMessage string
}

// Query is the per-render input of a table pipeline.
type Query struct {
	Filter    FilterState
	Sort      SortConfig
	Highlight string
}

// Rows runs the filter and sort stages and returns the resulting rows.
func (t Table[R]) Rows(rows []R, cols []Column[R], q Query) []R {
	return Sort(t.Filter.Apply(rows, q.Filter), cols, q.Sort)
}

// View runs the full pipeline: filter, sort, then project through the
// visible columns.
func (t Table[R]) View(rows []R, cols []Column[R], q Query) View {
	return Project(cols, t.Rows(rows, cols, q), Options[R]{
		RowKey:       t.RowKey,
		EmptyMessage: t.EmptyMessage,
		HighlightKey: q.Highlight,
		Sort:         q.Sort,
	})
}
