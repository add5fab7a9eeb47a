package datatable

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// State classifies a projected view.
type State int

const (
	// ViewRows is a table with at least one visible column and one row.
	ViewRows State = iota
	// ViewEmpty has visible columns but no rows; Message spans the table.
	ViewEmpty
	// ViewNoColumns has nothing to show; Message asks for columns back.
	ViewNoColumns
)

// Placeholder texts used when the caller supplies none.
const (
	NoColumnsMessage    = "All columns are hidden. Open the column menu to show some again."
	DefaultEmptyMessage = "No records match the current filters."
)

// Header describes one visible column in a projected view.
type Header struct {
	Key      string
	Label    string
	Width    int
	Sortable bool
	Sorted   bool
	Dir      Direction
}

// Row is one projected body row.
type Row struct {
	Key         string
	Cells       []string
	Highlighted bool
}

// View is the renderer-agnostic projection of a table.
type View struct {
	State   State
	Headers []Header
	Rows    []Row
	Message string
}

// Span returns the number of columns a full-width message row covers.
func (v View) Span() int { return len(v.Headers) }

// Options tune a projection.
type Options[R any] struct {
	RowKey       func(R) string
	EmptyMessage string
	HighlightKey string
	Sort         SortConfig
}

// Project renders rows through the visible columns. Rows must already be
// filtered and sorted; Project never reorders them.
func Project[R any](cols []Column[R], rows []R, opts Options[R]) View {
	visible := VisibleColumns(cols)
	if len(visible) == 0 {
		return View{State: ViewNoColumns, Message: NoColumnsMessage}
	}

	headers := make([]Header, len(visible))
	for i, c := range visible {
		dir, sorted := opts.Sort.For(c.Key)
		headers[i] = Header{
			Key:      c.Key,
			Label:    c.Label,
			Sortable: c.Sortable,
			Sorted:   sorted && c.Sortable,
			Dir:      dir,
		}
	}

	if len(rows) == 0 {
		msg := strings.TrimSpace(opts.EmptyMessage)
		if msg == "" {
			msg = DefaultEmptyMessage
		}
		sizeHeaders(headers, visible, nil)
		return View{State: ViewEmpty, Headers: headers, Message: msg}
	}

	body := make([]Row, len(rows))
	for r, row := range rows {
		cells := make([]string, len(visible))
		for i, c := range visible {
			_, cells[i] = c.cell(row)
		}
		var key string
		if opts.RowKey != nil {
			key = opts.RowKey(row)
		}
		body[r] = Row{
			Key:         key,
			Cells:       cells,
			Highlighted: key != "" && key == opts.HighlightKey,
		}
	}
	sizeHeaders(headers, visible, body)
	return View{State: ViewRows, Headers: headers, Rows: body}
}

// sizeHeaders fills in effective widths: an explicit width wins, otherwise
// the widest of label and cells, never below the column minimum.
func sizeHeaders[R any](headers []Header, visible []Column[R], body []Row) {
	for i, c := range visible {
		if c.Width > 0 {
			headers[i].Width = max(c.Width, c.MinWidth)
			continue
		}
		w := runewidth.StringWidth(c.Label)
		for _, row := range body {
			w = max(w, runewidth.StringWidth(row.Cells[i]))
		}
		headers[i].Width = max(w, c.MinWidth)
	}
}
