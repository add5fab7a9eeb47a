package screens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/crewdeck/internal/crew"
	"github.com/five82/crewdeck/internal/datatable"
)

// ErrUnknownScreen is returned by Lookup for an unregistered screen id.
var ErrUnknownScreen = errors.New("unknown screen")

// ErrUnknownColumn is returned when a caller names a column a screen lacks.
var ErrUnknownColumn = errors.New("unknown column")

// Field is one label/value pair of a record's detail pane.
type Field struct {
	Label string
	Value string
}

// FacetInfo describes a facet's offered options and current selection.
type FacetInfo struct {
	Key      string
	Label    string
	Options  []string
	Selected []string
}

// Screen is the row-type-free surface of a list view. The UI and CLI drive
// every screen through it.
type Screen interface {
	ID() string
	Title() string

	SetData(ds crew.Dataset)
	View() datatable.View
	RowKeys() []string
	Counts() (visible, total int)
	Detail(key string) ([]Field, bool)

	Columns() []datatable.ColumnInfo
	ToggleColumn(key string) error
	AutoSizeColumn(key string) error
	AutoSizeAll()
	ShowAllColumns()
	ResizeColumn(key string, delta int) error

	Sort() datatable.SortConfig
	ClickHeader(key string)
	SetSort(cfg datatable.SortConfig) error

	Query() string
	SetQuery(q string)
	Facets() []FacetInfo
	ToggleFacet(facet, value string)
	ClearFacet(facet string)
	ClearFilters()
	FilterState() datatable.FilterState

	Highlight() string
	SetHighlight(key string)
}

// Board binds one record type to the table core and owns the canonical
// column list, sort, filter and highlight state for its screen.
type Board[R any] struct {
	id     string
	title  string
	table  datatable.Table[R]
	rows   func(crew.Dataset) []R
	detail func(R) []Field

	columns []datatable.Column[R]
	base    []R
	query   datatable.Query

	// stamp, when set, pins the reference time before each pass over rows.
	stamp func()
}

var _ Screen = (*Board[crew.Vessel])(nil)

// NewBoard assembles a screen. It panics on a malformed column set since
// column metadata is static.
func NewBoard[R any](id, title string, cols []datatable.Column[R], table datatable.Table[R], rows func(crew.Dataset) []R, detail func(R) []Field) *Board[R] {
	if err := datatable.ValidateColumns(cols); err != nil {
		panic(fmt.Sprintf("screen %s: %v", id, err))
	}
	return &Board[R]{
		id:      id,
		title:   title,
		table:   table,
		rows:    rows,
		detail:  detail,
		columns: cols,
	}
}

// withStamp registers a hook run before every filter, sort or detail pass.
func (b *Board[R]) withStamp(fn func()) *Board[R] {
	b.stamp = fn
	return b
}

func (b *Board[R]) pin() {
	if b.stamp != nil {
		b.stamp()
	}
}

func (b *Board[R]) ID() string    { return b.id }
func (b *Board[R]) Title() string { return b.title }

// SetData replaces the base rows from a fresh dataset. View state such as
// sort, filters and columns is kept.
func (b *Board[R]) SetData(ds crew.Dataset) {
	b.base = b.rows(ds)
}

func (b *Board[R]) View() datatable.View {
	b.pin()
	return b.table.View(b.base, b.columns, b.query)
}

// RowKeys returns the keys of the filtered, sorted rows in display order.
func (b *Board[R]) RowKeys() []string {
	b.pin()
	rows := b.table.Rows(b.base, b.columns, b.query)
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = b.table.RowKey(r)
	}
	return keys
}

func (b *Board[R]) Counts() (visible, total int) {
	b.pin()
	return len(b.table.Filter.Apply(b.base, b.query.Filter)), len(b.base)
}

func (b *Board[R]) Detail(key string) ([]Field, bool) {
	b.pin()
	for _, r := range b.base {
		if b.table.RowKey(r) == key {
			if b.detail == nil {
				return nil, true
			}
			return b.detail(r), true
		}
	}
	return nil, false
}

func (b *Board[R]) Columns() []datatable.ColumnInfo {
	return datatable.Infos(b.columns)
}

func (b *Board[R]) control() datatable.ColumnControl[R] {
	return datatable.ColumnControl[R]{Columns: b.columns, OnChange: b.setColumns}
}

func (b *Board[R]) setColumns(cols []datatable.Column[R]) {
	b.columns = cols
}

func (b *Board[R]) ToggleColumn(key string) error {
	if !b.control().Toggle(key) {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	return nil
}

func (b *Board[R]) AutoSizeColumn(key string) error {
	if !b.control().AutoSize(key) {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	return nil
}

func (b *Board[R]) AutoSizeAll() { b.control().AutoSizeAll() }

func (b *Board[R]) ShowAllColumns() { b.control().ShowAll() }

// ResizeColumn widens or narrows key by delta cells, starting from its
// current rendered width when it has no explicit width yet.
func (b *Board[R]) ResizeColumn(key string, delta int) error {
	base := 0
	for _, h := range b.View().Headers {
		if h.Key == key {
			base = h.Width
			break
		}
	}
	if !b.control().Resize(key, base, delta) {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	return nil
}

func (b *Board[R]) Sort() datatable.SortConfig { return b.query.Sort }

func (b *Board[R]) ClickHeader(key string) {
	b.query.Sort = datatable.NextSort(b.query.Sort, b.columns, key)
}

// SetSort applies cfg directly. Unlike header clicks, a bad key is reported
// because it comes from a command line rather than a pointer.
func (b *Board[R]) SetSort(cfg datatable.SortConfig) error {
	if !cfg.Active() {
		b.query.Sort = datatable.NoSort
		return nil
	}
	idx := datatable.FindColumn(b.columns, cfg.Key)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, cfg.Key)
	}
	if !b.columns[idx].Sortable {
		return fmt.Errorf("column %s is not sortable", cfg.Key)
	}
	b.query.Sort = cfg
	return nil
}

func (b *Board[R]) Query() string { return b.query.Filter.Query }

func (b *Board[R]) SetQuery(q string) {
	b.query.Filter = b.query.Filter.WithQuery(q)
}

// Facets reports each facet with options drawn from the unfiltered rows.
func (b *Board[R]) Facets() []FacetInfo {
	b.pin()
	out := make([]FacetInfo, len(b.table.Filter.Facets))
	for i, f := range b.table.Filter.Facets {
		out[i] = FacetInfo{
			Key:      f.Key,
			Label:    f.Label,
			Options:  b.table.Filter.Options(b.base, f.Key),
			Selected: b.query.Filter.Selected(f.Key),
		}
	}
	return out
}

func (b *Board[R]) ToggleFacet(facet, value string) {
	b.query.Filter = b.query.Filter.Toggle(facet, value)
}

func (b *Board[R]) ClearFacet(facet string) {
	b.query.Filter = b.query.Filter.ClearFacet(facet)
}

func (b *Board[R]) ClearFilters() {
	b.query.Filter = datatable.FilterState{}
}

func (b *Board[R]) FilterState() datatable.FilterState { return b.query.Filter }

func (b *Board[R]) Highlight() string { return b.query.Highlight }

func (b *Board[R]) SetHighlight(key string) { b.query.Highlight = key }

// Lookup finds the screen with id, case-insensitively.
func Lookup(all []Screen, id string) (Screen, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, s := range all {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, id)
}

// IDs lists screen ids in order.
func IDs(all []Screen) []string {
	out := make([]string, len(all))
	for i, s := range all {
		out[i] = s.ID()
	}
	return out
}
