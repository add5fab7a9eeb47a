package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	NextScreen key.Binding
	PrevScreen key.Binding
	Escape     key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Table actions
	Search       key.Binding
	Facets       key.Binding
	Columns      key.Binding
	ClearFilters key.Binding
	SortColumn   key.Binding
	Open         key.Binding
	Logs         key.Binding
	Reload       key.Binding

	// Column menu
	Toggle      key.Binding
	AutoSize    key.Binding
	AutoSizeAll key.Binding
	ShowAll     key.Binding
	Widen       key.Binding
	Narrow      key.Binding
	ClearFacet  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		NextScreen: key.NewBinding(
			key.WithKeys("tab", "right", "L"),
			key.WithHelp("tab", "Next screen"),
		),
		PrevScreen: key.NewBinding(
			key.WithKeys("shift+tab", "left", "H"),
			key.WithHelp("shift+tab", "Previous screen"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Facets: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filter by facet"),
		),
		Columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Column menu"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear search and filters"),
		),
		SortColumn: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Cycle sort on column"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open detail"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Show log"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload log"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle"),
		),
		AutoSize: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Auto-size column"),
		),
		AutoSizeAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Auto-size all"),
		),
		ShowAll: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Show all columns"),
		),
		Widen: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Widen column"),
		),
		Narrow: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Narrow column"),
		),
		ClearFacet: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("bksp", "Clear facet"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Facets, k.Columns, k.SortColumn, k.Open, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextScreen, k.PrevScreen, k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.Search, k.Facets, k.ClearFilters, k.SortColumn, k.Open},
		{k.Columns, k.Toggle, k.AutoSize, k.AutoSizeAll, k.Widen, k.Narrow, k.ShowAll},
		{k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}

// helpTitles names the FullHelp groups.
var helpTitles = []string{"Navigation", "Table", "Column menu", "General"}
