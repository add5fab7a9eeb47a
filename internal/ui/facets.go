package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/crewdeck/internal/screens"
)

// facetEntry is one selectable option in the facet picker.
type facetEntry struct {
	facet string
	value string
}

// facetPicker is a multi-select over every facet of a screen. Options come
// from the screen's unfiltered rows, so picking one never hides the others.
type facetPicker struct {
	screen screens.Screen
	cursor int
}

func newFacetPicker(s screens.Screen) *facetPicker {
	return &facetPicker{screen: s}
}

func (f *facetPicker) entries() []facetEntry {
	var out []facetEntry
	for _, info := range f.screen.Facets() {
		for _, opt := range info.Options {
			out = append(out, facetEntry{facet: info.Key, value: opt})
		}
	}
	return out
}

func (f *facetPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, false
	}
	entries := f.entries()

	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Facets), key.Matches(km, keys.Quit):
		return f, nil, true
	case key.Matches(km, keys.ClearFilters):
		for _, info := range f.screen.Facets() {
			f.screen.ClearFacet(info.Key)
		}
		return f, nil, false
	}
	if len(entries) == 0 {
		return f, nil, false
	}
	f.cursor = min(f.cursor, len(entries)-1)
	entry := entries[f.cursor]

	switch {
	case key.Matches(km, keys.Up):
		f.cursor = max(f.cursor-1, 0)
	case key.Matches(km, keys.Down):
		f.cursor = min(f.cursor+1, len(entries)-1)
	case key.Matches(km, keys.Toggle), key.Matches(km, keys.Open):
		f.screen.ToggleFacet(entry.facet, entry.value)
	case key.Matches(km, keys.ClearFacet):
		f.screen.ClearFacet(entry.facet)
	}
	return f, nil, false
}

func (f *facetPicker) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	// Flatten facets into display lines, remembering which line each
	// selectable entry lands on so the window can follow the cursor.
	var lines []string
	cursorLine := 0
	idx := 0
	for _, info := range f.screen.Facets() {
		selected := make(map[string]bool, len(info.Selected))
		for _, v := range info.Selected {
			selected[v] = true
		}
		title := info.Label
		if len(info.Selected) > 0 {
			title += " (" + strings.Join(info.Selected, ", ") + ")"
		}
		lines = append(lines, styles.AccentText.Bold(true).Render(truncate(title, 40)))
		if len(info.Options) == 0 {
			lines = append(lines, styles.FaintText.Render("  no values"))
		}
		for _, opt := range info.Options {
			mark := "[ ]"
			if selected[opt] {
				mark = "[x]"
			}
			text := mark + " " + truncate(opt, 32)
			if idx == f.cursor {
				cursorLine = len(lines)
				lines = append(lines, styles.Selected.Render("> "+text))
			} else {
				lines = append(lines, styles.Text.Render("  "+text))
			}
			idx++
		}
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Filter: " + f.screen.Title()))
	b.WriteString("\n\n")
	start, end := window(len(lines), cursorLine, height-12)
	b.WriteString(strings.Join(lines[start:end], "\n"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("space toggle  bksp clear facet"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("x clear all  esc close"))
	return styles.Modal.Width(min(48, max(width-4, 20))).Render(b.String())
}
