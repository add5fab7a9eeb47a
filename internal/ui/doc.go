// Package ui provides the crewdeck terminal interface.
//
// The interface is a Bubble Tea program. Model hosts one tab per screen from
// the screens package and draws the active screen's projected table view.
// Data arrives from a state.Store polled on a tick, so the UI never blocks on
// the repository.
//
// Interaction:
//
//   - tab/shift+tab switch screens; j/k, g/G and ctrl+d/u move the cursor
//   - / edits the search query, applied on every keystroke
//   - f opens the facet picker, x clears search and facets
//   - 1-9 cycle the sort of the n-th visible column
//   - c opens the column menu (toggle, resize, auto-size)
//   - enter opens the detail pane for the highlighted row
//   - l shows the tail of the application log
//   - T cycles the theme, persisted with the current screen to prefs
//
// RenderPlain draws the same view as a static text table for the CLI.
package ui
