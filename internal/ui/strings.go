package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens a string to the given display width, adding an ellipsis
// if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 1 {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, "…")
}

// fit truncates value to width and pads it on the right so every cell of a
// column occupies exactly width terminal cells.
func fit(value string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(truncate(value, width), width)
}
