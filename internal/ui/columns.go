package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/crewdeck/internal/screens"
)

// columnMenu toggles, resizes and auto-sizes the columns of one screen.
// Column order is fixed; the menu lists every column including hidden ones.
type columnMenu struct {
	screen screens.Screen
	cursor int
}

func newColumnMenu(s screens.Screen) *columnMenu {
	return &columnMenu{screen: s}
}

func (c *columnMenu) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	cols := c.screen.Columns()
	if len(cols) == 0 {
		return c, nil, true
	}
	selected := cols[min(c.cursor, len(cols)-1)].Key

	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Columns), key.Matches(km, keys.Quit):
		return c, nil, true
	case key.Matches(km, keys.Up):
		c.cursor = max(c.cursor-1, 0)
	case key.Matches(km, keys.Down):
		c.cursor = min(c.cursor+1, len(cols)-1)
	case key.Matches(km, keys.Toggle), key.Matches(km, keys.Open):
		_ = c.screen.ToggleColumn(selected)
	case key.Matches(km, keys.AutoSize):
		_ = c.screen.AutoSizeColumn(selected)
	case key.Matches(km, keys.AutoSizeAll):
		c.screen.AutoSizeAll()
	case key.Matches(km, keys.ShowAll):
		c.screen.ShowAllColumns()
	case key.Matches(km, keys.Widen):
		_ = c.screen.ResizeColumn(selected, 1)
	case key.Matches(km, keys.Narrow):
		_ = c.screen.ResizeColumn(selected, -1)
	}
	return c, nil, false
}

func (c *columnMenu) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	cols := c.screen.Columns()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Columns: " + c.screen.Title()))
	b.WriteString("\n\n")

	start, end := window(len(cols), c.cursor, height-12)
	for i := start; i < end; i++ {
		col := cols[i]
		mark := "[ ]"
		if col.Visible {
			mark = "[x]"
		}
		size := "auto"
		if col.Width > 0 {
			size = fmt.Sprintf("%d", col.Width)
		}
		line := fmt.Sprintf("%s %s", mark, fit(col.Label, 18)) + "  " + size
		if i == c.cursor {
			b.WriteString(styles.Selected.Render("> " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("space toggle  +/- width  a auto  A auto all"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("s show all  esc close"))
	return styles.Modal.Width(min(48, max(width-4, 20))).Render(b.String())
}
