package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/crewdeck/internal/datatable"
)

// RenderPlain writes a projected view as a bordered text table. Cells are
// cut to their header widths, so explicit column widths carry over from the
// TUI. An empty view closes the header with a single full-width row holding
// its message.
func RenderPlain(w io.Writer, v datatable.View) error {
	if v.State == datatable.ViewNoColumns {
		_, err := fmt.Fprintln(w, v.Message)
		return err
	}

	widths := make([]int, len(v.Headers))
	labels := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		widths[i] = h.Width
		labels[i] = headerText(h, h.Width)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(labels...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})

	if v.State == datatable.ViewEmpty {
		head := strings.TrimRight(t.BorderBottom(false).Render(), "\n")
		_, err := fmt.Fprintln(w, head+"\n"+messageRow(v.Message, lipgloss.Width(head)))
		return err
	}

	for _, row := range v.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = fit(c, widths[i])
		}
		t.Row(cells...)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// messageRow draws msg as the closing row of a table that is width cells
// wide, borders included.
func messageRow(msg string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, true, true).
		Padding(0, 1).
		Width(max(width-2, 1)).
		Render(msg)
}
