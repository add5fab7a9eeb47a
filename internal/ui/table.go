package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/crewdeck/internal/datatable"
)

// fitColumns assigns each header a display width that fits in total. Columns
// past the right edge get zero; the first one that only partly fits is cut.
func fitColumns(headers []datatable.Header, total int) []int {
	widths := make([]int, len(headers))
	used := 0
	for i, h := range headers {
		if i > 0 {
			used += columnGap
		}
		remaining := total - used
		if remaining <= 0 {
			break
		}
		widths[i] = min(h.Width, remaining)
		used += widths[i]
	}
	return widths
}

// headerText renders a header label with its sort indicator.
func headerText(h datatable.Header, width int) string {
	if !h.Sorted || width < 3 {
		return fit(h.Label, width)
	}
	arrow := "▲"
	if h.Dir == datatable.Desc {
		arrow = "▼"
	}
	return fit(h.Label, width-2) + " " + arrow
}

// joinCells lays cells out at their widths, separated by the column gap.
// Cells with zero width are dropped.
func joinCells(cells []string, widths []int) string {
	parts := make([]string, 0, len(cells))
	for i, c := range cells {
		if i >= len(widths) || widths[i] == 0 {
			continue
		}
		parts = append(parts, c)
	}
	return strings.Join(parts, strings.Repeat(" ", columnGap))
}

// renderTable draws a projected view into exactly height lines: the header
// row followed by the visible window of body rows.
func (m Model) renderTable(v datatable.View, height int) string {
	styles := m.theme.Styles()
	width := max(m.width, 1)

	if v.State == datatable.ViewNoColumns {
		msg := styles.MutedText.Render(truncate(v.Message, width))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	widths := fitColumns(v.Headers, width)
	labels := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		labels[i] = headerText(h, widths[i])
	}
	lines := make([]string, 0, height)
	lines = append(lines, styles.TableHeader.Width(width).Render(joinCells(labels, widths)))

	if v.State == datatable.ViewEmpty {
		span := 0
		for i, w := range widths {
			if w > 0 {
				span += w
				if i > 0 {
					span += columnGap
				}
			}
		}
		lines = append(lines, styles.MutedText.Italic(true).Render(fit(v.Message, max(span, width))))
		return padLines(lines, height)
	}

	end := min(m.offset+height-1, len(v.Rows))
	for _, row := range v.Rows[min(m.offset, end):end] {
		lines = append(lines, m.renderRow(v.Headers, row, widths, styles))
	}
	return padLines(lines, height)
}

func (m Model) renderRow(headers []datatable.Header, row datatable.Row, widths []int, styles Styles) string {
	cells := make([]string, len(row.Cells))
	for i, text := range row.Cells {
		cells[i] = fit(text, widths[i])
	}
	if row.Highlighted {
		return styles.Selected.Width(max(m.width, 1)).Render(joinCells(cells, widths))
	}
	for i, h := range headers {
		if widths[i] == 0 {
			continue
		}
		if h.Key == "status" {
			cells[i] = styles.StatusStyle(row.Cells[i]).Render(cells[i])
		} else {
			cells[i] = styles.Text.Render(cells[i])
		}
	}
	return joinCells(cells, widths)
}

func padLines(lines []string, height int) string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}
