package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/crewdeck/internal/screens"
)

// openDetail shows the detail pane for the highlighted row.
func (m *Model) openDetail() {
	cur := m.current()
	keyID := cur.Highlight()
	if keyID == "" {
		return
	}
	if _, ok := cur.Detail(keyID); !ok {
		return
	}
	m.detailKey = keyID
	m.showDetail = true
	m.resizeDetail()
	m.refreshDetail()
	m.detail.GotoTop()
}

// refreshDetail re-renders the detail content, closing the pane when the
// record has gone away.
func (m *Model) refreshDetail() {
	fields, ok := m.current().Detail(m.detailKey)
	if !ok {
		m.showDetail = false
		m.detailKey = ""
		return
	}
	m.detail.SetContent(formatFields(fields, m.theme.Styles(), m.detail.Width))
}

func (m *Model) resizeDetail() {
	m.detail.Width = max(min(72, m.width-8), 10)
	m.detail.Height = max(m.height-10, 3)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.showDetail = false
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshDetail()
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	title := m.current().Title() + " " + m.detailKey

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.detail.View())
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("j/k scroll  esc close"))
	return m.place(styles.Modal.Width(m.detail.Width + 6).Render(b.String()))
}

// formatFields lays out label/value pairs in two aligned columns.
func formatFields(fields []screens.Field, styles Styles, width int) string {
	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}
	labelWidth = min(labelWidth+2, max(width/2, 1))

	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = styles.MutedText.Render(fit(f.Label, labelWidth)) +
			styles.Text.Render(truncate(f.Value, max(width-labelWidth, 1)))
	}
	return strings.Join(lines, "\n")
}
