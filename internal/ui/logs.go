package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/crewdeck/internal/logtail"
)

const logTailLines = 400

// logView shows the tail of the application log, newest line last.
type logView struct {
	path    string
	entries []logtail.Entry
	err     error
	offset  int // lines scrolled up from the bottom
}

func newLogView(path string) *logView {
	v := &logView{path: path}
	v.reload()
	return v
}

func (v *logView) reload() {
	v.entries = nil
	v.err = nil
	if v.path == "" {
		return
	}
	lines, err := logtail.Read(v.path, logTailLines)
	if err != nil {
		v.err = err
		return
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		v.entries = append(v.entries, logtail.Parse(line))
	}
	v.offset = 0
}

func (v *logView) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil, false
	}
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Logs), key.Matches(km, keys.Quit):
		return v, nil, true
	case key.Matches(km, keys.Up):
		v.offset = min(v.offset+1, max(len(v.entries)-1, 0))
	case key.Matches(km, keys.Down):
		v.offset = max(v.offset-1, 0)
	case key.Matches(km, keys.Top):
		v.offset = max(len(v.entries)-1, 0)
	case key.Matches(km, keys.Bottom):
		v.offset = 0
	case key.Matches(km, keys.Reload):
		v.reload()
	}
	return v, nil, false
}

func (v *logView) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	inner := max(width-8, 20)
	rows := max(height-8, 1)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Log"))
	if v.path != "" {
		b.WriteString(styles.MutedText.Render("  " + truncate(v.path, inner-5)))
	}
	b.WriteString("\n\n")

	switch {
	case v.path == "":
		b.WriteString(styles.MutedText.Render("Logging is disabled. Set log_path in the config file."))
	case v.err != nil:
		b.WriteString(styles.DangerText.Render(truncate(v.err.Error(), inner)))
	case len(v.entries) == 0:
		b.WriteString(styles.MutedText.Render("The log is empty."))
	default:
		end := len(v.entries) - v.offset
		start := max(end-rows, 0)
		for i := start; i < end; i++ {
			b.WriteString(v.renderEntry(styles, v.entries[i], inner))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("j/k scroll  r reload  esc close"))
	return styles.Modal.Width(inner + 4).Render(b.String())
}

func (v *logView) renderEntry(styles Styles, e logtail.Entry, width int) string {
	return levelStyle(styles, e.Level).Render(truncate(e.String(), width))
}

func levelStyle(styles Styles, level string) lipgloss.Style {
	switch level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "INFO":
		return styles.Text
	default:
		return styles.MutedText
	}
}
