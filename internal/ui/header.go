package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/crewdeck/internal/datatable"
)

// renderHeader renders the status bar: logo, source, load state and counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	snap := m.snapshot

	parts := []string{bg.Render("crewdeck", styles.Logo)}
	if m.source != "" {
		parts = append(parts, bg.Render(m.source, styles.MutedText))
	}

	switch {
	case !snap.HasData && snap.LastError != nil:
		parts = append(parts,
			bg.Render("LOAD FAILED", styles.DangerText),
			bg.Render(truncate(snap.LastError.Error(), 60), styles.MutedText),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
		)
	case !snap.HasData:
		parts = append(parts, bg.Render("Loading...", styles.WarningText.Bold(true)))
	default:
		if snap.IsStale() {
			parts = append(parts, bg.Render(fmt.Sprintf("● STALE (%d failures)", snap.ConsecutiveFailures), styles.WarningText.Bold(true)))
		} else {
			parts = append(parts, bg.Render("● LIVE", styles.SuccessText))
		}
		if m.width >= LayoutCompactWidth {
			data := snap.Data
			parts = append(parts,
				bg.Render("Vessels:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprint(len(data.Vessels)), styles.Text),
				bg.Render("Onboard:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprint(len(data.Onboard())), styles.Text),
				bg.Render("Ashore:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprint(len(data.Vacationers())), styles.Text),
			)
		}
		if !snap.LastUpdated.IsZero() {
			parts = append(parts, bg.Render("updated "+humanize.Time(snap.LastUpdated), styles.FaintText))
		}
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, 2))
}

// renderTabs renders one tab per screen with its filtered/total row count.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	compact := m.width < LayoutCompactWidth
	tabs := make([]string, len(m.screens))
	for i, s := range m.screens {
		label := s.Title()
		if !compact {
			visible, total := s.Counts()
			if visible == total {
				label = fmt.Sprintf("%s (%d)", label, total)
			} else {
				label = fmt.Sprintf("%s (%d/%d)", label, visible, total)
			}
		}
		if i == m.active {
			tabs[i] = styles.ActiveTab.Render(label)
		} else {
			tabs[i] = styles.Tab.Render(label)
		}
	}
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(strings.Join(tabs, ""))
}

// renderFooter shows the search input while editing, otherwise the active
// query, facet selections and sort alongside key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	if m.searching {
		return styles.Footer.Width(m.width).Render(m.search.View())
	}

	var parts []string
	if cur := m.current(); cur != nil {
		parts = append(parts, filterSummary(cur.FilterState(), cur.Sort())...)
	}
	summary := make([]string, len(parts))
	for i, p := range parts {
		summary[i] = bg.Render(p, styles.AccentText)
	}

	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, hintText(b))
	}
	line := bg.Join(summary, 2)
	if line != "" {
		line += bg.Spaces(3)
	}
	line += bg.Render(strings.Join(hints, "  "), styles.MutedText)
	return styles.Footer.Width(m.width).MaxHeight(1).Render(line)
}

func hintText(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + strings.ToLower(h.Desc)
}

// filterSummary describes the active query, facet selections and sort.
func filterSummary(fs datatable.FilterState, sort datatable.SortConfig) []string {
	var parts []string
	if q := strings.TrimSpace(fs.Query); q != "" {
		parts = append(parts, "/"+truncate(q, 18))
	}
	for _, facet := range fs.ActiveFacets() {
		parts = append(parts, facet+"="+strings.Join(fs.Selected(facet), ","))
	}
	if sort.Active() {
		parts = append(parts, "sort "+sort.Key+" "+sort.Direction.String())
	}
	return parts
}
