package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"

	"github.com/five82/crewdeck/internal/crew"
	"github.com/five82/crewdeck/internal/datatable"
	"github.com/five82/crewdeck/internal/prefs"
	"github.com/five82/crewdeck/internal/screens"
	"github.com/five82/crewdeck/internal/state"
)

func testDataset() crew.Dataset {
	return crew.Dataset{
		Vessels: []crew.Vessel{
			{ID: "V1", Name: "Nordic Star", IMO: "9301234", Flag: "NO", Type: "Tanker", GrossTonnage: 58000},
			{ID: "V2", Name: "Pacific Dawn", IMO: "9412345", Flag: "PA", Type: "Bulker", GrossTonnage: 31000},
			{ID: "V3", Name: "Baltic Wind", IMO: "9523456", Flag: "NO", Type: "Bulker", GrossTonnage: 24000},
		},
	}
}

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	ds := testDataset()
	store := &state.Store{}
	store.Update(&ds, nil)

	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{
		Store:     store,
		Screens:   screens.All(func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }),
		Screen:    "vessels",
		PrefsPath: prefsPath,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m = update(t, m, snapshotMsg(store.Snapshot()))
	return m, prefsPath
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestModel_StartsOnRequestedScreen(t *testing.T) {
	m, _ := newTestModel(t)
	if got := m.current().ID(); got != "vessels" {
		t.Fatalf("current screen = %q, want vessels", got)
	}
	if got := m.current().Highlight(); got != "V1" {
		t.Fatalf("highlight = %q, want V1", got)
	}
}

func TestModel_TabSwitchesScreenAndSavesPrefs(t *testing.T) {
	m, path := newTestModel(t)
	m = press(t, m, "tab")
	if got := m.current().ID(); got != "changes" {
		t.Fatalf("after tab screen = %q, want changes", got)
	}
	m = press(t, m, "T")
	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", m.theme.Name)
	}

	p, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load error = %v", err)
	}
	want := prefs.Prefs{Theme: "Slate", LastScreen: "changes"}
	if p != want {
		t.Fatalf("prefs = %+v, want %+v", p, want)
	}
}

func TestModel_SearchAppliesPerKeystroke(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/", "b", "a", "l")
	if !m.searching {
		t.Fatalf("searching = false, want true")
	}
	if diff := cmp.Diff([]string{"V3"}, m.current().RowKeys()); diff != "" {
		t.Fatalf("rows while typing mismatch (-want +got):\n%s", diff)
	}
	if got := m.current().Highlight(); got != "V3" {
		t.Fatalf("highlight = %q, want V3", got)
	}

	m = press(t, m, "esc")
	if m.searching || m.current().Query() != "" {
		t.Fatalf("esc left searching=%v query=%q", m.searching, m.current().Query())
	}

	m = press(t, m, "/", "p", "a", "c", "enter")
	if m.searching {
		t.Fatalf("enter did not leave search mode")
	}
	if got := m.current().Query(); got != "pac" {
		t.Fatalf("query = %q, want pac", got)
	}
	if !strings.Contains(m.View(), "/pac") {
		t.Fatalf("footer does not show the active query")
	}
}

func TestModel_NumberKeysCycleSort(t *testing.T) {
	m, _ := newTestModel(t)
	want := []datatable.SortConfig{
		{Key: "id", Direction: datatable.Asc},
		{Key: "id", Direction: datatable.Desc},
		datatable.NoSort,
	}
	for i, w := range want {
		m = press(t, m, "1")
		if got := m.current().Sort(); got != w {
			t.Fatalf("press %d: sort = %+v, want %+v", i+1, got, w)
		}
	}

	m = press(t, m, "9")
	if m.current().Sort().Active() {
		t.Fatalf("key past the last column changed the sort")
	}
}

func TestModel_SortKeepsCursorOnRecord(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "down")
	if got := m.current().Highlight(); got != "V2" {
		t.Fatalf("highlight = %q, want V2", got)
	}
	m = press(t, m, "1", "1")
	if m.cursor != 1 || m.current().Highlight() != "V2" {
		t.Fatalf("cursor = %d highlight = %q, want 1 and V2", m.cursor, m.current().Highlight())
	}
	m = press(t, m, "6")
	if m.cursor != 1 {
		t.Fatalf("cursor after tonnage sort = %d, want 1", m.cursor)
	}
}

func TestModel_EnterOpensDetail(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "down", "enter")
	if !m.showDetail || m.detailKey != "V2" {
		t.Fatalf("showDetail = %v key = %q, want true and V2", m.showDetail, m.detailKey)
	}
	if view := m.View(); !strings.Contains(view, "Pacific Dawn") {
		t.Fatalf("detail view missing vessel name:\n%s", view)
	}
	m = press(t, m, "esc")
	if m.showDetail {
		t.Fatalf("esc did not close detail")
	}
}

func TestModel_ColumnMenuTogglesColumn(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "c")
	if m.modal == nil {
		t.Fatalf("column menu not opened")
	}
	m = press(t, m, " ", "esc")
	if m.modal != nil {
		t.Fatalf("esc did not close column menu")
	}
	for _, h := range m.current().View().Headers {
		if h.Key == "id" {
			t.Fatalf("id column still visible after toggle")
		}
	}

	m = press(t, m, "c", "s", "esc")
	if got := m.current().View().Headers[0].Key; got != "id" {
		t.Fatalf("first header after show all = %q, want id", got)
	}
}

func TestModel_FacetPickerSelectsOption(t *testing.T) {
	m, _ := newTestModel(t)
	// vessels facets: flag (NO, PA) then type (Bulker, Tanker).
	m = press(t, m, "f", "down", " ", "esc")
	if diff := cmp.Diff([]string{"PA"}, m.current().FilterState().Selected("flag")); diff != "" {
		t.Fatalf("flag selection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"V2"}, m.current().RowKeys()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}

	m = press(t, m, "x")
	if !m.current().FilterState().IsZero() {
		t.Fatalf("x did not clear filters")
	}
}

func TestModel_EmptyAndNoColumnStates(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/", "z", "z", "z", "enter")
	if view := m.View(); !strings.Contains(view, "No vessels match the current filters.") {
		t.Fatalf("empty state message missing:\n%s", view)
	}

	for _, c := range m.current().Columns() {
		if c.Visible {
			_ = m.current().ToggleColumn(c.Key)
		}
	}
	if view := m.View(); !strings.Contains(view, "All columns are hidden") {
		t.Fatalf("no-columns placeholder missing:\n%s", view)
	}
}

func TestModel_LogOverlay(t *testing.T) {
	m, _ := newTestModel(t)
	logPath := filepath.Join(t.TempDir(), "crewdeck.log")
	lines := `{"level":"info","ts":"2026-03-01T09:00:00.000Z","msg":"starting","source":"fixture"}
{"level":"warn","ts":"2026-03-01T09:00:05.000Z","msg":"refresh failed","consecutive_failures":1}
`
	if err := os.WriteFile(logPath, []byte(lines), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	m.logPath = logPath

	m = press(t, m, "l")
	lv, ok := m.modal.(*logView)
	if !ok {
		t.Fatalf("modal = %T, want *logView", m.modal)
	}
	if len(lv.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(lv.entries))
	}
	view := m.View()
	for _, want := range []string{"starting source=fixture", "refresh failed consecutive_failures=1"} {
		if !strings.Contains(view, want) {
			t.Errorf("log overlay missing %q", want)
		}
	}

	m = press(t, m, "esc")
	if m.modal != nil {
		t.Fatalf("esc should close the log overlay")
	}
}

func TestModel_LogOverlayWithoutPath(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "l")
	if !strings.Contains(m.View(), "Logging is disabled") {
		t.Fatalf("expected disabled message, got:\n%s", m.View())
	}
}

func TestFitColumns(t *testing.T) {
	headers := []datatable.Header{{Width: 4}, {Width: 10}, {Width: 6}}
	tests := []struct {
		total int
		want  []int
	}{
		{total: 40, want: []int{4, 10, 6}},
		{total: 20, want: []int{4, 10, 2}},
		{total: 10, want: []int{4, 4, 0}},
		{total: 3, want: []int{3, 0, 0}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, fitColumns(headers, tt.total)); diff != "" {
			t.Fatalf("fitColumns(%d) mismatch (-want +got):\n%s", tt.total, diff)
		}
	}
}

func TestHeaderText(t *testing.T) {
	h := datatable.Header{Label: "Status", Width: 10}
	if got := headerText(h, 10); got != "Status    " {
		t.Fatalf("headerText = %q", got)
	}
	h.Sorted, h.Dir = true, datatable.Desc
	if got := headerText(h, 10); got != "Status   ▼" {
		t.Fatalf("headerText sorted = %q", got)
	}
}

func TestTruncateAndFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Nordic Star", 20, "Nordic Star         "},
		{"Nordic Star", 6, "Nordi…"},
		{"東京丸", 4, "東… "},
		{"", 3, "   "},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.width); got != tt.want {
			t.Fatalf("fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRenderPlain(t *testing.T) {
	all := screens.All(nil)
	s, err := screens.Lookup(all, "vessels")
	if err != nil {
		t.Fatalf("Lookup error = %v", err)
	}
	s.SetData(testDataset())
	if err := s.SetSort(datatable.SortConfig{Key: "gt", Direction: datatable.Desc}); err != nil {
		t.Fatalf("SetSort error = %v", err)
	}

	var buf bytes.Buffer
	if err := RenderPlain(&buf, s.View()); err != nil {
		t.Fatalf("RenderPlain error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Name", "GT   ▼", "58,000", "Baltic Wind"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Nordic Star") > strings.Index(out, "Baltic Wind") {
		t.Fatalf("rows not in descending tonnage order:\n%s", out)
	}

	buf.Reset()
	s.SetQuery("nothing here")
	if err := RenderPlain(&buf, s.View()); err != nil {
		t.Fatalf("RenderPlain error = %v", err)
	}
	assertMessageInFrame(t, buf.String(), "No vessels match the current filters.")
}

// assertMessageInFrame checks that msg sits on a bordered row that closes
// the table, with nothing printed after the frame.
func assertMessageInFrame(t *testing.T, out, msg string) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("output too short:\n%s", out)
	}
	msgLine := lines[len(lines)-2]
	if !strings.Contains(msgLine, msg) {
		t.Fatalf("message not on the last table row:\n%s", out)
	}
	if !strings.HasPrefix(msgLine, "│") || !strings.HasSuffix(msgLine, "│") {
		t.Fatalf("message row %q is not inside the frame", msgLine)
	}
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "└") || !strings.HasSuffix(last, "┘") {
		t.Fatalf("table not closed after the message row: %q", last)
	}
	if got, want := lipgloss.Width(msgLine), lipgloss.Width(lines[0]); got != want {
		t.Fatalf("message row width = %d, want %d (header width)", got, want)
	}
}

func TestRenderPlain_EmptyMessageSpansHeader(t *testing.T) {
	v := datatable.View{
		State: datatable.ViewEmpty,
		Headers: []datatable.Header{
			{Key: "id", Label: "ID", Width: 10},
			{Key: "vessel", Label: "Vessel", Width: 14},
		},
		Message: "No contracts match.",
	}
	var buf bytes.Buffer
	if err := RenderPlain(&buf, v); err != nil {
		t.Fatalf("RenderPlain error = %v", err)
	}
	out := buf.String()
	if strings.Count(out, "No contracts match.") != 1 {
		t.Fatalf("message should appear exactly once:\n%s", out)
	}
	assertMessageInFrame(t, out, "No contracts match.")
}

func TestThemes(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
	if got := GetTheme("Unknown").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula", got)
	}
	th := GetTheme("Slate")
	if got := th.StatusColor(" expiring "); got != th.StatusColors["EXPIRING"] {
		t.Fatalf("StatusColor = %q, want %q", got, th.StatusColors["EXPIRING"])
	}
	if got := th.StatusColor("unknown"); got != "" {
		t.Fatalf("StatusColor(unknown) = %q, want empty", got)
	}
}
