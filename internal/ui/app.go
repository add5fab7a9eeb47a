package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/crewdeck/internal/prefs"
	"github.com/five82/crewdeck/internal/screens"
	"github.com/five82/crewdeck/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Screens   []screens.Screen
	Source    string // data source label for the header
	Screen    string // initial screen id
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	LogPath   string // shown by the log overlay
	Logger    *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	screens   []screens.Screen
	source    string
	prefsPath string
	logPath   string
	pollTick  time.Duration
	logger    *zap.Logger
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot

	// Table state
	active int
	cursor int
	offset int

	// Search input
	searching bool
	search    textinput.Model
	prevQuery string

	// Overlays
	showHelp   bool
	modal      Modal
	showDetail bool
	detailKey  string
	detail     viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 120

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		screens:   opts.Screens,
		source:    opts.Source,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		pollTick:  pollTick,
		logger:    logger,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		search:    search,
	}
	if opts.Screen != "" {
		if s, err := screens.Lookup(opts.Screens, opts.Screen); err == nil {
			for i := range opts.Screens {
				if opts.Screens[i] == s {
					m.active = i
				}
			}
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detail = viewport.New(0, 0)
		}
		m.ready = true
		m.syncCursor()
		m.resizeDetail()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.place(m.modal.View(m.theme, m.width, m.height))
	}
	if m.showDetail {
		return m.renderDetail()
	}
	return m.renderMain()
}

func (m Model) current() screens.Screen {
	if len(m.screens) == 0 {
		return nil
	}
	return m.screens[m.active]
}

// handleKey processes keyboard input. Overlays take precedence over the
// table bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = next
		}
		m.syncCursor()
		return m, cmd
	}

	if m.showDetail {
		return m.handleDetailKey(msg)
	}

	cur := m.current()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.NextScreen):
		m.switchScreen(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevScreen):
		m.switchScreen(-1)
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.modal = newLogView(m.logPath)
		return m, nil
	}

	if cur == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.prevQuery = cur.Query()
		m.search.SetValue(m.prevQuery)
		m.search.CursorEnd()
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Facets):
		m.modal = newFacetPicker(cur)
		return m, nil

	case key.Matches(msg, m.keys.Columns):
		m.modal = newColumnMenu(cur)
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		cur.ClearFilters()
		m.syncCursor()
		return m, nil

	case key.Matches(msg, m.keys.SortColumn):
		m.sortByNumber(msg.String())
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.openDetail()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(cur.RowKeys()))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(cur.RowKeys()))
	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveCursor(-max(m.bodyHeight()/2, 1))
	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveCursor(max(m.bodyHeight()/2, 1))
	}

	return m, nil
}

// handleSearchKey feeds the search input. The query is applied on every
// keystroke; esc restores the query that was active before editing.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := m.current()
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		cur.SetQuery(m.prevQuery)
		m.syncCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	cur.SetQuery(m.search.Value())
	m.syncCursor()
	return m, cmd
}

func (m *Model) switchScreen(delta int) {
	n := len(m.screens)
	if n == 0 {
		return
	}
	m.active = ((m.active+delta)%n + n) % n
	m.cursor = 0
	m.offset = 0
	m.syncCursor()
	m.savePrefs()
}

// sortByNumber cycles the sort of the n-th visible column.
func (m *Model) sortByNumber(digit string) {
	idx := int(strings.TrimSpace(digit)[0]-'1')
	headers := m.current().View().Headers
	if idx < 0 || idx >= len(headers) {
		return
	}
	m.current().ClickHeader(headers[idx].Key)
	m.syncCursor()
}

// syncCursor keeps the cursor on the highlighted row when it is still
// visible, otherwise clamps it and moves the highlight.
func (m *Model) syncCursor() {
	cur := m.current()
	if cur == nil {
		return
	}
	keys := cur.RowKeys()
	if len(keys) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	if hl := cur.Highlight(); hl != "" {
		for i, k := range keys {
			if k == hl {
				m.cursor = i
				m.scrollToCursor()
				return
			}
		}
	}
	m.cursor = min(max(m.cursor, 0), len(keys)-1)
	cur.SetHighlight(keys[m.cursor])
	m.scrollToCursor()
}

func (m *Model) moveCursor(delta int) {
	cur := m.current()
	keys := cur.RowKeys()
	if len(keys) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(keys)-1)
	cur.SetHighlight(keys[m.cursor])
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	h := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(m.offset, 0)
}

// bodyHeight is the number of table rows that fit below the header row.
func (m Model) bodyHeight() int {
	return max(m.height-chromeLines, 1)
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	changed := snap.HasData && snap.LastError == nil && !snap.LastUpdated.Equal(m.snapshot.LastUpdated)
	m.snapshot = snap
	if !changed {
		return
	}
	for _, s := range m.screens {
		s.SetData(snap.Data)
	}
	m.syncCursor()
	if m.showDetail {
		m.refreshDetail()
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name}
	if cur := m.current(); cur != nil {
		p.LastScreen = cur.ID()
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.ctx.Err() != nil {
		return m, tea.Quit
	}
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	if cur := m.current(); cur != nil {
		b.WriteString(m.renderTable(cur.View(), m.bodyHeight()+1))
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
