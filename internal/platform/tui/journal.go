package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Journal browser layout constants
const (
	minWidthForPreview = 100 // Minimum width to show the replay next to the table
	maxSessions        = 100 // Max sessions to load
)

// JournalKeyMap defines the key bindings for the journal browser.
type JournalKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Replay key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.Delete, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Replay, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "close replay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing journaled sessions and
// replaying them.
type JournalModel struct {
	store    *storage.Store
	sessions []storage.Session
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	preview  string // rendered final board of the replayed session
	caption  string
	loadErr  error
	quitting bool
}

// NewJournalModel creates a new journal browser.
func NewJournalModel(store *storage.Store, width, height int) JournalModel {
	h := help.New()
	h.ShowAll = false

	m := JournalModel{
		store:  store,
		keys:   DefaultJournalKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadSessions()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Started", Width: 14},
		{Title: "Player", Width: 12},
		{Title: "Difficulty", Width: 10},
		{Title: "Ticks", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSessions reads the most recent sessions from the journal.
func (m *JournalModel) loadSessions() {
	if m.store == nil {
		m.sessions = nil
		m.updateTableRows()
		return
	}

	sessions, err := m.store.RecentSessions(maxSessions)
	if err != nil {
		m.loadErr = err
		m.sessions = nil
	} else {
		m.sessions = sessions
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded sessions.
func (m *JournalModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		player := s.Player
		if player == "" {
			player = "local"
		}
		ticks := fmt.Sprintf("%d", s.Ticks)
		if !s.Ended {
			ticks = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", s.ID),
			s.StartedAt.Format("Jan 02 15:04"),
			player,
			s.Difficulty.String(),
			ticks,
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// replaySelected re-simulates the highlighted session into the preview pane.
func (m *JournalModel) replaySelected() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.sessions) {
		return
	}
	sess := m.sessions[i]

	r, err := ReplaySession(m.store, sess, false)
	if err != nil {
		m.preview = ""
		m.caption = "replay failed: " + err.Error()
		return
	}
	st := r.Scheduler.State()
	m.preview = RenderScreen(r.Board.Screen)
	m.caption = fmt.Sprintf("session %d  tail %d  %.1f steps/s", sess.ID, st.TailSize, r.Scheduler.StepsPerSecond())
}

// deleteSelected removes the highlighted session from the journal.
func (m *JournalModel) deleteSelected() {
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.sessions) {
		return
	}
	id := m.sessions[i].ID

	m.preview = ""
	m.caption = ""
	if err := m.store.DeleteSession(id); err != nil {
		m.caption = "delete failed: " + err.Error()
		return
	}
	m.loadSessions()
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.preview = ""
			m.caption = ""
			return m, nil

		case key.Matches(msg, m.keys.Replay):
			m.replaySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal browser.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("SESSION JOURNAL", m.width)))
	b.WriteString("\n\n")

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableRendered := panelStyle.Render(m.renderTableContent())

	switch {
	case m.preview == "" && m.caption == "":
		b.WriteString(tableRendered)
	case m.width >= minWidthForPreview:
		// Wide layout: table + replay side by side
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", panelStyle.Render(m.renderPreview())))
	default:
		// Narrow layout: the replay replaces the table
		b.WriteString(panelStyle.Render(m.renderPreview()))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m JournalModel) renderPreview() string {
	if m.preview == "" {
		return m.caption
	}
	return lipgloss.JoinVertical(lipgloss.Center, m.preview, m.caption)
}

// renderTableContent renders the table or empty message.
func (m JournalModel) renderTableContent() string {
	if m.loadErr != nil {
		return "Could not read the journal: " + m.loadErr.Error()
	}
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay a game to fill the journal!")
	}

	return m.table.View()
}

// SessionReplay is a journaled session re-run onto a fresh board.
type SessionReplay struct {
	Board     Board
	Scheduler *snake.Scheduler
	Inputs    int // recorded velocity changes
}

// ReplaySession re-runs a journaled session onto a fresh board. With strict,
// recorded velocities that are not a single step are rejected.
func ReplaySession(store *storage.Store, sess storage.Session, strict bool) (SessionReplay, error) {
	inputs, err := store.Inputs(sess.ID)
	if err != nil {
		return SessionReplay{}, err
	}
	cfg := sess.ReplayConfig(inputs)
	cfg.Strict = strict

	board := NewBoard(sess.GridSize)
	sched, err := snake.Replay(cfg, board.Canvas)
	if err != nil {
		return SessionReplay{}, err
	}
	return SessionReplay{Board: board, Scheduler: sched, Inputs: len(inputs)}, nil
}

// RunJournal runs the journal browser.
func RunJournal(store *storage.Store, width, height int) error {
	model := NewJournalModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
