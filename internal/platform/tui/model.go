package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// GameConfig describes one game.
type GameConfig struct {
	Runtime    core.RuntimeConfig
	Difficulty snake.Difficulty
	TargetFPS  int
	GridSize   int
	Player     string // recorded in the journal; empty for local play

	// Clock drives the scheduler; nil means the wall clock.
	Clock snake.Clock
}

var (
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for a running game.
type Model struct {
	id        int64
	sched     *snake.Scheduler
	board     Board
	store     *storage.Store
	sessionID int64
	logger    *log.Logger
	keyMapper *KeyMapper
	help      help.Model
	config    GameConfig
	status    string
	quitting  bool
	back      bool
}

// NewModel starts a scheduler drawing onto a fresh board and, when store is
// not nil, opens a journal session for it.
func NewModel(cfg GameConfig, store *storage.Store, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	// Use time-based seed if not specified
	if cfg.Runtime.Seed == 0 {
		cfg.Runtime.Seed = time.Now().UnixNano()
	}
	if cfg.GridSize <= 0 {
		cfg.GridSize = snake.DefaultGridSize
	}
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = snake.DefaultTargetFPS
	}
	if cfg.Clock == nil {
		cfg.Clock = snake.SystemClock
	}

	board := NewBoard(cfg.GridSize)

	var sched *snake.Scheduler
	observe := func(res snake.StepResult) {
		switch {
		case res.Reset:
			logger.Debug("collision", "tick", sched.Ticks(), "tail", res.State.TailSize, "interval", sched.FrameInterval())
		case res.Ate:
			logger.Debug("apple eaten", "tick", sched.Ticks(), "tail", res.State.TailSize, "interval", sched.FrameInterval())
		}
	}

	sched, err := snake.Start(cfg.Difficulty, cfg.TargetFPS, board.Canvas, nil,
		snake.WithClock(cfg.Clock),
		snake.WithSeed(cfg.Runtime.Seed),
		snake.WithGridSize(cfg.GridSize),
		snake.WithStepObserver(observe),
	)
	if err != nil {
		return Model{}, err
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		id:        nextGameID(),
		sched:     sched,
		board:     board,
		store:     store,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		help:      h,
		config:    cfg,
	}

	if store != nil {
		id, err := store.StartSession(storage.Session{
			Seed:       cfg.Runtime.Seed,
			Difficulty: cfg.Difficulty,
			GridSize:   cfg.GridSize,
			TargetFPS:  cfg.TargetFPS,
			Player:     cfg.Player,
		})
		if err != nil {
			// Continue without the journal
			logger.Warn("could not start journal session", "error", err)
		} else {
			m.sessionID = id
		}
	}

	logger.Info("game started",
		"session", m.sessionID,
		"seed", cfg.Runtime.Seed,
		"difficulty", cfg.Difficulty,
		"fps", cfg.TargetFPS,
	)
	return m, nil
}

// Init starts the display refresh loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.id, m.config.Runtime.RefreshRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.Runtime.ScreenW = msg.Width
		m.config.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Game != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.finish()
		m.back = true
		return m, nil
	case core.ActionScreenshot:
		path, err := m.saveScreenshot()
		if err != nil {
			m.status = "screenshot failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
		return m, nil
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if v, ok := VelocityForAction(action); ok {
		m.steer(v)
	}
	return m, nil
}

// steer hands a new velocity to the scheduler and journals the change.
func (m Model) steer(v snake.Velocity) {
	if v == m.sched.Velocity() {
		return
	}
	m.sched.SetVelocity(v)
	if m.store == nil || m.sessionID == 0 {
		return
	}
	in := snake.Input{Tick: m.sched.Ticks(), Velocity: v}
	if err := m.store.RecordInput(m.sessionID, in); err != nil {
		m.logger.Warn("could not journal input", "session", m.sessionID, "error", err)
	}
}

// handleTick gives the scheduler its per-frame callback.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.back {
		return m, nil
	}
	m.sched.Frame()
	return m, tickCmd(m.id, m.config.Runtime.RefreshRate)
}

// finish stops the scheduler and closes the journal session. Safe to call twice.
func (m Model) finish() {
	if m.sched.Phase() == snake.StateStopped {
		return
	}
	m.sched.Stop()
	m.logger.Info("game ended", "session", m.sessionID, "ticks", m.sched.Ticks())

	if m.store == nil || m.sessionID == 0 {
		return
	}
	if err := m.store.EndSession(m.sessionID, m.sched.Ticks()); err != nil {
		m.logger.Warn("could not end journal session", "session", m.sessionID, "error", err)
	}
}

// saveScreenshot writes the plain-text board to ~/.snake/screenshots.
func (m Model) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.board.Screen.String()+"\n"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// hud summarizes the running game below the board.
func (m Model) hud() string {
	st := m.sched.State()
	return fmt.Sprintf("%s  tail %d  %.1f steps/s  tick %d",
		m.sched.Difficulty(), st.TailSize, m.sched.StepsPerSecond(), m.sched.Ticks())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{
		RenderScreen(m.board.Screen),
		hudStyle.Render(m.hud()),
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, helpStyle.Render(m.help.View(m.keyMapper.Keys())))
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	w, h := m.config.Runtime.ScreenW, m.config.Runtime.ScreenH
	if w <= 0 || h <= 0 {
		return content
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, content)
}

// Scheduler exposes the running scheduler.
func (m Model) Scheduler() *snake.Scheduler {
	return m.sched
}

// SessionID returns the journal session, or 0 when not journaling.
func (m Model) SessionID() int64 {
	return m.sessionID
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.back
}
