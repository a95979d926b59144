package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// SessionOptions configures a play session.
type SessionOptions struct {
	// Game is the template for every game in the session. Its Difficulty is
	// the menu default, or the difficulty played when SkipMenu is set.
	Game     GameConfig
	SkipMenu bool

	Store  *storage.Store // nil disables the journal
	Logger *log.Logger
}

// activeGame holds the running game for every copy of a SessionModel, so the
// game can still be finished after the program has stopped delivering messages.
type activeGame struct {
	mu   sync.Mutex
	game *Model
}

func (a *activeGame) set(g *Model) {
	a.mu.Lock()
	a.game = g
	a.mu.Unlock()
}

func (a *activeGame) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.game != nil {
		a.game.finish()
		a.game = nil
	}
}

// SessionModel manages the full session flow: menu -> game -> menu.
// This is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	runtime  core.RuntimeConfig
	menu     MenuModel
	game     *Model
	active   *activeGame
	inGame   bool
	quitting bool
	err      error
}

// NewSessionModel creates a new session model. With SkipMenu the first game
// is started right away.
func NewSessionModel(opts SessionOptions) (SessionModel, error) {
	m := SessionModel{
		opts:    opts,
		runtime: opts.Game.Runtime,
		menu:    NewMenuModel(opts.Game.Runtime, opts.Game.Difficulty),
		active:  &activeGame{},
	}
	if opts.SkipMenu {
		game, err := m.newGame(opts.Game)
		if err != nil {
			return SessionModel{}, err
		}
		m.game = &game
		m.inGame = true
	}
	return m, nil
}

func (m SessionModel) newGame(cfg GameConfig) (Model, error) {
	cfg.Runtime.ScreenW = m.runtime.ScreenW
	cfg.Runtime.ScreenH = m.runtime.ScreenH
	game, err := NewModel(cfg, m.opts.Store, m.opts.Logger)
	if err != nil {
		return Model{}, err
	}
	m.active.set(&game)
	return game, nil
}

// Close finishes the running game, if any, and ends its journal session.
// Programs can stop without the model seeing a quit key (an SSH disconnect,
// a signal), so callers run Close once the program has exited. Safe to call
// more than once.
func (m SessionModel) Close() {
	if m.active != nil {
		m.active.close()
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.inGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	if m.inGame && m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	// Check if user quit
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if a difficulty was picked
	if selected := m.menu.Selected(); selected != nil {
		cfg := m.opts.Game
		cfg.Difficulty = selected.Difficulty

		game, err := m.newGame(cfg)
		if err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.game = &game
		m.inGame = true
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	// Check if user quit entirely
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if user went back to the menu
	if m.game.BackToMenu() {
		current := m.game.Scheduler().Difficulty()
		m.active.set(nil)
		m.inGame = false
		m.game = nil
		m.menu = NewMenuModel(m.runtime, current)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inGame && m.game != nil {
		return m.game.View()
	}

	return m.menu.View()
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// InGame reports whether a game is running.
func (m SessionModel) InGame() bool {
	return m.inGame
}

// Game returns the running game, or nil in the menu.
func (m SessionModel) Game() *Model {
	return m.game
}

// Run starts the Bubble Tea program for a local session.
func Run(opts SessionOptions) error {
	model, err := NewSessionModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	model.Close()
	if err != nil {
		return err
	}
	if sm, ok := final.(SessionModel); ok {
		return sm.Err()
	}
	return nil
}
