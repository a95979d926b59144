package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func testGameConfig(clock snake.Clock) GameConfig {
	return GameConfig{
		Runtime:    core.RuntimeConfig{RefreshRate: 60, Seed: 11},
		Difficulty: snake.Medium,
		TargetFPS:  10,
		GridSize:   snake.DefaultGridSize,
		Clock:      clock,
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// send runs msg through the model and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelSteersAndSteps(t *testing.T) {
	clock := snake.NewManualClock(time.Unix(0, 0))
	m, err := NewModel(testGameConfig(clock), nil, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	start := m.Scheduler().State().PlayerPosition

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Scheduler().Velocity() != snake.VelocityRight {
		t.Fatalf("Velocity() = %v, expected right", m.Scheduler().Velocity())
	}

	// Not due yet
	m, cmd := send(t, m, TickMsg{Game: m.id})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.Scheduler().Ticks() != 0 {
		t.Errorf("Ticks() = %d before the interval elapsed", m.Scheduler().Ticks())
	}

	clock.Advance(101 * time.Millisecond)
	m, _ = send(t, m, TickMsg{Game: m.id})
	if m.Scheduler().Ticks() != 1 {
		t.Fatalf("Ticks() = %d, expected 1", m.Scheduler().Ticks())
	}
	if got := m.Scheduler().State().PlayerPosition; got != (snake.Position{X: start.X + 1, Y: start.Y}) {
		t.Errorf("PlayerPosition = %v, expected one cell right of %v", got, start)
	}
}

func TestModelIgnoresForeignTicks(t *testing.T) {
	clock := snake.NewManualClock(time.Unix(0, 0))
	m, err := NewModel(testGameConfig(clock), nil, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	clock.Advance(time.Second)
	m, cmd := send(t, m, TickMsg{Game: m.id + 1000})
	if cmd != nil {
		t.Error("a tick from another game should not be rescheduled")
	}
	if m.Scheduler().Ticks() != 0 {
		t.Error("a tick from another game drove the scheduler")
	}
}

func TestModelJournalsInputs(t *testing.T) {
	store := openStore(t)
	clock := snake.NewManualClock(time.Unix(0, 0))
	m, err := NewModel(testGameConfig(clock), store, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if m.SessionID() == 0 {
		t.Fatal("expected a journal session")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp}) // unchanged, not journaled
	for i := 0; i < 3; i++ {
		clock.Advance(101 * time.Millisecond)
		m, _ = send(t, m, TickMsg{Game: m.id})
	}
	m, _ = send(t, m, runeKey('a'))
	clock.Advance(101 * time.Millisecond)
	m, _ = send(t, m, TickMsg{Game: m.id})

	m, cmd := send(t, m, runeKey('q'))
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if m.Scheduler().Phase() != snake.StateStopped {
		t.Error("scheduler still running after quit")
	}

	inputs, err := store.Inputs(m.SessionID())
	if err != nil {
		t.Fatalf("Inputs: %v", err)
	}
	expected := []snake.Input{
		{Tick: 0, Velocity: snake.VelocityUp},
		{Tick: 3, Velocity: snake.VelocityLeft},
	}
	if len(inputs) != len(expected) {
		t.Fatalf("journaled %d inputs, expected %d: %v", len(inputs), len(expected), inputs)
	}
	for i := range expected {
		if inputs[i] != expected[i] {
			t.Errorf("input %d = %+v, expected %+v", i, inputs[i], expected[i])
		}
	}

	sess, err := store.Session(m.SessionID())
	if err != nil || sess == nil {
		t.Fatalf("Session: %v, %v", sess, err)
	}
	if !sess.Ended || sess.Ticks != 4 {
		t.Errorf("session ended=%v ticks=%d, expected true 4", sess.Ended, sess.Ticks)
	}

	// The journal reproduces the game.
	r, err := ReplaySession(store, *sess, false)
	if err != nil {
		t.Fatalf("ReplaySession: %v", err)
	}
	if !r.Scheduler.State().Equal(m.Scheduler().State()) {
		t.Errorf("replay %+v differs from game %+v", r.Scheduler.State(), m.Scheduler().State())
	}
}

func TestModelBackToMenu(t *testing.T) {
	m, err := NewModel(testGameConfig(snake.NewManualClock(time.Unix(0, 0))), nil, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("going back should not quit the program")
	}
	if !m.BackToMenu() {
		t.Error("BackToMenu() = false after esc")
	}
	if _, cmd := send(t, m, TickMsg{Game: m.id}); cmd != nil {
		t.Error("refresh loop kept running after leaving the game")
	}
}

func TestModelHelpToggleAndView(t *testing.T) {
	m, err := NewModel(testGameConfig(snake.NewManualClock(time.Unix(0, 0))), nil, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	m, _ = send(t, m, runeKey('?'))
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}

	view := m.View()
	if !strings.Contains(view, "medium") {
		t.Error("HUD does not show the difficulty")
	}
	if !strings.Contains(view, "tick 0") {
		t.Error("HUD does not show the tick count")
	}
}

func TestModelRejectsInvalidDifficulty(t *testing.T) {
	cfg := testGameConfig(nil)
	cfg.Difficulty = 3
	if _, err := NewModel(cfg, nil, nil); err == nil {
		t.Fatal("expected an error for difficulty 3")
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard(10)
	if b.Screen.Width() != 22 || b.Screen.Height() != 12 {
		t.Fatalf("board is %dx%d, expected 22x12", b.Screen.Width(), b.Screen.Height())
	}
	if b.Screen.Get(0, 0) != '┌' {
		t.Errorf("missing border corner, got %q", b.Screen.Get(0, 0))
	}
	if b.Canvas.Area() != core.NewRect(1, 1, 20, 10) {
		t.Errorf("canvas area = %+v", b.Canvas.Area())
	}
}
