package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func TestJournalModelEmpty(t *testing.T) {
	m := NewJournalModel(openStore(t), 80, 24)
	if !strings.Contains(m.View(), "No sessions recorded yet") {
		t.Error("empty journal message missing")
	}
}

func TestJournalModelReplay(t *testing.T) {
	store := openStore(t)
	id, err := store.StartSession(storage.Session{Seed: 3, Difficulty: snake.Hard, GridSize: 20, TargetFPS: 6})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := store.RecordInput(id, snake.Input{Tick: 0, Velocity: snake.VelocityRight}); err != nil {
		t.Fatalf("RecordInput: %v", err)
	}
	if err := store.EndSession(id, 5); err != nil {
		t.Fatalf("EndSession: %v", err)
	}

	m := NewJournalModel(store, 120, 40)
	if len(m.sessions) != 1 {
		t.Fatalf("loaded %d sessions, expected 1", len(m.sessions))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(JournalModel)
	if m.preview == "" {
		t.Fatalf("no replay preview, caption %q", m.caption)
	}
	if !strings.Contains(m.caption, "session 1") {
		t.Errorf("caption = %q", m.caption)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(JournalModel)
	if m.preview != "" {
		t.Error("esc should close the preview")
	}

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestJournalModelDelete(t *testing.T) {
	store := openStore(t)
	var ids []int64
	for seed := int64(1); seed <= 2; seed++ {
		id, err := store.StartSession(storage.Session{Seed: seed, Difficulty: snake.Easy, GridSize: 20, TargetFPS: 6})
		if err != nil {
			t.Fatalf("StartSession: %v", err)
		}
		ids = append(ids, id)
	}

	m := NewJournalModel(store, 80, 24)
	// Newest first: the cursor is on the second session.
	next, _ := m.Update(runeKey('d'))
	m = next.(JournalModel)

	if len(m.sessions) != 1 || m.sessions[0].ID != ids[0] {
		t.Fatalf("sessions after delete = %+v, expected only %d", m.sessions, ids[0])
	}
	sess, err := store.Session(ids[1])
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if sess != nil {
		t.Error("deleted session still in the journal")
	}
}

func TestReplaySessionStrict(t *testing.T) {
	store := openStore(t)
	id, err := store.StartSession(storage.Session{Seed: 5, Difficulty: snake.Medium, GridSize: 20, TargetFPS: 6})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := store.RecordInput(id, snake.Input{Tick: 0, Velocity: snake.Velocity{X: 1, Y: 1}}); err != nil {
		t.Fatalf("RecordInput: %v", err)
	}
	if err := store.EndSession(id, 2); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	sess, err := store.Session(id)
	if err != nil || sess == nil {
		t.Fatalf("Session(%d) = %v, %v", id, sess, err)
	}

	r, err := ReplaySession(store, *sess, false)
	if err != nil {
		t.Fatalf("ReplaySession: %v", err)
	}
	if r.Inputs != 1 || r.Scheduler.Ticks() != 2 {
		t.Errorf("replay inputs=%d ticks=%d, expected 1 and 2", r.Inputs, r.Scheduler.Ticks())
	}

	if _, err := ReplaySession(store, *sess, true); !errors.Is(err, snake.ErrInvalidVelocity) {
		t.Errorf("strict ReplaySession error = %v, expected ErrInvalidVelocity", err)
	}
}
