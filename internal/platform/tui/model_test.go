package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// stubGame records what the model asks of it.
type stubGame struct {
	input   *core.KeyInputState
	resets  int
	ticks   int
	seeds   []int64
	paused  bool
	state   core.GameState
	tickErr error
	seen    []core.KeyCode
}

func newStubGame() *stubGame { return &stubGame{input: core.NewKeyInputState()} }

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(_ context.Context, rt core.RuntimeConfig) error {
	g.resets++
	g.seeds = append(g.seeds, rt.Seed)
	g.state = core.GameState{}
	g.paused = false
	return nil
}

func (g *stubGame) Tick() (core.GameState, error) {
	g.ticks++
	g.seen = g.input.Held()
	return g.State(), g.tickErr
}

func (g *stubGame) Settle(context.Context) error { return nil }
func (g *stubGame) Input() *core.KeyInputState { return g.input }
func (g *stubGame) TogglePause() { g.paused = !g.paused }
func (g *stubGame) Close() error { return nil }

func (g *stubGame) State() core.GameState {
	st := g.state
	st.Paused = g.paused
	return st
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 42}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelStartsFromTitle(t *testing.T) {
	g := newStubGame()
	m := NewModel(g, NewTerminalRenderer(1, 1), testConfig(), Options{HoldMs: 150})

	if got := m.renderer.Screen().Height(); got != 10 {
		t.Errorf("playfield height = %d, want 10", got)
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	if g.ticks != 0 {
		t.Error("title screen must not tick the game")
	}

	m, _ = update(t, m, runes("x"))
	if m.playing {
		t.Error("any key should not start the game")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.playing || g.resets != 1 {
		t.Fatalf("playing=%v resets=%d after enter", m.playing, g.resets)
	}
	if g.seeds[0] != 42 {
		t.Errorf("seed = %d, want the configured 42", g.seeds[0])
	}
}

func TestModelHoldsKeysBetweenRepeats(t *testing.T) {
	g := newStubGame()
	m := NewModel(g, NewTerminalRenderer(40, 10), testConfig(), Options{HoldMs: 150})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, TickMsg(time.Now()))
	if len(g.seen) != 1 || g.seen[0] != core.KeyLeft {
		t.Fatalf("held during tick = %v, want [left]", g.seen)
	}

	_, _ = update(t, m, TickMsg(time.Now().Add(time.Second)))
	if len(g.seen) != 0 {
		t.Errorf("held after hold window = %v, want none", g.seen)
	}
}

func TestModelPauseAndRestart(t *testing.T) {
	g := newStubGame()
	m := NewModel(g, NewTerminalRenderer(40, 10), testConfig(), Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, runes("p"))
	if !g.paused || !m.State().Paused {
		t.Fatal("p should pause")
	}

	m, _ = update(t, m, runes("r"))
	if g.resets != 1 {
		t.Error("r must not restart a running game")
	}

	g.state.GameOver = true
	m, _ = update(t, m, TickMsg(time.Now()))
	if !m.State().GameOver {
		t.Fatal("game over not picked up on tick")
	}
	m, _ = update(t, m, runes("r"))
	if g.resets != 2 {
		t.Errorf("resets = %d after restart, want 2", g.resets)
	}
	if m.State().GameOver {
		t.Error("state still game over after restart")
	}
}

func TestModelQuitsOnTickError(t *testing.T) {
	g := newStubGame()
	m := NewModel(g, NewTerminalRenderer(40, 10), testConfig(), Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	g.tickErr = errors.New("boom")
	m, cmd := update(t, m, TickMsg(time.Now()))
	if !isQuit(cmd) {
		t.Error("tick error should quit")
	}
	if !errors.Is(m.Err(), g.tickErr) {
		t.Errorf("Err() = %v, want wrapped boom", m.Err())
	}
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel(newStubGame(), NewTerminalRenderer(40, 10), testConfig(), Options{})
	m, cmd := update(t, m, runes("q"))
	if !isQuit(cmd) || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}

func TestModelResizeKeepsChrome(t *testing.T) {
	m := NewModel(newStubGame(), NewTerminalRenderer(40, 10), testConfig(), Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	s := m.renderer.Screen()
	if s.Width() != 100 || s.Height() != 28 {
		t.Errorf("playfield %dx%d, want 100x28", s.Width(), s.Height())
	}
}
