package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

func TestKeyCodeFor(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.KeyCode
		ok   bool
	}{
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.KeyLeft, true},
		{"letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, core.KeyD, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.KeySpace, true},
		{"fire alias", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")}, core.KeyM, true},
		{"unmapped", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyCodeFor(tt.msg)
			if ok != tt.ok || got != tt.want {
				t.Errorf("KeyCodeFor(%q) = %v, %v; want %v, %v", tt.msg.String(), got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHeldKeysExpire(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := newHeldKeys(150 * time.Millisecond)
	input := core.NewKeyInputState()

	h.press(core.KeyLeft, t0)
	h.apply(input, t0.Add(100*time.Millisecond))
	if !input.IsDown(core.KeyLeft) {
		t.Fatal("key should be held within the hold window")
	}

	// A repeat press extends the hold.
	h.press(core.KeyLeft, t0.Add(120*time.Millisecond))
	h.apply(input, t0.Add(250*time.Millisecond))
	if !input.IsDown(core.KeyLeft) {
		t.Fatal("repeat should keep the key held")
	}

	h.apply(input, t0.Add(300*time.Millisecond))
	if input.IsDown(core.KeyLeft) {
		t.Fatal("key should be released after the hold window")
	}
}

func TestHelpListsBindings(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Fatal("empty short help")
	}
	n := 0
	for _, col := range km.FullHelp() {
		n += len(col)
	}
	if n != 8 {
		t.Errorf("full help has %d bindings, want 8", n)
	}
}
