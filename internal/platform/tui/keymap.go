package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// KeyMap holds the bindings shown in the help line.
type KeyMap struct {
	Move    key.Binding
	Fire    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Start   key.Binding
	Shot    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Move: key.NewBinding(
			key.WithKeys("left", "right", "up", "down", "a", "d", "w", "s"),
			key.WithHelp("←→↑↓/wasd", "move"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "m"),
			key.WithHelp("space", "fire"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Fire, k.Pause, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Fire},
		{k.Pause, k.Restart, k.Start},
		{k.Shot, k.Help, k.Quit},
	}
}

// keyCodes maps Bubble Tea key strings to scene key codes.
var keyCodes = map[string]core.KeyCode{
	"left":  core.KeyLeft,
	"right": core.KeyRight,
	"up":    core.KeyUp,
	"down":  core.KeyDown,
	" ":     core.KeySpace,
	"a":     core.KeyA,
	"d":     core.KeyD,
	"w":     core.KeyW,
	"s":     core.KeyS,
	"m":     core.KeyM,
}

// KeyCodeFor returns the scene key code for a key message.
func KeyCodeFor(msg tea.KeyMsg) (core.KeyCode, bool) {
	code, ok := keyCodes[msg.String()]
	return code, ok
}

// heldKeys emulates key release. Terminals only report presses (and
// auto-repeat), so a key counts as held until hold has passed since its
// last press.
type heldKeys struct {
	hold time.Duration
	seen map[core.KeyCode]time.Time
}

func newHeldKeys(hold time.Duration) *heldKeys {
	return &heldKeys{hold: hold, seen: make(map[core.KeyCode]time.Time)}
}

func (h *heldKeys) press(code core.KeyCode, now time.Time) {
	h.seen[code] = now
}

// apply writes the held set into input, releasing keys not seen for longer
// than hold.
func (h *heldKeys) apply(input *core.KeyInputState, now time.Time) {
	for code, at := range h.seen {
		if now.Sub(at) > h.hold {
			delete(h.seen, code)
			input.SetUp(code)
			continue
		}
		input.SetDown(code)
	}
}

func (h *heldKeys) reset() {
	clear(h.seen)
}
