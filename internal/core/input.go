package core

import (
	"fmt"
	"slices"
)

// KeyCode identifies a physical key. Values follow the DOM keyCode numbering,
// so bindings read the same whichever front end feeds the events.
type KeyCode int

// Key codes used by the shooter.
const (
	KeySpace KeyCode = 32
	KeyLeft  KeyCode = 37
	KeyUp    KeyCode = 38
	KeyRight KeyCode = 39
	KeyDown  KeyCode = 40
	KeyA     KeyCode = 65
	KeyD     KeyCode = 68
	KeyM     KeyCode = 77
	KeyS     KeyCode = 83
	KeyW     KeyCode = 87
)

// String returns a human-readable name for the key.
func (k KeyCode) String() string {
	switch k {
	case KeySpace:
		return "Space"
	case KeyLeft:
		return "Left"
	case KeyUp:
		return "Up"
	case KeyRight:
		return "Right"
	case KeyDown:
		return "Down"
	}
	if k >= 65 && k <= 90 {
		return string(rune(k))
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// KeyInputState tracks which keys are currently held down.
// The zero value is ready to use. Unknown keys are reported as up.
type KeyInputState struct {
	down map[KeyCode]bool
}

// NewKeyInputState creates an empty input state.
func NewKeyInputState() *KeyInputState {
	return &KeyInputState{down: make(map[KeyCode]bool)}
}

// SetDown marks a key as held.
func (s *KeyInputState) SetDown(code KeyCode) {
	if s.down == nil {
		s.down = make(map[KeyCode]bool)
	}
	s.down[code] = true
}

// SetUp marks a key as released.
func (s *KeyInputState) SetUp(code KeyCode) {
	delete(s.down, code)
}

// IsDown returns true if the key is currently held.
func (s *KeyInputState) IsDown(code KeyCode) bool {
	return s.down[code]
}

// Held returns the held keys in ascending order.
func (s *KeyInputState) Held() []KeyCode {
	held := make([]KeyCode, 0, len(s.down))
	for code := range s.down {
		held = append(held, code)
	}
	slices.Sort(held)
	return held
}

// Reset releases every key.
func (s *KeyInputState) Reset() {
	clear(s.down)
}
