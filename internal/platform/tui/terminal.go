package tui

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/scene"
)

// Background noise parameters. The field drifts downwards at scrollSpeed
// viewport heights per second.
const (
	noiseOctaves     = 3
	noiseFrequency   = 3.1
	noiseAmplitude   = 1.0
	noisePersistence = 0.5
	noiseThreshold   = 0.72
	scrollSpeed      = 0.08
)

// Ship art by bank: level, banking left, banking right.
var (
	shipLevel = []string{" ^ ", "/A\\"}
	shipLeft  = []string{"^  ", "<A\\"}
	shipRight = []string{"  ^", "/A>"}
)

const bankThreshold = 0.3

// TerminalRenderer draws a scene into a cell buffer. Scene coordinates are
// normalized device coordinates: x and y in [-1, 1], y up.
type TerminalRenderer struct {
	screen *core.Screen
	blend  bool
	start  time.Time
}

// NewTerminalRenderer creates a renderer with a width x height buffer.
func NewTerminalRenderer(width, height int) *TerminalRenderer {
	return &TerminalRenderer{screen: core.NewScreen(width, height)}
}

var _ scene.Renderer = (*TerminalRenderer)(nil)

// Screen returns the buffer the renderer draws into.
func (r *TerminalRenderer) Screen() *core.Screen { return r.screen }

// Resize changes the buffer size.
func (r *TerminalRenderer) Resize(width, height int) { r.screen.Resize(width, height) }

// Clear empties the buffer.
func (r *TerminalRenderer) Clear() { r.screen.Clear() }

// SetBlend toggles transparency. With blending on, spaces in sprite art
// leave whatever is underneath.
func (r *TerminalRenderer) SetBlend(on bool) { r.blend = on }

// Blend reports whether blending is on.
func (r *TerminalRenderer) Blend() bool { return r.blend }

// DrawBackground paints a scrolling fractal noise starfield.
func (r *TerminalRenderer) DrawBackground(now time.Time) {
	if r.start.IsZero() {
		r.start = now
	}
	offset := now.Sub(r.start).Seconds() * scrollSpeed

	w, h := r.screen.Width(), r.screen.Height()
	if w == 0 || h == 0 {
		return
	}
	for y := range h {
		v := float64(y)/float64(h) - offset
		for x := range w {
			n := noise(float64(x)/float64(w), v)
			switch {
			case n > noiseThreshold+0.15:
				r.screen.SetCell(x, y, '*', core.ColorWhite)
			case n > noiseThreshold:
				r.screen.SetCell(x, y, '.', core.ColorGray)
			}
		}
	}
}

// noise sums octaves of a sine lattice into [0, 1].
func noise(u, v float64) float64 {
	sum, norm := 0.0, 0.0
	amp, freq := noiseAmplitude, noiseFrequency
	for range noiseOctaves {
		s := math.Sin(u*freq*12.9898+v*freq*78.233) * math.Sin(u*freq*39.346-v*freq*11.135)
		sum += amp * s
		norm += amp
		amp *= noisePersistence
		freq *= 2
	}
	return (sum/norm + 1) / 2
}

// DrawModel draws the ship centred on its projected bounding box. The art
// banks with the model's rotation.
func (r *TerminalRenderer) DrawModel(m *scene.Model) {
	art := shipLevel
	switch rot := m.Rotation(); {
	case rot > bankThreshold:
		art = shipRight
	case rot < -bankThreshold:
		art = shipLeft
	}

	c := m.BoundingBox().Center()
	col := r.col(c.X) - runeWidth(art)/2
	row := r.row(c.Y) - len(art)/2
	r.drawArt(col, row, art, core.ColorBrightGreen)
}

// DrawSplat draws the splat's sprite with its top-left at the top-left of
// the splat's box.
func (r *TerminalRenderer) DrawSplat(s *scene.Splat) {
	v := s.Visual()
	if v == nil || v.Sprite == nil {
		return
	}
	box := s.BoundingBox()
	r.drawArt(r.col(box.Min.X), r.row(box.Max.Y), v.Sprite.Art, v.Sprite.Color)
}

func (r *TerminalRenderer) drawArt(col, row int, art []string, color core.Color) {
	for dy, line := range art {
		x := col
		for _, ch := range line {
			if ch != ' ' || !r.blend {
				r.screen.SetCell(x, row+dy, ch, color)
			}
			x++
		}
	}
}

// col maps NDC x to a column.
func (r *TerminalRenderer) col(x float64) int {
	return int(math.Floor((x + 1) / 2 * float64(r.screen.Width())))
}

// row maps NDC y to a row; +1 is the top line.
func (r *TerminalRenderer) row(y float64) int {
	return int(math.Floor((1 - y) / 2 * float64(r.screen.Height())))
}

func runeWidth(art []string) int {
	w := 0
	for _, line := range art {
		w = max(w, utf8.RuneCountInString(line))
	}
	return w
}
