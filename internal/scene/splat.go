package scene

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/asset"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Default splat animation parameters.
const (
	DefaultSplatSize = 0.2  // width and height in NDC units
	PhaseRate        = 0.01 // phase advance per elapsed millisecond
	DriftAmplitude   = 0.02 // horizontal sway per tick
	RiseStep         = 0.03 // upward step per tick
	ViewportTop      = 1.0  // y above which a splat has left the viewport
)

// AdvanceFunc replaces a splat's built-in animation.
type AdvanceFunc func(s *Splat, elapsedMs float64)

// LeaveViewportFunc is called with the position of a splat that drifted past
// the top of the viewport.
type LeaveViewportFunc func(s *Splat, pos core.Vec3)

// Splat is a camera-facing sprite placed directly in NDC space.
// Its position is the bottom-left corner of its box.
type Splat struct {
	entity

	width   float64
	height  float64
	phase   float64
	advance AdvanceFunc
	onLeave LeaveViewportFunc
}

func newSplat(id string, category Category, visual *asset.Visual, release func(*asset.Visual)) *Splat {
	return &Splat{
		entity: newEntity(id, category, visual, release),
		width:  DefaultSplatSize,
		height: DefaultSplatSize,
	}
}

// Size returns the splat's width and height.
func (s *Splat) Size() (w, h float64) {
	return s.width, s.height
}

// SetSize changes the splat's extents.
func (s *Splat) SetSize(w, h float64) {
	s.width, s.height = w, h
}

// SetAdvance substitutes the per-frame update. nil restores the default.
func (s *Splat) SetAdvance(fn AdvanceFunc) {
	s.advance = fn
}

// OnLeaveViewport sets the callback fired when the default animation carries
// the splat past the top of the viewport.
func (s *Splat) OnLeaveViewport(fn LeaveViewportFunc) {
	s.onLeave = fn
}

// BoundingBox returns position as min corner and position+size as max corner.
func (s *Splat) BoundingBox() core.Box {
	return core.Box{
		Min: s.position,
		Max: s.position.Add(core.V3(s.width, s.height, 0)),
	}
}

// Advance runs the custom update if one is set, otherwise the default:
// rise by a fixed step and sway sideways on a sine of the accumulated phase.
func (s *Splat) Advance(elapsedMs float64) {
	if s.advance != nil {
		s.advance(s, elapsedMs)
		return
	}

	s.phase += PhaseRate * elapsedMs
	s.position.Y += RiseStep
	s.position.X += DriftAmplitude * math.Sin(s.phase)

	if s.position.Y > ViewportTop && s.onLeave != nil {
		s.onLeave(s, s.position)
	}
}
