// Package scene owns the live entities of a game and runs the fixed-step
// loop over them: tick subscribers, held-key dispatch, drawing through a
// Renderer, animation, and collision detection.
//
// A Scene is not safe for concurrent use. Everything except asset loading
// happens on the goroutine that calls Tick.
package scene

import (
	"github.com/vovakirdan/tui-shooter/internal/asset"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Category tags an entity for the collision exclusion rules.
type Category int

const (
	// CategoryEnemy is an ordinary collidable splat.
	CategoryEnemy Category = iota
	// CategoryAmmo splats take no part in any collision check.
	CategoryAmmo
	// CategoryMissile splats collide with splats but never with models.
	CategoryMissile
	// CategoryPlayer is the player-controlled model.
	CategoryPlayer
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryEnemy:
		return "enemy"
	case CategoryAmmo:
		return "ammo"
	case CategoryMissile:
		return "missile"
	case CategoryPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Action runs while its bound key is held, once per tick.
type Action func()

// CollideFunc receives the entity that was hit.
type CollideFunc func(other Entity)

// Entity is a drawable, positioned, collidable object owned by a Scene.
// The set of implementations is closed: *Model and *Splat.
type Entity interface {
	ID() string
	Category() Category
	Position() core.Vec3
	SetPosition(x, y, z float64)
	BoundingBox() core.Box
	Visual() *asset.Visual

	// BindKey adds an action for a key. Bindings are additive.
	BindKey(code core.KeyCode, action Action)
	// ClearKey removes every action bound to a key.
	ClearKey(code core.KeyCode)
	// OnCollide replaces the collision callback. nil restores the no-op.
	OnCollide(fn CollideFunc)

	// Advance moves the entity's animation forward by elapsed milliseconds.
	Advance(elapsedMs float64)

	// Release frees the visual. It is idempotent; the entity must already be
	// delisted from its scene.
	Release()
	Released() bool

	base() *entity
}

type binding struct {
	code   core.KeyCode
	action Action
}

// entity holds the state shared by models and splats.
type entity struct {
	id       string
	category Category
	position core.Vec3
	visual   *asset.Visual
	bindings []binding
	collide  CollideFunc
	release  func(*asset.Visual)
	released bool
}

func newEntity(id string, category Category, visual *asset.Visual, release func(*asset.Visual)) entity {
	return entity{
		id:       id,
		category: category,
		visual:   visual,
		release:  release,
	}
}

func (e *entity) base() *entity { return e }

// ID returns the entity's unique id.
func (e *entity) ID() string { return e.id }

// Category returns the collision category.
func (e *entity) Category() Category { return e.category }

// Position returns the current position.
func (e *entity) Position() core.Vec3 { return e.position }

// SetPosition overwrites the position. No bounds are enforced.
func (e *entity) SetPosition(x, y, z float64) {
	e.position = core.V3(x, y, z)
}

// Visual returns the drawable handle. It is owned by the loader.
func (e *entity) Visual() *asset.Visual { return e.visual }

// BindKey adds action for code.
func (e *entity) BindKey(code core.KeyCode, action Action) {
	if action == nil {
		return
	}
	e.bindings = append(e.bindings, binding{code: code, action: action})
}

// ClearKey drops all actions bound to code.
func (e *entity) ClearKey(code core.KeyCode) {
	kept := e.bindings[:0]
	for _, b := range e.bindings {
		if b.code != code {
			kept = append(kept, b)
		}
	}
	clear(e.bindings[len(kept):])
	e.bindings = kept
}

// OnCollide sets the collision callback.
func (e *entity) OnCollide(fn CollideFunc) {
	e.collide = fn
}

// Release frees the visual once.
func (e *entity) Release() {
	if e.released {
		return
	}
	e.released = true
	if e.release != nil && e.visual != nil {
		e.release(e.visual)
	}
}

// Released reports whether Release has run.
func (e *entity) Released() bool { return e.released }

// dispatch runs every action whose key is held, in binding order.
func (e *entity) dispatch(input *core.KeyInputState) {
	for _, b := range e.bindings {
		if input.IsDown(b.code) {
			b.action()
		}
	}
}

// hit invokes the collision callback, if any.
func (e *entity) hit(other Entity) {
	if e.collide != nil {
		e.collide(other)
	}
}
