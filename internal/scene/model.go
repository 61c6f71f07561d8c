package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-shooter/internal/asset"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Movement and camera parameters for models.
const (
	MoveStep          = 0.1  // world units per Move unit
	RotationStep      = 0.05 // radians of bank per horizontal Move unit
	MaxRotation       = 0.8  // bank limit in radians
	WrapX             = 6.5  // x wraps to the opposite side past this bound
	ClampY            = 5.0  // y is clamped to ±ClampY
	DefaultModelScale = 0.2

	// FieldOfView is the vertical field of view in radians. It is tuned
	// together with WrapX so the wrap happens just off screen.
	FieldOfView = 45.0
	nearPlane   = 0.1
	farPlane    = 30.0
)

var (
	viewMatrix       = mgl64.LookAtV(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
	projectionMatrix = mgl64.Perspective(FieldOfView, 1, nearPlane, farPlane)
)

// Model is a textured mesh living in world space. The camera looks down -z
// from (0, 0, 10); BoundingBox projects the mesh bounds into NDC so models
// can be tested against splats.
type Model struct {
	entity

	rotation float64 // around y
	scale    float64
	bounds   core.Box // mesh space
	matrix   mgl64.Mat4
}

func newModel(id string, visual *asset.Visual, release func(*asset.Visual)) *Model {
	m := &Model{
		entity: newEntity(id, CategoryPlayer, visual, release),
		scale:  DefaultModelScale,
	}
	if visual != nil && visual.Mesh != nil {
		m.bounds = visual.Mesh.Bounds
	}
	m.matrix = m.transform()
	return m
}

// Rotation returns the bank angle in radians.
func (m *Model) Rotation() float64 { return m.rotation }

// Scale returns the uniform scale factor.
func (m *Model) Scale() float64 { return m.scale }

// SetScale changes the uniform scale factor.
func (m *Model) SetScale(scale float64) { m.scale = scale }

// Move applies one step of player input. dx banks the model and moves it
// sideways; dy moves it vertically. x wraps around at ±WrapX while y is
// clamped at ±ClampY.
func (m *Model) Move(dx, dy float64) {
	m.rotation += dx * RotationStep
	m.position.X += dx * MoveStep
	m.position.Y += dy * MoveStep

	m.rotation = core.ClampF(m.rotation, -MaxRotation, MaxRotation)

	if m.position.X > WrapX {
		m.position.X = -WrapX
	}
	if m.position.X < -WrapX {
		m.position.X = WrapX
	}
	m.position.Y = core.ClampF(m.position.Y, -ClampY, ClampY)
}

// Advance refreshes the model matrix from the current transform.
func (m *Model) Advance(float64) {
	m.matrix = m.transform()
}

// Matrix returns the model matrix computed by the last Advance.
func (m *Model) Matrix() mgl64.Mat4 {
	return m.matrix
}

// transform builds translate * rotate * scale.
func (m *Model) transform() mgl64.Mat4 {
	t := mgl64.Translate3D(m.position.X, m.position.Y, m.position.Z)
	r := mgl64.HomogRotate3DY(m.rotation)
	s := mgl64.Scale3D(m.scale, m.scale, m.scale)
	return t.Mul4(r).Mul4(s)
}

// BoundingBox returns the mesh bounds projected to NDC from the current
// transform. All eight corners are projected and their envelope returned,
// so a banked model still yields min <= max.
func (m *Model) BoundingBox() core.Box {
	mvp := projectionMatrix.Mul4(viewMatrix).Mul4(m.transform())

	lo, hi := m.bounds.Min, m.bounds.Max
	var out core.Box
	for i := range 8 {
		corner := mgl64.Vec4{lo.X, lo.Y, lo.Z, 1}
		if i&1 != 0 {
			corner[0] = hi.X
		}
		if i&2 != 0 {
			corner[1] = hi.Y
		}
		if i&4 != 0 {
			corner[2] = hi.Z
		}

		p := mvp.Mul4x1(corner)
		ndc := core.V3(p[0]/p[3], p[1]/p[3], p[2]/p[3])
		if i == 0 {
			out = core.Box{Min: ndc, Max: ndc}
			continue
		}
		out = core.NewBox(core.V3(min(out.Min.X, ndc.X), min(out.Min.Y, ndc.Y), min(out.Min.Z, ndc.Z)),
			core.V3(max(out.Max.X, ndc.X), max(out.Max.Y, ndc.Y), max(out.Max.Z, ndc.Z)))
	}
	return out
}
