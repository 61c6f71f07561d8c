package asset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ErrEmptyMesh is returned when a mesh file defines no faces.
var ErrEmptyMesh = errors.New("asset: mesh has no faces")

// Mesh is triangle geometry in model space.
// Vertices and Normals are expanded per face corner, three per triangle.
type Mesh struct {
	Vertices []core.Vec3
	Normals  []core.Vec3
	Bounds   core.Box
}

// NewMesh builds a mesh from expanded triangle vertices and computes its bounds.
func NewMesh(vertices []core.Vec3) *Mesh {
	m := &Mesh{Vertices: vertices}
	m.computeBounds()
	return m
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	return len(m.Vertices) / 3
}

func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = core.Box{}
		return
	}
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = core.V3(min(lo.X, v.X), min(lo.Y, v.Y), min(lo.Z, v.Z))
		hi = core.V3(max(hi.X, v.X), max(hi.Y, v.Y), max(hi.Z, v.Z))
	}
	m.Bounds = core.Box{Min: lo, Max: hi}
}

// ParseOBJ reads the subset of Wavefront OBJ the game needs: "v" and "vn"
// records and "f" faces in the v, v/vt, v//vn or v/vt/vn forms.
// Polygons with more than three corners are split into a triangle fan.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []core.Vec3
		normals   []core.Vec3
		mesh      = &Mesh{}
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			positions = append(positions, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 corners", lineNo)
			}
			corners := fields[1:]
			for i := 1; i+1 < len(corners); i++ {
				for _, c := range []string{corners[0], corners[i], corners[i+1]} {
					v, n, err := resolveCorner(c, positions, normals)
					if err != nil {
						return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
					}
					mesh.Vertices = append(mesh.Vertices, v)
					mesh.Normals = append(mesh.Normals, n)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj read: %w", err)
	}
	if len(mesh.Vertices) == 0 {
		return nil, ErrEmptyMesh
	}

	mesh.computeBounds()
	return mesh, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("bad component %q: %w", fields[i], err)
		}
		xyz[i] = f
	}
	return core.V3(xyz[0], xyz[1], xyz[2]), nil
}

// resolveCorner turns a face corner like "3//2" into its position and normal.
// Indices are 1-based; a missing normal yields the zero vector.
func resolveCorner(corner string, positions, normals []core.Vec3) (core.Vec3, core.Vec3, error) {
	parts := strings.Split(corner, "/")

	vi, err := strconv.Atoi(parts[0])
	if err != nil || vi < 1 || vi > len(positions) {
		return core.Vec3{}, core.Vec3{}, fmt.Errorf("bad vertex index %q", parts[0])
	}

	var n core.Vec3
	if len(parts) == 3 && parts[2] != "" {
		ni, err := strconv.Atoi(parts[2])
		if err != nil || ni < 1 || ni > len(normals) {
			return core.Vec3{}, core.Vec3{}, fmt.Errorf("bad normal index %q", parts[2])
		}
		n = normals[ni-1]
	}
	return positions[vi-1], n, nil
}
