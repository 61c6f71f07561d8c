package tui

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/vovakirdan/tui-shooter/internal/asset"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/scene"
)

func testScene(t *testing.T, r scene.Renderer) *scene.Scene {
	t.Helper()
	fsys := fstest.MapFS{
		"dot.yaml": {Data: []byte("name: dot\ncolor: red\nart: [\"@\"]\n")},
		"gap.yaml": {Data: []byte("name: gap\ncolor: cyan\nart: [\"a b\"]\n")},
		"ship.obj": {Data: []byte("v -1 -1 0\nv 1 -1 0\nv 0 2 0.5\nf 1 2 3\n")},
	}
	sc := scene.New(scene.Options{Renderer: r, Loader: asset.NewLoader(asset.WithFS(fsys))})
	t.Cleanup(func() { _ = sc.Close() })
	return sc
}

func TestDrawSplatMapsTopLeftCorner(t *testing.T) {
	r := NewTerminalRenderer(20, 10)
	sc := testScene(t, r)

	sp, err := sc.AddSplat(context.Background(), "dot.yaml", "d", scene.CategoryEnemy)
	if err != nil {
		t.Fatalf("AddSplat: %v", err)
	}
	// Box top-left is (-0.05, 0.25): column 9, row 3.
	sp.SetPosition(-0.05, 0.05, 0)

	r.DrawSplat(sp)

	cell := r.Screen().GetCell(9, 3)
	if cell.Rune != '@' || cell.Color != core.ColorRed {
		t.Errorf("cell (9,3) = %q/%v, want '@'/red", cell.Rune, cell.Color)
	}
}

func TestDrawSplatBlend(t *testing.T) {
	tests := []struct {
		name  string
		blend bool
		want  rune
	}{
		{"opaque spaces overwrite", false, ' '},
		{"blended spaces are transparent", true, '#'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTerminalRenderer(20, 10)
			sc := testScene(t, r)
			sp, err := sc.AddSplat(context.Background(), "gap.yaml", "g", scene.CategoryEnemy)
			if err != nil {
				t.Fatalf("AddSplat: %v", err)
			}
			sp.SetPosition(-0.05, 0.05, 0)

			r.Screen().DrawRect(core.NewRect(0, 0, 20, 10), '#', core.ColorDefault)
			r.SetBlend(tt.blend)
			r.DrawSplat(sp)

			if got := r.Screen().Get(9, 3); got != 'a' {
				t.Errorf("first glyph = %q, want 'a'", got)
			}
			if got := r.Screen().Get(10, 3); got != tt.want {
				t.Errorf("gap = %q, want %q", got, tt.want)
			}
			if got := r.Screen().Get(11, 3); got != 'b' {
				t.Errorf("last glyph = %q, want 'b'", got)
			}
		})
	}
}

func TestDrawModelBanks(t *testing.T) {
	r := NewTerminalRenderer(20, 10)
	sc := testScene(t, r)
	m, err := sc.AddModel(context.Background(), "ship.obj", "ship")
	if err != nil {
		t.Fatalf("AddModel: %v", err)
	}

	r.DrawModel(m)
	if !strings.Contains(r.Screen().String(), "/A\\") {
		t.Errorf("level ship not drawn:\n%s", r.Screen().String())
	}

	for range 7 {
		m.Move(1, 0)
	}
	m.Advance(0)
	r.Clear()
	r.DrawModel(m)
	if !strings.Contains(r.Screen().String(), "/A>") {
		t.Errorf("banked ship not drawn (rotation %.2f):\n%s", m.Rotation(), r.Screen().String())
	}
}

func TestDrawBackgroundIsDeterministic(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewTerminalRenderer(80, 24)
	b := NewTerminalRenderer(80, 24)

	a.DrawBackground(t0)
	b.DrawBackground(t0)
	if a.Screen().String() != b.Screen().String() {
		t.Fatal("same time drew different backgrounds")
	}

	stars := 0
	for _, ch := range a.Screen().String() {
		switch ch {
		case '.', '*':
			stars++
		case ' ', '\n':
		default:
			t.Fatalf("unexpected background glyph %q", ch)
		}
	}
	if stars == 0 {
		t.Error("background drew no stars")
	}
}

func TestSceneTickDrawsIntoBuffer(t *testing.T) {
	r := NewTerminalRenderer(20, 10)
	sc := testScene(t, r)
	sp, err := sc.AddSplat(context.Background(), "dot.yaml", "d", scene.CategoryAmmo)
	if err != nil {
		t.Fatalf("AddSplat: %v", err)
	}
	sp.SetPosition(-0.05, 0.05, 0)
	sp.SetAdvance(func(*scene.Splat, float64) {})

	sc.Start()
	if err := sc.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if r.Blend() {
		t.Error("blend left on after the frame")
	}
	if got := r.Screen().Get(9, 3); got != '@' {
		t.Errorf("cell (9,3) = %q, want '@'", got)
	}
}
