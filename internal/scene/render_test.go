package scene_test

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/tui-shooter/internal/asset"
	"github.com/vovakirdan/tui-shooter/internal/scene"
	"github.com/vovakirdan/tui-shooter/internal/scene/mocks"
)

func newMockedScene(t *testing.T) (*scene.Scene, *mocks.MockRenderer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)

	loader := asset.NewLoader(asset.WithFS(fstest.MapFS{
		"dot.yaml": {Data: []byte("name: dot\ncolor: red\nart: [\"@\"]\n")},
		"ship.obj": {Data: []byte("v -1 -1 0\nv 1 -1 0\nv 0 2 0\nf 1 2 3\n")},
	}))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := scene.New(scene.Options{
		Renderer: r,
		Loader:   loader,
		Clock:    func() time.Time { return now },
	})
	t.Cleanup(func() { _ = s.Close() })
	return s, r
}

func TestTickDrawOrder(t *testing.T) {
	s, r := newMockedScene(t)
	ctx := context.Background()

	m, err := s.AddModel(ctx, "ship.obj", "ship")
	if err != nil {
		t.Fatalf("AddModel() failed: %v", err)
	}
	first, err := s.AddSplat(ctx, "dot.yaml", "first", scene.CategoryEnemy)
	if err != nil {
		t.Fatalf("AddSplat() failed: %v", err)
	}
	second, err := s.AddSplat(ctx, "dot.yaml", "second", scene.CategoryEnemy)
	if err != nil {
		t.Fatalf("AddSplat() failed: %v", err)
	}
	second.SetPosition(0.8, 0.8, 0)

	gomock.InOrder(
		r.EXPECT().Clear(),
		r.EXPECT().DrawBackground(gomock.Any()),
		r.EXPECT().DrawModel(m),
		r.EXPECT().SetBlend(true),
		r.EXPECT().DrawSplat(first),
		r.EXPECT().DrawSplat(second),
		r.EXPECT().SetBlend(false),
	)

	s.Start()
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
}

func TestTickBlendsEvenWithoutSplats(t *testing.T) {
	s, r := newMockedScene(t)

	gomock.InOrder(
		r.EXPECT().Clear(),
		r.EXPECT().DrawBackground(gomock.Any()),
		r.EXPECT().SetBlend(true),
		r.EXPECT().SetBlend(false),
	)

	s.Start()
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
}

func TestStoppedSceneDrawsNothing(t *testing.T) {
	s, _ := newMockedScene(t)

	// Any renderer call would fail the controller.
	for range 3 {
		if err := s.Tick(); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
	}
}
