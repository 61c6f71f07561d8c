package scene

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-shooter/internal/asset"
)

//go:generate go tool mockgen -destination=./mocks/renderer_mock.go -package=mocks . Renderer

// Renderer draws one frame. The scene calls it in a fixed order every
// running tick: Clear, DrawBackground, DrawModel for each model, SetBlend(true),
// DrawSplat for each splat, SetBlend(false).
type Renderer interface {
	Clear()
	DrawBackground(now time.Time)
	DrawModel(m *Model)
	DrawSplat(s *Splat)
	SetBlend(enabled bool)
}

// Loader resolves asset URIs into visual handles.
// *asset.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context, uri string) (*asset.Visual, error)
	Release(v *asset.Visual)
}

// Clock returns the current time.
type Clock func() time.Time

// NopRenderer discards every draw call. Useful for headless runs.
type NopRenderer struct{}

func (NopRenderer) Clear() {}

func (NopRenderer) DrawBackground(time.Time) {}

func (NopRenderer) DrawModel(*Model) {}

func (NopRenderer) DrawSplat(*Splat) {}

func (NopRenderer) SetBlend(bool) {}

var (
	_ Renderer = NopRenderer{}
	_ Loader   = (*asset.Loader)(nil)
)
