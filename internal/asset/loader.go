// Package asset loads the visuals entities draw with: OBJ meshes for models
// and YAML glyph sprites for splats. Parsed data is cached per URI and shared;
// each Load hands out its own Visual handle that is released independently.
package asset

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

//go:embed assets
var embedded embed.FS

// ErrUnsupportedFormat is returned for URIs whose extension has no parser.
var ErrUnsupportedFormat = errors.New("asset: unsupported format")

// Kind tells which payload a Visual carries.
type Kind int

const (
	KindMesh Kind = iota
	KindSprite
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindSprite:
		return "sprite"
	default:
		return "unknown"
	}
}

// Visual is an opaque drawable handle held by one entity.
// The mesh or sprite data behind it is shared and must not be modified.
type Visual struct {
	ID     uint64 // xxhash of URI; equal for every handle of the same asset
	URI    string
	Kind   Kind
	Mesh   *Mesh
	Sprite *Sprite

	released atomic.Bool
}

// Released reports whether the handle has been given back to its loader.
func (v *Visual) Released() bool {
	return v.released.Load()
}

// entry is a cached parsed asset with its live handle count.
type entry struct {
	kind   Kind
	mesh   *Mesh
	sprite *Sprite
	refs   int
}

// Loader resolves asset URIs against an optional directory and the embedded
// defaults, parses them once, and reference-counts the cached result.
type Loader struct {
	sources []fs.FS
	logger  *log.Logger

	mu    sync.Mutex
	cache map[string]*entry
	group singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

// WithDir makes files under dir take precedence over the embedded assets.
func WithDir(dir string) Option {
	return func(l *Loader) {
		if dir != "" {
			l.sources = append([]fs.FS{os.DirFS(dir)}, l.sources...)
		}
	}
}

// WithFS replaces every asset source with fsys. Used by tests.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.sources = []fs.FS{fsys}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader backed by the embedded assets.
func NewLoader(opts ...Option) *Loader {
	assets, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(fmt.Sprintf("asset: embedded tree: %v", err))
	}

	l := &Loader{
		sources: []fs.FS{assets},
		logger:  log.New(io.Discard),
		cache:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns a new handle for uri, parsing the file on first use.
// Concurrent loads of the same URI share one read and parse.
func (l *Loader) Load(ctx context.Context, uri string) (*Visual, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err, _ := l.group.Do(uri, func() (any, error) {
		return l.resolve(uri)
	})
	if err != nil {
		return nil, err
	}
	e := res.(*entry)

	l.mu.Lock()
	if cached, ok := l.cache[uri]; ok {
		e = cached
	} else {
		// Evicted by a Release between parse and here.
		l.cache[uri] = e
	}
	e.refs++
	l.mu.Unlock()

	return &Visual{
		ID:     xxhash.Sum64String(uri),
		URI:    uri,
		Kind:   e.kind,
		Mesh:   e.mesh,
		Sprite: e.sprite,
	}, nil
}

// Release gives a handle back. Releasing the same handle twice is a no-op.
// The cached asset is dropped once no handle references it.
func (l *Loader) Release(v *Visual) {
	if v == nil || v.released.Swap(true) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.cache[v.URI]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(l.cache, v.URI)
		l.logger.Debug("asset evicted", "uri", v.URI)
	}
}

// Cached returns the number of assets currently held in the cache.
func (l *Loader) Cached() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}

// resolve returns the cached entry for uri or reads and parses it.
func (l *Loader) resolve(uri string) (*entry, error) {
	l.mu.Lock()
	if e, ok := l.cache[uri]; ok {
		l.mu.Unlock()
		return e, nil
	}
	l.mu.Unlock()

	data, err := l.read(uri)
	if err != nil {
		return nil, err
	}

	e := &entry{}
	switch ext := strings.ToLower(path.Ext(uri)); ext {
	case ".obj":
		mesh, err := ParseOBJ(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("asset: parse %s: %w", uri, err)
		}
		e.kind, e.mesh = KindMesh, mesh
		l.logger.Debug("mesh loaded", "uri", uri, "triangles", mesh.Triangles(),
			"min", mesh.Bounds.Min, "max", mesh.Bounds.Max)
	case ".yaml", ".yml":
		sprite, err := ParseSprite(data)
		if err != nil {
			return nil, fmt.Errorf("asset: parse %s: %w", uri, err)
		}
		e.kind, e.sprite = KindSprite, sprite
		l.logger.Debug("sprite loaded", "uri", uri, "name", sprite.Name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, uri)
	}

	l.mu.Lock()
	l.cache[uri] = e
	l.mu.Unlock()
	return e, nil
}

// read returns the first source that has uri.
func (l *Loader) read(uri string) ([]byte, error) {
	name := strings.TrimPrefix(path.Clean(uri), "/")
	var lastErr error
	for _, src := range l.sources {
		data, err := fs.ReadFile(src, name)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fs.ErrNotExist
	}
	return nil, fmt.Errorf("asset: read %s: %w", uri, lastErr)
}

// Names lists every asset available from the loader's sources, sorted.
func (l *Loader) Names() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, src := range l.sources {
		err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || seen[p] {
				return nil
			}
			switch strings.ToLower(path.Ext(p)) {
			case ".obj", ".yaml", ".yml":
				seen[p] = true
				names = append(names, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("asset: list: %w", err)
		}
	}
	slices.Sort(names)
	return names, nil
}
