package scene

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-shooter/internal/asset"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// SubscriptionID identifies a tick subscriber for OffTick.
type SubscriptionID uint64

// TickFunc is called once per running tick, before input dispatch.
type TickFunc func(now time.Time)

// ReadyFunc receives a spawned splat once it has joined the scene.
type ReadyFunc func(s *Splat)

// Options configures a Scene.
type Options struct {
	Renderer Renderer    // defaults to NopRenderer
	Loader   Loader      // defaults to the embedded asset loader
	Logger   *log.Logger // defaults to a discarding logger
	Clock    Clock       // defaults to time.Now
}

type subscriber struct {
	id SubscriptionID
	fn TickFunc
}

// pendingSplat is the result of an asynchronous load waiting to be
// integrated by the tick goroutine.
type pendingSplat struct {
	id    string
	splat *Splat
	ready ReadyFunc
	err   error
}

// Scene is the entity registry and frame loop.
type Scene struct {
	renderer Renderer
	loader   Loader
	logger   *log.Logger
	clock    Clock
	input    *core.KeyInputState

	models   []*Model
	splats   []*Splat
	ids      map[string]Entity
	reserved map[string]struct{} // ids of spawns still loading

	subs    []subscriber
	nextSub SubscriptionID

	started  bool
	lastTick time.Time // zero until the first running tick
	fatal    error
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
	loads  errgroup.Group

	mu      sync.Mutex
	pending []pendingSplat
}

// New creates a stopped, empty scene.
func New(opts Options) *Scene {
	if opts.Renderer == nil {
		opts.Renderer = NopRenderer{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Loader == nil {
		opts.Loader = asset.NewLoader(asset.WithLogger(opts.Logger))
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scene{
		renderer: opts.Renderer,
		loader:   opts.Loader,
		logger:   opts.Logger,
		clock:    opts.Clock,
		input:    core.NewKeyInputState(),
		ids:      make(map[string]Entity),
		reserved: make(map[string]struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Input returns the key state read by DispatchInput.
func (s *Scene) Input() *core.KeyInputState { return s.input }

// Now returns the scene clock's current time.
func (s *Scene) Now() time.Time { return s.clock() }

// Start resumes game logic. The next tick only re-establishes the time base,
// so a long pause does not turn into one huge animation step.
func (s *Scene) Start() {
	if s.started {
		return
	}
	s.started = true
	s.lastTick = time.Time{}
	s.logger.Debug("scene started")
}

// Stop suspends game logic from the next tick on.
func (s *Scene) Stop() {
	if !s.started {
		return
	}
	s.started = false
	s.logger.Debug("scene stopped")
}

// SetStarted calls Start or Stop.
func (s *Scene) SetStarted(started bool) {
	if started {
		s.Start()
	} else {
		s.Stop()
	}
}

// Started reports whether ticks run game logic.
func (s *Scene) Started() bool { return s.started }

// OnTick registers fn to run at the start of every running tick.
func (s *Scene) OnTick(fn TickFunc) SubscriptionID {
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: s.nextSub, fn: fn})
	return s.nextSub
}

// OffTick removes a subscriber. It reports whether id was registered.
func (s *Scene) OffTick(id SubscriptionID) bool {
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = slices.Delete(s.subs, i, i+1)
			return true
		}
	}
	return false
}

// Tick runs one frame. While the scene is stopped it does nothing besides
// reporting a fatal error. A failed asynchronous load is fatal and is
// returned by every Tick after it was observed.
func (s *Scene) Tick() error {
	if err := s.integrate(); err != nil {
		return err
	}
	if !s.started {
		return nil
	}

	now := s.clock()
	first := s.lastTick.IsZero()
	var elapsed float64
	if !first {
		elapsed = float64(now.Sub(s.lastTick)) / float64(time.Millisecond)
	}
	s.lastTick = now

	for _, sub := range slices.Clone(s.subs) {
		sub.fn(now)
	}
	s.DispatchInput()
	s.render(now)
	if !first {
		s.advance(elapsed)
	}
	s.DetectCollisions()
	return nil
}

// DispatchInput runs the key actions of every live entity for held keys.
// Models go first, then splats, each in insertion order.
func (s *Scene) DispatchInput() {
	for _, m := range slices.Clone(s.models) {
		if s.live(m) {
			m.dispatch(s.input)
		}
	}
	for _, sp := range slices.Clone(s.splats) {
		if s.live(sp) {
			sp.dispatch(s.input)
		}
	}
}

func (s *Scene) render(now time.Time) {
	s.renderer.Clear()
	s.renderer.DrawBackground(now)
	for _, m := range s.models {
		if !m.Released() {
			s.renderer.DrawModel(m)
		}
	}
	s.renderer.SetBlend(true)
	for _, sp := range s.splats {
		if !sp.Released() {
			s.renderer.DrawSplat(sp)
		}
	}
	s.renderer.SetBlend(false)
}

func (s *Scene) advance(elapsedMs float64) {
	for _, m := range slices.Clone(s.models) {
		if s.live(m) {
			m.Advance(elapsedMs)
		}
	}
	for _, sp := range slices.Clone(s.splats) {
		if s.live(sp) {
			sp.Advance(elapsedMs)
		}
	}
}

// live reports whether e is still the registered, unreleased entity for its id.
func (s *Scene) live(e Entity) bool {
	cur, ok := s.ids[e.ID()]
	return ok && cur == e && !e.Released()
}

func (s *Scene) taken(id string) bool {
	if _, ok := s.ids[id]; ok {
		return true
	}
	_, ok := s.reserved[id]
	return ok
}

// AddModel loads a mesh and registers it as a model. The load is synchronous;
// it is meant for scene setup.
func (s *Scene) AddModel(ctx context.Context, uri, id string) (*Model, error) {
	v, err := s.load(ctx, uri, id, asset.KindMesh)
	if err != nil {
		return nil, err
	}
	m := newModel(id, v, s.loader.Release)
	s.models = append(s.models, m)
	s.ids[id] = m
	s.logger.Debug("model added", "id", id, "uri", uri)
	return m, nil
}

// AddSplat loads a sprite and registers it as a splat synchronously.
func (s *Scene) AddSplat(ctx context.Context, uri, id string, category Category) (*Splat, error) {
	v, err := s.load(ctx, uri, id, asset.KindSprite)
	if err != nil {
		return nil, err
	}
	sp := newSplat(id, category, v, s.loader.Release)
	s.addSplat(sp)
	return sp, nil
}

func (s *Scene) load(ctx context.Context, uri, id string, kind asset.Kind) (*asset.Visual, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.taken(id) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	v, err := s.loader.Load(ctx, uri)
	if err != nil {
		s.logger.Error("asset load failed", "uri", uri, "id", id, "err", err)
		return nil, &AssetLoadError{URI: uri, ID: id, Err: err}
	}
	if v.Kind != kind {
		s.loader.Release(v)
		return nil, &AssetLoadError{URI: uri, ID: id, Err: fmt.Errorf("%w: got %s, need %s", ErrWrongKind, v.Kind, kind)}
	}
	return v, nil
}

func (s *Scene) addSplat(sp *Splat) {
	s.splats = append(s.splats, sp)
	s.ids[sp.ID()] = sp
	s.logger.Debug("splat added", "id", sp.ID(), "category", sp.Category())
}

// SpawnSplat starts loading a sprite in the background. The splat joins the
// scene at the start of a later Tick (or Settle), and ready runs right after.
// The id is reserved immediately, so a duplicate fails here rather than later.
func (s *Scene) SpawnSplat(uri, id string, category Category, ready ReadyFunc) error {
	if s.closed {
		return ErrClosed
	}
	if s.taken(id) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	s.reserved[id] = struct{}{}

	s.loads.Go(func() error {
		p := pendingSplat{id: id, ready: ready}
		v, err := s.loader.Load(s.ctx, uri)
		switch {
		case err != nil:
			p.err = &AssetLoadError{URI: uri, ID: id, Err: err}
		case v.Kind != asset.KindSprite:
			s.loader.Release(v)
			p.err = &AssetLoadError{URI: uri, ID: id, Err: fmt.Errorf("%w: got %s", ErrWrongKind, v.Kind)}
		default:
			p.splat = newSplat(id, category, v, s.loader.Release)
		}

		s.mu.Lock()
		s.pending = append(s.pending, p)
		s.mu.Unlock()
		return nil
	})
	return nil
}

// integrate moves finished loads into the registry and returns the fatal
// error, if any load has failed so far.
func (s *Scene) integrate() error {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, p := range batch {
		delete(s.reserved, p.id)
		if p.err != nil {
			if s.closed {
				continue
			}
			s.logger.Error("spawn failed", "id", p.id, "err", p.err)
			if s.fatal == nil {
				s.fatal = p.err
			}
			continue
		}
		if s.closed {
			p.splat.Release()
			continue
		}
		s.addSplat(p.splat)
		if p.ready != nil {
			p.ready(p.splat)
		}
	}
	return s.fatal
}

// Settle waits for every in-flight load and integrates the results.
func (s *Scene) Settle(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		_ = s.loads.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return s.integrate()
}

// Pending reports how many spawns are still loading or awaiting integration.
func (s *Scene) Pending() int {
	return len(s.reserved)
}

// RemoveSplat delists a splat without releasing it. Unknown ids are ignored.
func (s *Scene) RemoveSplat(id string) bool {
	e, ok := s.ids[id]
	sp, isSplat := e.(*Splat)
	if !ok || !isSplat {
		return false
	}
	delete(s.ids, id)
	s.splats = slices.DeleteFunc(s.splats, func(x *Splat) bool { return x == sp })
	s.logger.Debug("splat removed", "id", id)
	return true
}

// RetireSplat delists a splat and releases its visual.
func (s *Scene) RetireSplat(id string) bool {
	e, ok := s.ids[id]
	if !ok || !s.RemoveSplat(id) {
		return false
	}
	e.Release()
	return true
}

// RemoveModel delists a model without releasing it. Unknown ids are ignored.
func (s *Scene) RemoveModel(id string) bool {
	e, ok := s.ids[id]
	m, isModel := e.(*Model)
	if !ok || !isModel {
		return false
	}
	delete(s.ids, id)
	s.models = slices.DeleteFunc(s.models, func(x *Model) bool { return x == m })
	s.logger.Debug("model removed", "id", id)
	return true
}

// Splat returns the live splat with the given id.
func (s *Scene) Splat(id string) (*Splat, bool) {
	sp, ok := s.ids[id].(*Splat)
	return sp, ok
}

// Model returns the live model with the given id.
func (s *Scene) Model(id string) (*Model, bool) {
	m, ok := s.ids[id].(*Model)
	return m, ok
}

// Splats returns the live splats in insertion order.
func (s *Scene) Splats() []*Splat { return slices.Clone(s.splats) }

// Models returns the live models in insertion order.
func (s *Scene) Models() []*Model { return slices.Clone(s.models) }

// Close cancels in-flight loads and releases every entity. The scene cannot
// be used afterwards.
func (s *Scene) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.started = false
	s.cancel()
	_ = s.loads.Wait()
	_ = s.integrate()

	for _, m := range s.models {
		m.Release()
	}
	for _, sp := range s.splats {
		sp.Release()
	}
	s.models, s.splats = nil, nil
	clear(s.ids)
	s.subs = nil
	s.logger.Debug("scene closed")
	return nil
}
