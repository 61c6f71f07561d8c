// Package shooter implements a vertical shooter on top of the scene engine.
// The player flies a ship along the bottom of the screen, picks up ammo that
// refills over time, and shoots down enemies falling from the top. An enemy
// reaching the ship ends the game.
package shooter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/scene"
)

// ID is the registry id of the game.
const ID = "shooter"

// Ship and missile geometry.
const (
	ShipID         = "ship"
	MissileWidth   = 0.06
	MissileHeight  = 0.12
	missileZOffset = 0.005
)

func init() {
	registry.Register(ID, "Splat Shooter", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadShooter(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		if opts.Difficulty != "" {
			config.ApplyShooterPreset(&cfg, opts.Difficulty)
		}
		if opts.Variant != "" {
			cfg.Enemies.Kind = opts.Variant
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return New(cfg, Deps{
			Renderer: opts.Renderer,
			Loader:   opts.Loader,
			Logger:   opts.Logger,
			Clock:    opts.Clock,
		}), nil
	})
}

var errNotReset = errors.New("shooter: Tick before Reset")

// Deps are the collaborators handed to every scene the game builds.
type Deps struct {
	Renderer scene.Renderer
	Loader   scene.Loader
	Logger   *log.Logger
	Clock    scene.Clock
}

// Game wires the ship, the spawners and the scoring rules into a scene.
type Game struct {
	cfg        config.ShooterConfig
	deps       Deps
	logger     *log.Logger
	difficulty *config.DifficultyManager

	scene   *scene.Scene
	ship    *scene.Model
	ammo    *AmmoManager
	enemies *EnemyManager

	score    int
	ticks    int
	gameOver bool
	lastShot time.Time
	shots    int
}

// New creates a game. Reset must be called before the first Tick.
func New(cfg config.ShooterConfig, deps Deps) *Game {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	return &Game{
		cfg:    cfg,
		deps:   deps,
		logger: deps.Logger.WithPrefix(ID),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Splat Shooter" }

// Config returns the configuration the game was built with.
func (g *Game) Config() config.ShooterConfig { return g.cfg }

// Reset tears down the current scene, if any, and builds a fresh one with
// the ship loaded and the spawners running.
func (g *Game) Reset(ctx context.Context, rt core.RuntimeConfig) error {
	if g.scene != nil {
		_ = g.scene.Close()
	}

	g.score, g.ticks, g.shots = 0, 0, 0
	g.gameOver = false
	g.lastShot = time.Time{}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.scene = scene.New(scene.Options{
		Renderer: g.deps.Renderer,
		Loader:   g.deps.Loader,
		Logger:   g.deps.Logger.WithPrefix("scene"),
		Clock:    g.deps.Clock,
	})

	ship, err := g.scene.AddModel(ctx, g.cfg.Player.Mesh, ShipID)
	if err != nil {
		return fmt.Errorf("shooter: load ship: %w", err)
	}
	ship.SetScale(g.cfg.Player.Scale)
	ship.SetPosition(g.cfg.Player.StartX, g.cfg.Player.StartY, 0)
	ship.Advance(0)
	g.bindShip(ship)
	ship.OnCollide(g.shipHit)
	g.ship = ship

	g.ammo = NewAmmoManager(g.scene, g.cfg.Ammo, g.logger.WithPrefix("ammo"))
	g.enemies = NewEnemyManager(g.scene, g.cfg.Enemies, rt.Seed, g.difficulty, g.progress, g.logger.WithPrefix("enemies"))

	g.scene.Start()
	g.logger.Info("game started", "seed", rt.Seed, "kind", g.cfg.Enemies.Kind)
	return nil
}

func (g *Game) bindShip(ship *scene.Model) {
	left := func() { ship.Move(-1, 0) }
	right := func() { ship.Move(1, 0) }
	up := func() { ship.Move(0, 1) }
	down := func() { ship.Move(0, -1) }

	ship.BindKey(core.KeyLeft, left)
	ship.BindKey(core.KeyA, left)
	ship.BindKey(core.KeyRight, right)
	ship.BindKey(core.KeyD, right)
	ship.BindKey(core.KeyUp, up)
	ship.BindKey(core.KeyW, up)
	ship.BindKey(core.KeyDown, down)
	ship.BindKey(core.KeyS, down)
	ship.BindKey(core.KeySpace, g.fire)
	ship.BindKey(core.KeyM, g.fire)
}

func (g *Game) progress() (int, int) { return g.score, g.ticks }

// Tick runs one frame of the scene.
func (g *Game) Tick() (core.GameState, error) {
	if g.scene == nil {
		return core.GameState{}, errNotReset
	}
	if g.scene.Started() {
		g.ticks++
	}
	if err := g.scene.Tick(); err != nil {
		return g.State(), err
	}
	return g.State(), nil
}

// Settle waits for pending spawns and adds them to the scene.
func (g *Game) Settle(ctx context.Context) error {
	if g.scene == nil {
		return nil
	}
	return g.scene.Settle(ctx)
}

// Input returns the key state the scene dispatches from.
func (g *Game) Input() *core.KeyInputState {
	if g.scene == nil {
		return core.NewKeyInputState()
	}
	return g.scene.Input()
}

// TogglePause starts or stops the scene. It does nothing after game over.
func (g *Game) TogglePause() {
	if g.scene == nil || g.gameOver {
		return
	}
	g.scene.SetStarted(!g.scene.Started())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Score: g.score, GameOver: g.gameOver}
	if g.scene == nil {
		return st
	}
	st.Paused = !g.gameOver && !g.scene.Started()
	st.Ammo = g.ammo.Count()
	st.Enemies = g.enemies.Count()
	return st
}

// Scene exposes the current scene.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Ship returns the player's model.
func (g *Game) Ship() *scene.Model { return g.ship }

// Ammo returns the ammo spawner.
func (g *Game) Ammo() *AmmoManager { return g.ammo }

// Enemies returns the enemy spawner.
func (g *Game) Enemies() *EnemyManager { return g.enemies }

// Shots returns the number of missiles fired since Reset.
func (g *Game) Shots() int { return g.shots }

// Close releases the scene.
func (g *Game) Close() error {
	if g.scene == nil {
		return nil
	}
	err := g.scene.Close()
	g.scene = nil
	return err
}

// fire launches a missile from the nose of the ship, if the cooldown has
// passed and a round is available.
func (g *Game) fire() {
	now := g.scene.Now()
	cooldown := time.Duration(g.cfg.Player.FireCooldownMs) * time.Millisecond
	if !g.lastShot.IsZero() && now.Sub(g.lastShot) < cooldown {
		return
	}
	if !g.ammo.RemoveOne() {
		return
	}
	g.lastShot = now
	g.shots++

	box := g.ship.BoundingBox()
	x := (box.Min.X + box.Max.X) / 2
	y := box.Max.Y
	z := box.Max.Z + missileZOffset

	id := "missile-" + uuid.NewString()
	err := g.scene.SpawnSplat(g.cfg.Player.Missile, id, scene.CategoryMissile, func(sp *scene.Splat) {
		sp.SetSize(MissileWidth, MissileHeight)
		sp.SetPosition(x-MissileWidth/2, y, z)
		sp.OnLeaveViewport(func(s *scene.Splat, _ core.Vec3) {
			g.scene.RetireSplat(s.ID())
		})
		sp.OnCollide(func(other scene.Entity) {
			g.missileHit(sp, other)
		})
	})
	if err != nil {
		g.logger.Error("missile spawn failed", "id", id, "err", err)
	}
}

func (g *Game) missileHit(missile *scene.Splat, other scene.Entity) {
	if other.Category() != scene.CategoryEnemy {
		return
	}
	g.scene.RetireSplat(missile.ID())
	g.enemies.Retire(other.ID())
	g.score += g.cfg.Scoring.EnemyPoints
	g.logger.Debug("enemy destroyed", "enemy", other.ID(), "score", g.score)
}

func (g *Game) shipHit(other scene.Entity) {
	if other.Category() != scene.CategoryEnemy || g.gameOver {
		return
	}
	g.gameOver = true
	g.scene.Stop()
	g.logger.Info("game over", "score", g.score, "shots", g.shots, "ticks", g.ticks)
}
