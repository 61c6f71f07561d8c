package shooter

import (
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/scene"
)

// Enemy placement and movement.
const (
	EnemySpawnY  = 1.0  // enemies enter at the top of the viewport
	EnemyDepth   = 0.5
	EnemyFloor   = -1.0 // enemies below this are gone
	EnemyMinX    = -1.0
	EnemyMaxX    = 1.0
	maxPlacement = 32 // draws per enemy before a spawn is skipped
)

// Progress reports the game's score and running tick count, which drive
// difficulty.
type Progress func() (score, ticks int)

// EnemyManager drops waves of enemies from the top of the screen. Each
// enemy falls on its own and retires itself once it leaves the bottom.
type EnemyManager struct {
	scene      *scene.Scene
	cfg        config.ShooterEnemies
	logger     *log.Logger
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	progress   Progress
	kinds      []string

	window  spawnWindow
	enemies []*scene.Splat
	pending map[string]float64 // x of enemies still loading
	skipped int
	sub     scene.SubscriptionID
}

// NewEnemyManager creates a manager and subscribes it to sc's ticks.
func NewEnemyManager(sc *scene.Scene, cfg config.ShooterEnemies, seed int64, diff *config.DifficultyManager, progress Progress, logger *log.Logger) *EnemyManager {
	kinds := make([]string, 0, len(cfg.Sprites))
	for k := range cfg.Sprites {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	if progress == nil {
		progress = func() (int, int) { return 0, 0 }
	}

	e := &EnemyManager{
		scene:      sc,
		cfg:        cfg,
		logger:     logger,
		rng:        rand.New(rand.NewSource(seed)),
		difficulty: diff,
		progress:   progress,
		kinds:      kinds,
		pending:    make(map[string]float64),
	}
	e.sub = sc.OnTick(e.onTick)
	return e
}

// Count returns the live enemies owned by the manager.
func (e *EnemyManager) Count() int { return len(e.enemies) }

// Skipped returns how many spawns were dropped for lack of room.
func (e *EnemyManager) Skipped() int { return e.skipped }

// Enemies returns the live enemies, oldest first.
func (e *EnemyManager) Enemies() []*scene.Splat { return slices.Clone(e.enemies) }

// Remove drops ownership of an enemy without touching the scene.
func (e *EnemyManager) Remove(id string) bool {
	n := len(e.enemies)
	e.enemies = slices.DeleteFunc(e.enemies, func(sp *scene.Splat) bool { return sp.ID() == id })
	return len(e.enemies) != n
}

// Retire removes an enemy from the scene and drops ownership.
func (e *EnemyManager) Retire(id string) bool {
	owned := e.Remove(id)
	retired := e.scene.RetireSplat(id)
	return owned || retired
}

// Stop unsubscribes from the scene.
func (e *EnemyManager) Stop() {
	e.scene.OffTick(e.sub)
	e.window.reset()
}

// Interval returns the current time between waves.
func (e *EnemyManager) Interval() time.Duration {
	ms := e.cfg.IntervalMs
	if e.difficulty != nil {
		score, ticks := e.progress()
		ms = e.difficulty.Interval(e.cfg.IntervalMs, e.cfg.MinIntervalMs, score, ticks)
	}
	return time.Duration(ms) * time.Millisecond
}

// FallSpeed returns the current fall speed in NDC units per millisecond.
func (e *EnemyManager) FallSpeed() float64 {
	if e.difficulty == nil {
		return e.cfg.FallSpeed
	}
	score, ticks := e.progress()
	return e.difficulty.Speed(e.cfg.FallSpeed, score, ticks)
}

func (e *EnemyManager) onTick(now time.Time) {
	count := len(e.enemies) + len(e.pending)
	if !e.window.due(now, count < e.cfg.Target, e.Interval()) {
		return
	}

	n := min(1+e.rng.Intn(e.cfg.MaxPerWave), e.cfg.Target-count)
	e.Spawn(n)
}

// Spawn starts n enemies at free positions along the top edge.
func (e *EnemyManager) Spawn(n int) {
	for range n {
		x, ok := e.findPosition()
		if !ok {
			e.skipped++
			e.logger.Warn("no room for enemy", "live", len(e.enemies), "pending", len(e.pending))
			continue
		}
		e.spawnAt(x)
	}
}

func (e *EnemyManager) spawnAt(x float64) {
	id := "enemy-" + uuid.NewString()
	kind := e.pickKind()

	e.pending[id] = x
	err := e.scene.SpawnSplat(e.cfg.Sprites[kind], id, scene.CategoryEnemy, func(sp *scene.Splat) {
		delete(e.pending, id)
		sp.SetPosition(x, EnemySpawnY, EnemyDepth)
		sp.SetAdvance(e.fall)
		e.enemies = append(e.enemies, sp)
		e.logger.Debug("enemy spawned", "id", id, "kind", kind, "x", x)
	})
	if err != nil {
		delete(e.pending, id)
		e.logger.Error("enemy spawn failed", "id", id, "err", err)
	}
}

// findPosition draws x until it is farther than the spacing from every live
// or loading enemy. It gives up after maxPlacement draws.
func (e *EnemyManager) findPosition() (float64, bool) {
	for range maxPlacement {
		x := EnemyMinX + e.rng.Float64()*(EnemyMaxX-EnemyMinX)
		if e.free(x) {
			return x, true
		}
	}
	return 0, false
}

func (e *EnemyManager) free(x float64) bool {
	for _, sp := range e.enemies {
		if math.Abs(x-sp.Position().X) <= e.cfg.Spacing {
			return false
		}
	}
	for _, px := range e.pending {
		if math.Abs(x-px) <= e.cfg.Spacing {
			return false
		}
	}
	return true
}

func (e *EnemyManager) pickKind() string {
	if e.cfg.Kind != config.EnemyKindRandom {
		return e.cfg.Kind
	}
	return e.kinds[e.rng.Intn(len(e.kinds))]
}

func (e *EnemyManager) fall(sp *scene.Splat, elapsedMs float64) {
	p := sp.Position()
	y := p.Y - e.FallSpeed()*elapsedMs
	sp.SetPosition(p.X, y, p.Z)
	if y < EnemyFloor {
		e.logger.Debug("enemy escaped", "id", sp.ID())
		e.Retire(sp.ID())
	}
}
