package shooter

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/scene"
)

// AmmoDepth is the z of ammo pickups, in front of the enemies.
const AmmoDepth = 0.5

// AmmoManager keeps the magazine topped up: one round per interval until
// the target is reached. Rounds sit in a row at the bottom of the screen and
// are consumed newest first.
type AmmoManager struct {
	scene  *scene.Scene
	cfg    config.ShooterAmmo
	logger *log.Logger

	window   spawnWindow
	rounds   []*scene.Splat
	inflight int
	target   int
	sub      scene.SubscriptionID
}

// NewAmmoManager creates a manager and subscribes it to sc's ticks.
func NewAmmoManager(sc *scene.Scene, cfg config.ShooterAmmo, logger *log.Logger) *AmmoManager {
	a := &AmmoManager{
		scene:  sc,
		cfg:    cfg,
		logger: logger,
		target: cfg.Target,
	}
	a.sub = sc.OnTick(a.onTick)
	return a
}

// Count returns the rounds currently in the scene.
func (a *AmmoManager) Count() int { return len(a.rounds) }

// Target returns the magazine size.
func (a *AmmoManager) Target() int { return a.target }

// SetTarget changes the magazine size. Surplus rounds are kept.
func (a *AmmoManager) SetTarget(n int) {
	a.target = max(n, 0)
}

// IDs returns the ids of the live rounds, oldest first.
func (a *AmmoManager) IDs() []string {
	ids := make([]string, len(a.rounds))
	for i, r := range a.rounds {
		ids[i] = r.ID()
	}
	return ids
}

// RemoveOne consumes the newest round. It reports false when the magazine
// is empty.
func (a *AmmoManager) RemoveOne() bool {
	if len(a.rounds) == 0 {
		return false
	}
	last := a.rounds[len(a.rounds)-1]
	a.rounds = a.rounds[:len(a.rounds)-1]
	a.scene.RetireSplat(last.ID())
	a.logger.Debug("ammo used", "id", last.ID(), "left", len(a.rounds))
	return true
}

// Stop unsubscribes from the scene. Rounds already spawned stay.
func (a *AmmoManager) Stop() {
	a.scene.OffTick(a.sub)
	a.window.reset()
}

func (a *AmmoManager) onTick(now time.Time) {
	count := len(a.rounds) + a.inflight
	interval := time.Duration(a.cfg.IntervalMs) * time.Millisecond
	if !a.window.due(now, count < a.target, interval) {
		return
	}
	a.spawn()
}

func (a *AmmoManager) spawn() {
	id := "ammo-" + uuid.NewString()
	a.inflight++
	err := a.scene.SpawnSplat(a.cfg.Sprite, id, scene.CategoryAmmo, func(sp *scene.Splat) {
		a.inflight--
		a.rounds = append(a.rounds, sp)
		slot := float64(len(a.rounds))
		sp.SetPosition(a.cfg.BaseX+a.cfg.SlotWidth*slot, a.cfg.Y, AmmoDepth)
		sp.SetSize(a.cfg.SlotWidth*0.8, 0.08)
		sp.SetAdvance(func(*scene.Splat, float64) {})
		a.logger.Debug("ammo spawned", "id", id, "count", len(a.rounds))
	})
	if err != nil {
		a.inflight--
		a.logger.Error("ammo spawn failed", "id", id, "err", err)
	}
}
