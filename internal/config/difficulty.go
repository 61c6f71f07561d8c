package config

import "github.com/vovakirdan/tui-shooter/internal/core"

// Progression types.
const (
	ProgressionScore = "score" // level follows the score
	ProgressionTime  = "time"  // level follows running ticks
	ProgressionNone  = "none"
)

// DifficultyManager turns score and running time into a level in [0, 1] and
// scales enemy pacing by it.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = core.ClampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

// Progressing reports whether the level moves at all.
func (d *DifficultyManager) Progressing() bool {
	return d.cfg.Enabled && (d.cfg.Progression.Type == ProgressionScore || d.cfg.Progression.Type == ProgressionTime)
}

// Level interpolates from the initial level to 1 as score (or ticks) reaches
// max_at.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.Progressing() {
		return d.cfg.InitialLevel
	}

	done := float64(score)
	if d.cfg.Progression.Type == ProgressionTime {
		done = float64(ticks)
	}
	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))

	p := core.ClampF(done/maxAt, 0, 1)
	return d.cfg.InitialLevel + p*(1-d.cfg.InitialLevel)
}

// Speed scales a base speed by up to 1+speed_multiplier at level 1.
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Interval shrinks linearly from baseMs at level 0 to minMs at level 1.
func (d *DifficultyManager) Interval(baseMs, minMs, score, ticks int) int {
	minMs = min(minMs, baseMs)
	return baseMs - int(d.Level(score, ticks)*float64(baseMs-minMs))
}
