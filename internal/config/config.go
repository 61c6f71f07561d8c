// Package config provides YAML-based game configuration loading and
// difficulty management for the shooter.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("invalid config")

// ShooterConfig contains all configuration for the shooter.
type ShooterConfig struct {
	Player     ShooterPlayer    `yaml:"player"`
	Ammo       ShooterAmmo      `yaml:"ammo"`
	Enemies    ShooterEnemies   `yaml:"enemies"`
	Scoring    ShooterScoring   `yaml:"scoring"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShooterPlayer defines the player's ship.
type ShooterPlayer struct {
	Mesh           string  `yaml:"mesh"`
	Scale          float64 `yaml:"scale"`
	StartX         float64 `yaml:"start_x"` // world units
	StartY         float64 `yaml:"start_y"`
	Missile        string  `yaml:"missile"`          // sprite fired by the ship
	FireCooldownMs int     `yaml:"fire_cooldown_ms"` // minimum time between shots
}

// ShooterAmmo defines the ammo pickup row at the bottom of the screen.
type ShooterAmmo struct {
	Target     int     `yaml:"target"`      // magazine size the spawner refills to
	IntervalMs int     `yaml:"interval_ms"` // time between refills
	Sprite     string  `yaml:"sprite"`
	BaseX      float64 `yaml:"base_x"`     // NDC x of slot 0
	SlotWidth  float64 `yaml:"slot_width"` // NDC distance between slots
	Y          float64 `yaml:"y"`
}

// ShooterEnemies defines enemy waves.
type ShooterEnemies struct {
	Target        int               `yaml:"target"` // live enemies the spawner aims for
	IntervalMs    int               `yaml:"interval_ms"`
	MinIntervalMs int               `yaml:"min_interval_ms"` // floor at max difficulty
	MaxPerWave    int               `yaml:"max_per_wave"`
	Kind          string            `yaml:"kind"` // a key of Sprites, or "random"
	Sprites       map[string]string `yaml:"sprites"`
	FallSpeed     float64           `yaml:"fall_speed"` // NDC units per ms
	Spacing       float64           `yaml:"spacing"`    // minimum x distance between enemies
}

// ShooterScoring defines score rewards.
type ShooterScoring struct {
	EnemyPoints int `yaml:"enemy_points"`
}

// InputConfig tunes terminal key handling.
type InputConfig struct {
	// HoldMs is how long a key counts as held after its last press event.
	// Terminals do not report key release.
	HoldMs int `yaml:"hold_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to fall speed at max difficulty
}

// Validate reports the first unusable value.
func (c ShooterConfig) Validate() error {
	switch {
	case c.Player.Mesh == "":
		return fmt.Errorf("%w: player.mesh is empty", ErrInvalidConfig)
	case c.Player.Missile == "":
		return fmt.Errorf("%w: player.missile is empty", ErrInvalidConfig)
	case c.Player.Scale <= 0:
		return fmt.Errorf("%w: player.scale must be positive", ErrInvalidConfig)
	case c.Ammo.Target < 0:
		return fmt.Errorf("%w: ammo.target must not be negative", ErrInvalidConfig)
	case c.Ammo.IntervalMs <= 0:
		return fmt.Errorf("%w: ammo.interval_ms must be positive", ErrInvalidConfig)
	case c.Ammo.Sprite == "":
		return fmt.Errorf("%w: ammo.sprite is empty", ErrInvalidConfig)
	case c.Enemies.Target < 0:
		return fmt.Errorf("%w: enemies.target must not be negative", ErrInvalidConfig)
	case c.Enemies.IntervalMs <= 0:
		return fmt.Errorf("%w: enemies.interval_ms must be positive", ErrInvalidConfig)
	case c.Enemies.MinIntervalMs <= 0 || c.Enemies.MinIntervalMs > c.Enemies.IntervalMs:
		return fmt.Errorf("%w: enemies.min_interval_ms must be in (0, interval_ms]", ErrInvalidConfig)
	case c.Enemies.MaxPerWave <= 0:
		return fmt.Errorf("%w: enemies.max_per_wave must be positive", ErrInvalidConfig)
	case len(c.Enemies.Sprites) == 0:
		return fmt.Errorf("%w: enemies.sprites is empty", ErrInvalidConfig)
	case c.Enemies.Spacing < 0 || c.Enemies.Spacing >= 1:
		return fmt.Errorf("%w: enemies.spacing must be in [0, 1)", ErrInvalidConfig)
	case c.Input.HoldMs <= 0:
		return fmt.Errorf("%w: input.hold_ms must be positive", ErrInvalidConfig)
	}

	if c.Enemies.Kind != EnemyKindRandom {
		if _, ok := c.Enemies.Sprites[c.Enemies.Kind]; !ok {
			return fmt.Errorf("%w: unknown enemy kind %q", ErrInvalidConfig, c.Enemies.Kind)
		}
	}
	return nil
}

// EnemyKindRandom picks a sprite per enemy.
const EnemyKindRandom = "random"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
