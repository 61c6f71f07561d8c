package config

import (
	_ "embed"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultShooterConfig returns the default shooter configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Player: ShooterPlayer{
			Mesh:           "plane.obj",
			Scale:          0.2,
			StartX:         0,
			StartY:         -3.5,
			Missile:        "missile.yaml",
			FireCooldownMs: 250,
		},
		Ammo: ShooterAmmo{
			Target:     3,
			IntervalMs: 2000,
			Sprite:     "ammo.yaml",
			BaseX:      -1.087,
			SlotWidth:  0.13,
			Y:          -0.9,
		},
		Enemies: ShooterEnemies{
			Target:        6,
			IntervalMs:    3000,
			MinIntervalMs: 1200,
			MaxPerWave:    3,
			Kind:          "macron",
			Sprites: map[string]string{
				"macron":   "enemy-macron.yaml",
				"hollande": "enemy-hollande.yaml",
			},
			FallSpeed: 0.0005,
			Spacing:   0.25,
		},
		Scoring: ShooterScoring{
			EnemyPoints: 10,
		},
		Input: InputConfig{
			HoldMs: 150,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionScore,
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "shooter":
		return defaultShooterYAML
	default:
		return nil
	}
}
