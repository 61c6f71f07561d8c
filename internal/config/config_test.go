package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := decodeShooter(GetDefaultYAML("shooter"))
	if err != nil {
		t.Fatalf("embedded shooter.yaml failed to decode: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultShooterConfig()) {
		t.Errorf("embedded YAML and DefaultShooterConfig() disagree:\n%+v\n%+v", cfg, DefaultShooterConfig())
	}
	if GetDefaultYAML("asteroids") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestLoadShooterCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("ammo:\n  target: 7\nenemies:\n  kind: hollande\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadShooterFrom(path)
	if err != nil {
		t.Fatalf("LoadShooterFrom() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Ammo.Target != 7 {
		t.Errorf("Ammo.Target = %d, expected 7", cfg.Ammo.Target)
	}
	if cfg.Enemies.Kind != "hollande" {
		t.Errorf("Enemies.Kind = %q, expected hollande", cfg.Enemies.Kind)
	}
	// Keys the file does not name keep their defaults.
	if cfg.Ammo.IntervalMs != 2000 {
		t.Errorf("Ammo.IntervalMs = %d, expected default 2000", cfg.Ammo.IntervalMs)
	}
	if len(cfg.Enemies.Sprites) != 2 {
		t.Errorf("Enemies.Sprites = %v, expected both defaults", cfg.Enemies.Sprites)
	}
}

func TestLoadShooterErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadShooter(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, expected os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("ammo: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadShooter(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("enemies:\n  kind: sarkozy\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadShooter(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown enemy kind error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ShooterConfig)
		ok     bool
	}{
		{"defaults", func(*ShooterConfig) {}, true},
		{"random kind", func(c *ShooterConfig) { c.Enemies.Kind = EnemyKindRandom }, true},
		{"zero ammo target", func(c *ShooterConfig) { c.Ammo.Target = 0 }, true},
		{"negative ammo target", func(c *ShooterConfig) { c.Ammo.Target = -1 }, false},
		{"zero ammo interval", func(c *ShooterConfig) { c.Ammo.IntervalMs = 0 }, false},
		{"min interval above base", func(c *ShooterConfig) { c.Enemies.MinIntervalMs = 5000 }, false},
		{"spacing too wide", func(c *ShooterConfig) { c.Enemies.Spacing = 1 }, false},
		{"no sprites", func(c *ShooterConfig) { c.Enemies.Sprites = nil }, false},
		{"no mesh", func(c *ShooterConfig) { c.Player.Mesh = "" }, false},
		{"zero hold", func(c *ShooterConfig) { c.Input.HoldMs = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultShooterConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyShooterPreset(t *testing.T) {
	cfg := DefaultShooterConfig()
	ApplyShooterPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: difficulty = %+v", cfg.Difficulty)
	}
	if cfg.Ammo.Target != 2 {
		t.Errorf("hard preset: Ammo.Target = %d, expected 2", cfg.Ammo.Target)
	}

	cfg = DefaultShooterConfig()
	ApplyShooterPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail to parse")
	}
	if p, err := ParsePreset("easy"); err != nil || p != DifficultyEasy {
		t.Errorf("ParsePreset(easy) = %q, %v", p, err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultShooterConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := decodeShooter(data)
	if err != nil {
		t.Fatalf("decode of marshalled config failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultShooterConfig()) {
		t.Error("marshalled config does not decode back to the defaults")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultShooterConfig().Difficulty
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score        int
		wantLevel    float64
		wantInterval int
	}{
		{0, 0, 3000},
		{150, 0.5, 2100},
		{300, 1, 1200},
		{10000, 1, 1200},
	}
	for _, tc := range tests {
		if got := dm.Level(tc.score, 0); got != tc.wantLevel {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.wantLevel)
		}
		if got := dm.Interval(3000, 1200, tc.score, 0); got != tc.wantInterval {
			t.Errorf("Interval(score %d) = %d, expected %d", tc.score, got, tc.wantInterval)
		}
	}

	if got := dm.Speed(0.0005, 300, 0); math.Abs(got-0.00125) > 1e-12 {
		t.Errorf("Speed at max = %v, expected 0.00125", got)
	}

	cfg.Enabled = false
	cfg.InitialLevel = 0.3
	fixed := NewDifficultyManager(cfg)
	if fixed.Progressing() || fixed.Level(300, 0) != 0.3 {
		t.Error("disabled manager should stay at the initial level")
	}

	cfg.Enabled = true
	cfg.InitialLevel = 0
	cfg.Progression.Type = ProgressionTime
	byTime := NewDifficultyManager(cfg)
	if got := byTime.Level(1000, 150); got != 0.5 {
		t.Errorf("time progression Level = %v, expected 0.5", got)
	}
}
