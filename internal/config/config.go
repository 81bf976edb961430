// Package config provides YAML-based configuration loading, difficulty
// presets and hot reload for blightsong.
package config

import (
	"fmt"
	"math"

	"github.com/vovakirdan/blightsong/internal/corruption"
)

// BlightConfig contains all configuration for the blight game.
type BlightConfig struct {
	Stage      StageConfig      `yaml:"stage"`
	Corruption CorruptionConfig `yaml:"corruption"`
	Tiles      []TileConfig     `yaml:"tiles"`
	Player     PlayerConfig     `yaml:"player"`
	Melody     MelodyConfig     `yaml:"melody"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// StageConfig defines generation parameters.
type StageConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	SeedChance float64 `yaml:"seed_chance"` // roll under which a border tile is seeded
	MaxSeeds   int     `yaml:"max_seeds"`
	SafeRadius float64 `yaml:"safe_radius"` // tiles around spawn kept clear of seeds
	NoteRadius int     `yaml:"note_radius"` // pickups land within this many tiles of spawn
}

// CorruptionConfig defines the spread.
type CorruptionConfig struct {
	InitialPeriod    float64 `yaml:"initial_period"` // seconds
	Decay            float64 `yaml:"decay"`
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"`
	MaxRetries       int     `yaml:"max_retries"` // 0 = bounded by frontier size
	Policy           string  `yaml:"policy"`      // "weighted" or "unique"
	Visual           string  `yaml:"visual"`
	Glyph            string  `yaml:"glyph"`
	Color            string  `yaml:"color"`
}

// TileConfig is one terrain band.
type TileConfig struct {
	Kind   string  `yaml:"kind"`
	Visual string  `yaml:"visual"`
	Glyph  string  `yaml:"glyph"`
	Color  string  `yaml:"color"`
	Upto   float64 `yaml:"upto"`
}

// PlayerConfig defines the avatar.
type PlayerConfig struct {
	Glyph     string  `yaml:"glyph"`
	Color     string  `yaml:"color"`
	MoveGrace float64 `yaml:"move_grace"` // seconds after a move that still count as moving
}

// MelodyConfig defines playback.
type MelodyConfig struct {
	BPM         float64 `yaml:"bpm"`
	Sound       bool    `yaml:"sound"`
	Volume      float64 `yaml:"volume"` // 0..1
	EchoSeconds float64 `yaml:"echo_seconds"`
	NoteGlyph   string  `yaml:"note_glyph"`
	NoteColor   string  `yaml:"note_color"`
}

// DifficultyConfig scales the corruption tuning for a whole session.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	PeriodReduction float64 `yaml:"period_reduction"` // fraction of initial period removed at max difficulty
	DecayReduction  float64 `yaml:"decay_reduction"`  // subtracted from decay at max difficulty
}

// Validate reports the first setting that would make the game unplayable.
func (c BlightConfig) Validate() error {
	if c.Stage.Width <= 0 || c.Stage.Height <= 0 {
		return fmt.Errorf("config: stage size %dx%d", c.Stage.Width, c.Stage.Height)
	}
	if c.Stage.Width > 256 || c.Stage.Height > 256 {
		return fmt.Errorf("config: stage size %dx%d exceeds 256x256", c.Stage.Width, c.Stage.Height)
	}
	if c.Corruption.InitialPeriod <= 0 || math.IsNaN(c.Corruption.InitialPeriod) {
		return fmt.Errorf("config: corruption.initial_period must be positive")
	}
	if c.Corruption.Decay <= 0 || c.Corruption.Decay > 1 {
		return fmt.Errorf("config: corruption.decay %v outside (0, 1]", c.Corruption.Decay)
	}
	if c.Corruption.MaxRetries < 0 {
		return fmt.Errorf("config: corruption.max_retries is negative")
	}
	switch c.Corruption.Policy {
	case "", "weighted", "unique":
	default:
		return fmt.Errorf("config: unknown corruption.policy %q", c.Corruption.Policy)
	}
	if len(c.Tiles) == 0 {
		return fmt.Errorf("config: no tiles")
	}
	for _, t := range c.Tiles {
		kind, err := corruption.ParseKind(t.Kind)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if kind.IsCorrupted() {
			return fmt.Errorf("config: tile %q may not start corrupted", t.Visual)
		}
	}
	if c.Melody.BPM <= 0 {
		return fmt.Errorf("config: melody.bpm must be positive")
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
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
