package config

import (
	_ "embed"
)

//go:embed defaults/blight.yaml
var defaultBlightYAML []byte

// DefaultBlightConfig returns the hardcoded configuration. It matches
// defaults/blight.yaml and is used when the embedded file cannot be parsed.
func DefaultBlightConfig() BlightConfig {
	return BlightConfig{
		Stage: StageConfig{
			Width:      64,
			Height:     64,
			SeedChance: 0.05,
			MaxSeeds:   24,
			SafeRadius: 8,
			NoteRadius: 6,
		},
		Corruption: CorruptionConfig{
			InitialPeriod:    2.0,
			Decay:            0.95,
			MaxStepsPerFrame: 8,
			MaxRetries:       0,
			Policy:           "weighted",
			Visual:           "corrupted_tile_1",
			Glyph:            "▓",
			Color:            "purple",
		},
		Tiles: []TileConfig{
			{Kind: "grass", Visual: "tile_0001", Glyph: "\"", Color: "bright_green", Upto: 0.08},
			{Kind: "flower", Visual: "tile_0002", Glyph: "*", Color: "bright_magenta", Upto: 0.10},
			{Kind: "sand", Visual: "tile_0003", Glyph: ":", Color: "sand", Upto: 0.12},
			{Kind: "green", Visual: "tile_0000", Glyph: ".", Color: "green", Upto: 1.0},
		},
		Player: PlayerConfig{
			Glyph:     "@",
			Color:     "bright_white",
			MoveGrace: 0.25,
		},
		Melody: MelodyConfig{
			BPM:         80,
			Sound:       true,
			Volume:      0.4,
			EchoSeconds: 1.0,
			NoteGlyph:   "♪",
			NoteColor:   "bright_yellow",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Scaling: ScalingConfig{
				PeriodReduction: 0.5,
				DecayReduction:  0.05,
			},
		},
	}
}
