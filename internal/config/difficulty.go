package config

import "math"

const (
	minPeriod = 0.05
	minDecay  = 0.5
)

// DifficultyManager scales the corruption tuning by a difficulty level.
// The level is fixed for a session, so the clock's decay stays constant
// between resets.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty level in [0, 1]. Disabled scaling is level 0,
// which leaves the configured tuning untouched.
func (d *DifficultyManager) Level() float64 {
	if !d.IsEnabled() {
		return 0
	}
	return clampF(d.cfg.InitialLevel, 0.0, 1.0)
}

// Period shortens the first corruption period as the level rises.
func (d *DifficultyManager) Period(base float64) float64 {
	p := base * (1.0 - d.Level()*d.cfg.Scaling.PeriodReduction)
	return math.Max(p, minPeriod)
}

// Decay lowers the decay factor, speeding acceleration, as the level rises.
func (d *DifficultyManager) Decay(base float64) float64 {
	return clampF(base-d.Level()*d.cfg.Scaling.DecayReduction, minDecay, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
