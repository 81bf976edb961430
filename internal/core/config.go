package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the simulated duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// SoundCue asks the platform to play a tone. Games stay free of audio
// dependencies; the platform decides whether and how to voice cues.
type SoundCue struct {
	Semitone int     // Offset from the instrument's base pitch
	Seconds  float64 // How long the tone should ring
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState
	Cues  []SoundCue
}

// RunStats summarizes a finished run for the run history.
type RunStats struct {
	Notes     int     // Pickups collected
	Performed int     // Notes played back
	Corrupted int     // Tiles corrupted when the run ended
	Seconds   float64 // Simulated play time
	EndReason string  // Why the run ended, e.g. "engulfed" or "quit"
}
