package blight

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Score     int
	PlayerX   int
	PlayerY   int
	Collected int
	Performed int
	NotesLeft int
	NotesLost int
	Corrupted int
	Frontier  int
	Period    float64
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:      g.tick,
		Score:     g.score,
		PlayerX:   g.player.X,
		PlayerY:   g.player.Y,
		Collected: g.performer.Collected(),
		Performed: g.performed,
		NotesLeft: len(g.notes),
		NotesLost: g.lost,
		Corrupted: g.stage.Field.CorruptedCount(),
		Frontier:  g.stage.Field.Candidates().Len(),
		Period:    g.spreader.Clock().Period(),
		State:     state,
	}
}
