package state

// GameState represents where the playing scene is in its lifecycle
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
	StateCleared    // left through the exit portal of the last level
	StateReplayDone // a replay ran out of recorded ticks
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateCleared:
		return "Cleared"
	case StateReplayDone:
		return "ReplayDone"
	default:
		return "Unknown"
	}
}

// Finished reports whether the run has ended and only a restart continues it
func (s GameState) Finished() bool {
	return s == StateGameOver || s == StateCleared || s == StateReplayDone
}
