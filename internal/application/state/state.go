package state

// GameState represents the current state of the game
type GameState int

const (
	StatePregame GameState = iota
	StateRunning
	StatePaused
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePregame:
		return "Pregame"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// TimeScale returns the simulation time scale a state runs at.
// Paused freezes the simulation; every other state runs at normal speed.
func (s GameState) TimeScale() float64 {
	if s == StatePaused {
		return 0
	}
	return 1
}
