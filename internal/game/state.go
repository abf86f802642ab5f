// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StatePlaying is the normal state: the player moves and agents hunt.
	StatePlaying State = iota
	// StateDead is entered when the player's health reaches zero. The world
	// is frozen until the player quits.
	StateDead
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}
