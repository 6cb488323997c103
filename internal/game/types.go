// internal/game/types.go
//
// Core type definitions for the Freecell rule engine.
// Defines:
//   - Layout constants (cells, foundations, columns, deck size).
//   - Move: a committed (from, to) transition.
//   - Game: board state, deal seed, and undo history for one session.

package game

const (
	NumFreecells   = 4
	NumFoundations = 4
	NumColumns     = 8
	DeckSize       = 52
	SuitSize       = 13 // cards per suit, also a complete foundation
)

// dealHeights is the number of cards dealt into each tableau column.
var dealHeights = [NumColumns]int{7, 7, 7, 7, 6, 6, 6, 6}

// Move is a committed transition from one location to another.
// Recorded moves always carry canonical addresses (see Location.landing),
// so they can be resolved strictly when undone.
type Move struct {
	From Location `json:"from"`
	To   Location `json:"to"`
}

// Game holds the state of a single Freecell session.
// A Game is not safe for concurrent use; callers serialize access.
type Game struct {
	ID    string // Unique game identifier (UUID).
	Seed  int64  // Seed of the current deal.
	Board Board  // Free cells, foundations, tableau.

	history []Move // undo stack, last element is the most recent move
}
