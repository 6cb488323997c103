// internal/game/engine.go
//
// Move engine for a single Freecell session.
// Responsibilities:
//   - Deal new games from a seed (deterministic for a given seed).
//   - Validate moves against free cell, foundation and tableau rules.
//   - Apply moves through a single entry point and record them for undo.
//   - Undo the most recent move (single-step stack, no redo).
//   - Detect victory.
//
// Notes:
//   - Expected outcomes (illegal move, empty source, nothing to undo) are
//     sentinel errors; compare with errors.Is.
//   - A rejected command never changes the board or the history.
package game

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
)

var (
	ErrEmptySource      = errors.New("no card at source")
	ErrIllegalMove      = errors.New("illegal move")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrCorruptHistory   = errors.New("history does not match board")
	ErrNoFoundationMove = errors.New("no foundation accepts this card")
)

// New constructs a game dealt from seed.
func New(seed int64) *Game {
	g := &Game{ID: uuid.NewString()}
	g.Reset(seed)
	return g
}

// FromBoard constructs a game over an existing layout with empty history.
// The board is copied. Useful for presentation layers that restore a
// position for analysis and for tests.
func FromBoard(b Board) *Game {
	return &Game{ID: uuid.NewString(), Board: b.Clone()}
}

// Reset clears history, cells, foundations and tableau, then deals a deck
// shuffled from seed.
func (g *Game) Reset(seed int64) {
	g.history = nil
	g.Seed = seed
	deck := Shuffle(NewDeck(), rand.New(rand.NewSource(seed)))
	g.Board = Deal(deck)
}

// IsValidMove reports whether card may be placed at to.
//
//   - Free cell: the slot must be empty.
//   - Foundation: an ace on an empty pile, otherwise the same suit one rank up.
//   - Tableau: anything on an empty column, otherwise the opposite color one
//     rank down.
func (g *Game) IsValidMove(card Card, to Location) bool {
	if card.IsZero() || to.Validate() != nil {
		return false
	}
	switch to.Kind {
	case KindFreecell:
		return g.Board.Freecells[to.Index].IsZero()
	case KindFoundation:
		pile := g.Board.Foundations[to.Index]
		if len(pile) == 0 {
			return card.Rank == Ace
		}
		top := pile[len(pile)-1]
		return card.Suit == top.Suit && card.Rank == top.Rank+1
	case KindTableau:
		col := g.Board.Tableau[to.Index]
		if len(col) == 0 {
			return true
		}
		top := col[len(col)-1]
		return card.Color() != top.Color() && card.Rank+1 == top.Rank
	}
	return false
}

// MoveCard moves the card at from to to if the move is legal, and records it.
// It is the only way, besides Reset and UndoMove, that the board changes.
// The returned Move carries canonical addresses as stored in history.
func (g *Game) MoveCard(from, to Location) (Move, error) {
	if err := from.Validate(); err != nil {
		return Move{}, err
	}
	if err := to.Validate(); err != nil {
		return Move{}, err
	}
	card, ok := from.Peek(&g.Board)
	if !ok {
		return Move{}, ErrEmptySource
	}
	if !g.IsValidMove(card, to) {
		return Move{}, ErrIllegalMove
	}

	m := Move{From: from.canonical(), To: to.landing(&g.Board)}
	g.history = append(g.history, m)
	from.Remove(&g.Board)
	to.Place(&g.Board, card)
	return m, nil
}

// UndoMove reverses the most recent move and returns it.
func (g *Game) UndoMove() (Move, error) {
	n := len(g.history)
	if n == 0 {
		return Move{}, ErrNothingToUndo
	}
	m := g.history[n-1]
	g.history = g.history[:n-1]

	card, ok := m.To.Remove(&g.Board)
	if !ok {
		return m, ErrCorruptHistory
	}
	m.From.Place(&g.Board, card)
	return m, nil
}

// AutoMoveToFoundation sends the card at from to the first foundation, in
// index order, that accepts it.
func (g *Game) AutoMoveToFoundation(from Location) (Move, error) {
	if err := from.Validate(); err != nil {
		return Move{}, err
	}
	card, ok := from.Peek(&g.Board)
	if !ok {
		return Move{}, ErrEmptySource
	}
	for i := 0; i < NumFoundations; i++ {
		if g.IsValidMove(card, Foundation(i)) {
			return g.MoveCard(from, Foundation(i))
		}
	}
	return Move{}, ErrNoFoundationMove
}

// IsGameWon reports whether every foundation holds a complete suit.
func (g *Game) IsGameWon() bool {
	for _, pile := range g.Board.Foundations {
		if len(pile) != SuitSize {
			return false
		}
	}
	return true
}

// History returns a copy of the undo stack, oldest first.
func (g *Game) History() []Move {
	return append([]Move(nil), g.history...)
}

// Moves is the number of applied moves not yet undone.
func (g *Game) Moves() int { return len(g.history) }

// CanUndo reports whether UndoMove has anything to reverse.
func (g *Game) CanUndo() bool { return len(g.history) > 0 }
