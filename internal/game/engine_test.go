package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pile parses a list of compact card labels, bottom first.
func pile(t *testing.T, labels ...string) []Card {
	t.Helper()
	out := make([]Card, 0, len(labels))
	for _, l := range labels {
		out = append(out, card(t, l))
	}
	return out
}

func TestMoveCard_FreecellToFoundationAndUndo(t *testing.T) {
	var b Board
	b.Foundations[0] = pile(t, "AH")
	b.Freecells[0] = card(t, "2H")
	g := FromBoard(b)
	before := g.Board.Clone()

	m, err := g.MoveCard(Freecell(0), Foundation(0))
	require.NoError(t, err)
	assert.Equal(t, Move{From: Freecell(0), To: Foundation(0)}, m)
	assert.Equal(t, pile(t, "AH", "2H"), g.Board.Foundations[0])
	assert.True(t, g.Board.Freecells[0].IsZero())

	undone, err := g.UndoMove()
	require.NoError(t, err)
	assert.Equal(t, m, undone)
	assert.True(t, g.Board.Equal(&before))
	assert.False(t, g.CanUndo())
}

func TestMoveCard_TableauOntoOppositeColor(t *testing.T) {
	var b Board
	b.Tableau[0] = pile(t, "KH", "7C")
	b.Tableau[1] = pile(t, "3S", "8D")
	g := FromBoard(b)

	m, err := g.MoveCard(TableauTop(&g.Board, 0), Tableau(1, 2))
	require.NoError(t, err)
	assert.Equal(t, Tableau(0, 1), m.From)
	assert.Equal(t, Tableau(1, 2), m.To)
	assert.Equal(t, pile(t, "KH"), g.Board.Tableau[0])
	assert.Equal(t, pile(t, "3S", "8D", "7C"), g.Board.Tableau[1])
}

func TestMoveCard_RecordsCanonicalDestination(t *testing.T) {
	var b Board
	b.Tableau[0] = pile(t, "7C")
	b.Tableau[1] = pile(t, "8D")
	g := FromBoard(b)

	// The destination card index is ignored on placement and rewritten to
	// where the card actually landed, so undo can resolve it strictly.
	m, err := g.MoveCard(Tableau(0, 0), Tableau(1, 99))
	require.NoError(t, err)
	assert.Equal(t, Tableau(1, 1), m.To)
	assert.Equal(t, []Move{m}, g.History())

	_, err = g.UndoMove()
	require.NoError(t, err)
	assert.Equal(t, pile(t, "7C"), g.Board.Tableau[0])
	assert.Equal(t, pile(t, "8D"), g.Board.Tableau[1])
}

func TestMoveCard_Rejections(t *testing.T) {
	base := func(t *testing.T) Board {
		var b Board
		b.Freecells[0] = card(t, "QS")
		b.Freecells[1] = card(t, "5H")
		b.Foundations[0] = pile(t, "AH", "2H")
		b.Tableau[0] = pile(t, "9C", "3H")
		b.Tableau[1] = pile(t, "KD", "8C")
		b.Tableau[2] = pile(t, "7S")
		b.Tableau[3] = pile(t, "6C")
		b.Tableau[4] = pile(t, "3C")
		return b
	}

	tests := []struct {
		name     string
		from, to Location
		wantErr  error
	}{
		{"occupied free cell", Tableau(2, 0), Freecell(0), ErrIllegalMove},
		{"non-ace on empty foundation", Tableau(2, 0), Foundation(1), ErrIllegalMove},
		{"wrong suit on foundation", Tableau(3, 0), Foundation(0), ErrIllegalMove},
		{"wrong suit, right rank", Tableau(4, 0), Foundation(0), ErrIllegalMove},
		{"wrong rank on foundation", Freecell(1), Foundation(0), ErrIllegalMove},
		{"same color on tableau", Tableau(2, 0), Tableau(1, 2), ErrIllegalMove},
		{"wrong rank on tableau", Freecell(1), Tableau(1, 2), ErrIllegalMove},
		{"same column", Tableau(2, 0), Tableau(2, 1), ErrIllegalMove},
		{"empty free cell source", Freecell(2), Freecell(3), ErrEmptySource},
		{"empty foundation source", Foundation(3), Freecell(3), ErrEmptySource},
		{"stale tableau index", Tableau(0, 0), Freecell(3), ErrEmptySource},
		{"empty column source", Tableau(5, 0), Freecell(3), ErrEmptySource},
		{"free cell out of range", Freecell(4), Foundation(0), ErrInvalidLocation},
		{"column out of range", Tableau(2, 0), Tableau(8, 0), ErrInvalidLocation},
		{"negative card index", Tableau(2, -1), Freecell(3), ErrInvalidLocation},
		{"unknown kind", Location{}, Freecell(3), ErrInvalidLocation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FromBoard(base(t))
			before := g.Board.Clone()

			_, err := g.MoveCard(tt.from, tt.to)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, g.Board.Equal(&before), "board changed")
			assert.False(t, g.CanUndo(), "history changed")
		})
	}
}

func TestMoveCard_AcceptsLegalPlacements(t *testing.T) {
	var b Board
	b.Foundations[0] = pile(t, "AH", "2H")
	b.Tableau[0] = pile(t, "3H")
	b.Tableau[1] = pile(t, "AS")
	b.Tableau[2] = pile(t, "KD")
	g := FromBoard(b)

	_, err := g.MoveCard(Tableau(0, 0), Foundation(0))
	require.NoError(t, err)
	_, err = g.MoveCard(Tableau(1, 0), Foundation(1))
	require.NoError(t, err)
	_, err = g.MoveCard(Tableau(2, 0), Tableau(0, 0))
	require.NoError(t, err, "any card goes on an empty column")
	_, err = g.MoveCard(Tableau(0, 0), Freecell(3))
	require.NoError(t, err)

	assert.Equal(t, 4, g.Moves())
	assert.Equal(t, card(t, "KD"), g.Board.Freecells[3])
}

func TestUndoMove_EmptyHistory(t *testing.T) {
	g := New(1)
	before := g.Board.Clone()

	_, err := g.UndoMove()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	assert.True(t, g.Board.Equal(&before))
}

func TestUndoMove_CorruptHistory(t *testing.T) {
	var b Board
	b.Tableau[0] = pile(t, "4D")
	g := FromBoard(b)

	_, err := g.MoveCard(Tableau(0, 0), Freecell(2))
	require.NoError(t, err)
	g.Board.Freecells[2] = Card{}

	_, err = g.UndoMove()
	assert.ErrorIs(t, err, ErrCorruptHistory)
	assert.False(t, g.CanUndo())
}

func TestMoveUndo_RoundTripOverDeals(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		g := New(seed)
		start := g.Board.Clone()

		applied := 0
		for i := 0; i < 30; i++ {
			m, ok := g.Hint()
			if !ok {
				break
			}
			before := g.Board.Clone()

			_, err := g.MoveCard(m.From, m.To)
			require.NoError(t, err, "seed %d hint %v", seed, m)
			assert.ElementsMatch(t, NewDeck(), g.Board.Cards())

			_, err = g.UndoMove()
			require.NoError(t, err)
			require.True(t, g.Board.Equal(&before), "seed %d: undo did not restore %v", seed, m)

			_, err = g.MoveCard(m.From, m.To)
			require.NoError(t, err)
			applied++
		}

		for g.CanUndo() {
			_, err := g.UndoMove()
			require.NoError(t, err)
			applied--
		}
		assert.Zero(t, applied)
		assert.True(t, g.Board.Equal(&start), "seed %d: full unwind differs", seed)
	}
}

func TestAutoMoveToFoundation(t *testing.T) {
	var b Board
	b.Foundations[0] = pile(t, "AH")
	b.Freecells[0] = card(t, "2H")
	b.Tableau[0] = pile(t, "AC")
	b.Tableau[1] = pile(t, "9S")
	g := FromBoard(b)

	m, err := g.AutoMoveToFoundation(Freecell(0))
	require.NoError(t, err)
	assert.Equal(t, Foundation(0), m.To)

	m, err = g.AutoMoveToFoundation(Tableau(0, 0))
	require.NoError(t, err)
	assert.Equal(t, Foundation(1), m.To, "ace takes the first empty pile")

	before := g.Board.Clone()
	_, err = g.AutoMoveToFoundation(Tableau(1, 0))
	assert.ErrorIs(t, err, ErrNoFoundationMove)
	assert.True(t, g.Board.Equal(&before))

	_, err = g.AutoMoveToFoundation(Freecell(1))
	assert.ErrorIs(t, err, ErrEmptySource)
	assert.Equal(t, 2, g.Moves())
}

func TestIsGameWon(t *testing.T) {
	var b Board
	for i, suit := range []Suit{Hearts, Diamonds, Clubs, Spades} {
		for r := Ace; r <= King; r++ {
			b.Foundations[i] = append(b.Foundations[i], NewCard(r, suit))
		}
	}
	g := FromBoard(b)
	assert.True(t, g.IsGameWon())

	_, err := g.MoveCard(Foundation(3), Freecell(0))
	require.NoError(t, err)
	assert.False(t, g.IsGameWon())

	_, err = g.UndoMove()
	require.NoError(t, err)
	assert.True(t, g.IsGameWon())

	assert.False(t, New(3).IsGameWon())
}

func TestFromBoard_CopiesLayout(t *testing.T) {
	var b Board
	b.Tableau[0] = pile(t, "5C")
	g := FromBoard(b)

	_, err := g.MoveCard(Tableau(0, 0), Freecell(0))
	require.NoError(t, err)
	assert.Equal(t, pile(t, "5C"), b.Tableau[0])
	assert.NotEqual(t, g.ID, FromBoard(b).ID)
}
