package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck, DeckSize)

	// suits outer, ranks inner
	assert.Equal(t, NewCard(Ace, Hearts), deck[0])
	assert.Equal(t, NewCard(King, Hearts), deck[12])
	assert.Equal(t, NewCard(Ace, Diamonds), deck[13])
	assert.Equal(t, NewCard(King, Spades), deck[51])

	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
}

func TestShuffle_DeterministicForSeed(t *testing.T) {
	a := Shuffle(NewDeck(), rand.New(rand.NewSource(42)))
	b := Shuffle(NewDeck(), rand.New(rand.NewSource(42)))
	c := Shuffle(NewDeck(), rand.New(rand.NewSource(43)))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.ElementsMatch(t, NewDeck(), a)
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	deck := NewDeck()
	_ = Shuffle(deck, rand.New(rand.NewSource(1)))
	assert.Equal(t, NewDeck(), deck)
}

func TestDeal_Shape(t *testing.T) {
	b := Deal(NewDeck())

	for col := 0; col < 4; col++ {
		assert.Len(t, b.Tableau[col], 7, "column %d", col)
	}
	for col := 4; col < NumColumns; col++ {
		assert.Len(t, b.Tableau[col], 6, "column %d", col)
	}
	for i := range b.Freecells {
		assert.True(t, b.Freecells[i].IsZero())
	}
	for i := range b.Foundations {
		assert.Empty(t, b.Foundations[i])
	}

	// consumed left to right
	assert.Equal(t, NewCard(Ace, Hearts), b.Tableau[0][0])
	assert.Equal(t, NewCard(Eight, Hearts), b.Tableau[1][0])
	assert.Equal(t, NewCard(King, Spades), b.Tableau[7][5])
}

func TestDeal_PanicsOnShortDeck(t *testing.T) {
	assert.Panics(t, func() { Deal(NewDeck()[:51]) })
}

func TestReset_KeepsDeckInvariant(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		g := New(seed)
		assert.ElementsMatch(t, NewDeck(), g.Board.Cards(), "seed %d", seed)
		assert.Equal(t, seed, g.Seed)
		assert.False(t, g.CanUndo())
	}
}

func TestReset_ClearsState(t *testing.T) {
	g := New(7)
	_, err := g.MoveCard(TableauTop(&g.Board, 0), Freecell(0))
	require.NoError(t, err)

	g.Reset(7)
	assert.True(t, g.Board.Equal(&New(7).Board))
	assert.Zero(t, g.Moves())
}

func TestBoard_String(t *testing.T) {
	var b Board
	b.Freecells[1] = NewCard(Two, Hearts)
	b.Foundations[0] = []Card{NewCard(Ace, Spades)}
	b.Tableau[0] = []Card{NewCard(King, Clubs), NewCard(Queen, Hearts)}
	b.Tableau[2] = []Card{NewCard(Ten, Diamonds)}

	want := "-- 2♥ -- -- | A♠ -- -- --\n" +
		"K♣    T♦\n" +
		"Q♥\n"
	assert.Equal(t, want, b.String())
}
