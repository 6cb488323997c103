// internal/game/deck.go
//
// Deck construction, shuffling and dealing.
//
// Deck order is fixed: suits outer (hearts, diamonds, clubs, spades),
// ranks inner (ace..king). A given seed therefore always yields the same deal.

package game

import "math/rand"

// NewDeck returns the 52 cards in enumeration order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Ace; rank <= King; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Shuffle returns a uniformly permuted copy of deck drawn from rng.
func Shuffle(deck []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Deal lays deck out left to right: seven cards into columns 0-3 and six
// into columns 4-7. Free cells and foundations stay empty.
func Deal(deck []Card) Board {
	if len(deck) != DeckSize {
		panic("invalid deal: deck must hold exactly 52 cards")
	}
	var b Board
	idx := 0
	for col, n := range dealHeights {
		b.Tableau[col] = append([]Card(nil), deck[idx:idx+n]...)
		idx += n
	}
	return b
}
