// internal/game/board.go
//
// Board state: four free cells, four foundation piles, eight tableau columns.
// Fields are exported as the read-only query surface; all mutation goes
// through Game so history stays consistent.

package game

import "strings"

// Board is the full card layout of one game.
type Board struct {
	Freecells   [NumFreecells]Card     // zero Card = empty slot
	Foundations [NumFoundations][]Card // bottom first, top last
	Tableau     [NumColumns][]Card     // bottom first, top last
}

// Clone returns a deep copy of b.
func (b *Board) Clone() Board {
	out := Board{Freecells: b.Freecells}
	for i := range b.Foundations {
		out.Foundations[i] = append([]Card(nil), b.Foundations[i]...)
	}
	for i := range b.Tableau {
		out.Tableau[i] = append([]Card(nil), b.Tableau[i]...)
	}
	return out
}

// Equal reports whether both boards hold the same cards in the same places.
// Nil and empty piles compare equal.
func (b *Board) Equal(o *Board) bool {
	if b.Freecells != o.Freecells {
		return false
	}
	for i := range b.Foundations {
		if !sameCards(b.Foundations[i], o.Foundations[i]) {
			return false
		}
	}
	for i := range b.Tableau {
		if !sameCards(b.Tableau[i], o.Tableau[i]) {
			return false
		}
	}
	return true
}

func sameCards(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Cards lists every card on the board: free cells, then foundations, then tableau.
func (b *Board) Cards() []Card {
	out := make([]Card, 0, DeckSize)
	for _, c := range b.Freecells {
		if !c.IsZero() {
			out = append(out, c)
		}
	}
	for _, pile := range b.Foundations {
		out = append(out, pile...)
	}
	for _, col := range b.Tableau {
		out = append(out, col...)
	}
	return out
}

// String renders a plain-text layout: free cells and foundation tops on the
// first line, then the tableau row by row.
func (b *Board) String() string {
	var sb strings.Builder
	for _, c := range b.Freecells {
		sb.WriteString(c.String())
		sb.WriteByte(' ')
	}
	sb.WriteString("| ")
	for i, pile := range b.Foundations {
		if len(pile) == 0 {
			sb.WriteString("--")
		} else {
			sb.WriteString(pile[len(pile)-1].String())
		}
		if i < NumFoundations-1 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\n')

	depth := 0
	for _, col := range b.Tableau {
		depth = max(depth, len(col))
	}
	for row := 0; row < depth; row++ {
		line := make([]string, NumColumns)
		for i, col := range b.Tableau {
			if row < len(col) {
				line[i] = col[row].String()
			} else {
				line[i] = "  "
			}
		}
		sb.WriteString(strings.TrimRight(strings.Join(line, " "), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
