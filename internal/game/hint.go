// internal/game/hint.go
//
// Hint search. A fixed-priority scan over the current board that returns the
// first legal move it finds. Categories, in order:
//
//  1. tableau top -> foundation
//  2. free cell   -> foundation
//  3. tableau top -> free cell
//  4. tableau top -> another tableau column
//  5. free cell   -> tableau
//
// Within a category sources and destinations are scanned in ascending index
// order. This is an advisor, not a solver: no lookahead, and a false result
// does not mean the deal is lost.

package game

// Hint returns one suggested legal move, or false if none exists.
func (g *Game) Hint() (Move, bool) {
	b := &g.Board

	for col := range b.Tableau {
		if m, ok := g.firstLegal(tableauSource(b, col), foundations()); ok {
			return m, true
		}
	}
	for i := range b.Freecells {
		if m, ok := g.firstLegal(freecellSource(b, i), foundations()); ok {
			return m, true
		}
	}
	for col := range b.Tableau {
		if m, ok := g.firstLegal(tableauSource(b, col), freecells()); ok {
			return m, true
		}
	}
	for col := range b.Tableau {
		if m, ok := g.firstLegal(tableauSource(b, col), columns(b, col)); ok {
			return m, true
		}
	}
	for i := range b.Freecells {
		if m, ok := g.firstLegal(freecellSource(b, i), columns(b, -1)); ok {
			return m, true
		}
	}
	return Move{}, false
}

// firstLegal returns the move from src to the first destination that accepts
// its card. A nil src means there is nothing to move.
func (g *Game) firstLegal(src *Location, dsts []Location) (Move, bool) {
	if src == nil {
		return Move{}, false
	}
	card, ok := src.Peek(&g.Board)
	if !ok {
		return Move{}, false
	}
	for _, to := range dsts {
		if g.IsValidMove(card, to) {
			return Move{From: *src, To: to}, true
		}
	}
	return Move{}, false
}

func tableauSource(b *Board, col int) *Location {
	if len(b.Tableau[col]) == 0 {
		return nil
	}
	l := TableauTop(b, col)
	return &l
}

func freecellSource(b *Board, i int) *Location {
	if b.Freecells[i].IsZero() {
		return nil
	}
	l := Freecell(i)
	return &l
}

func foundations() []Location {
	out := make([]Location, NumFoundations)
	for i := range out {
		out[i] = Foundation(i)
	}
	return out
}

func freecells() []Location {
	out := make([]Location, NumFreecells)
	for i := range out {
		out[i] = Freecell(i)
	}
	return out
}

// columns lists the landing spot of every tableau column except skip.
func columns(b *Board, skip int) []Location {
	out := make([]Location, 0, NumColumns)
	for col := range b.Tableau {
		if col == skip {
			continue
		}
		out = append(out, Tableau(col, len(b.Tableau[col])))
	}
	return out
}
