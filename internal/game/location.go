// internal/game/location.go
//
// Location is a pure address into a Board: a free cell slot, a foundation
// pile, or a tableau position. It holds no reference to the board; every
// operation takes the board it resolves against.
//
// Tableau addresses resolve strictly. Peek and Remove only succeed when the
// card index is the column's current last index, so a stale address can never
// read one card and remove another.

package game

import (
	"errors"
	"fmt"
)

// ErrInvalidLocation is returned for an unknown kind or an out-of-range index.
var ErrInvalidLocation = errors.New("invalid location")

// Kind tags which part of the board a Location addresses.
type Kind uint8

const (
	KindFreecell Kind = iota + 1
	KindFoundation
	KindTableau
)

func (k Kind) String() string {
	switch k {
	case KindFreecell:
		return "freecell"
	case KindFoundation:
		return "foundation"
	case KindTableau:
		return "tableau"
	}
	return "unknown"
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "freecell":
		return KindFreecell, nil
	case "foundation":
		return KindFoundation, nil
	case "tableau":
		return KindTableau, nil
	}
	return 0, fmt.Errorf("%w: kind %q", ErrInvalidLocation, s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Location addresses one spot on the board.
// Card is only meaningful for KindTableau.
type Location struct {
	Kind  Kind `json:"kind"`
	Index int  `json:"index"`
	Card  int  `json:"card"`
}

// Freecell addresses free cell slot i.
func Freecell(i int) Location { return Location{Kind: KindFreecell, Index: i} }

// Foundation addresses the top of foundation pile i.
func Foundation(i int) Location { return Location{Kind: KindFoundation, Index: i} }

// Tableau addresses position idx of column col.
func Tableau(col, idx int) Location { return Location{Kind: KindTableau, Index: col, Card: idx} }

// TableauTop addresses the last card of column col as it stands on b.
// For an empty column this is position 0, the spot the next card lands on.
func TableauTop(b *Board, col int) Location {
	n := 0
	if col >= 0 && col < NumColumns {
		n = len(b.Tableau[col])
	}
	if n == 0 {
		return Tableau(col, 0)
	}
	return Tableau(col, n-1)
}

// Validate checks the kind and index ranges.
func (l Location) Validate() error {
	limit := 0
	switch l.Kind {
	case KindFreecell:
		limit = NumFreecells
	case KindFoundation:
		limit = NumFoundations
	case KindTableau:
		limit = NumColumns
		if l.Card < 0 {
			return fmt.Errorf("%w: %s card index %d", ErrInvalidLocation, l, l.Card)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidLocation, l.Kind)
	}
	if l.Index < 0 || l.Index >= limit {
		return fmt.Errorf("%w: %s", ErrInvalidLocation, l)
	}
	return nil
}

func (l Location) String() string {
	if l.Kind == KindTableau {
		return fmt.Sprintf("tableau[%d:%d]", l.Index, l.Card)
	}
	return fmt.Sprintf("%s[%d]", l.Kind, l.Index)
}

// Peek returns the card at l, or false if there is none.
func (l Location) Peek(b *Board) (Card, bool) {
	if l.Validate() != nil {
		return Card{}, false
	}
	switch l.Kind {
	case KindFreecell:
		c := b.Freecells[l.Index]
		return c, !c.IsZero()
	case KindFoundation:
		pile := b.Foundations[l.Index]
		if len(pile) == 0 {
			return Card{}, false
		}
		return pile[len(pile)-1], true
	case KindTableau:
		col := b.Tableau[l.Index]
		if len(col) == 0 || l.Card != len(col)-1 {
			return Card{}, false
		}
		return col[l.Card], true
	}
	return Card{}, false
}

// Remove takes the card at l off the board. It fails exactly when Peek does.
func (l Location) Remove(b *Board) (Card, bool) {
	c, ok := l.Peek(b)
	if !ok {
		return Card{}, false
	}
	switch l.Kind {
	case KindFreecell:
		b.Freecells[l.Index] = Card{}
	case KindFoundation:
		pile := b.Foundations[l.Index]
		b.Foundations[l.Index] = pile[:len(pile)-1]
	case KindTableau:
		col := b.Tableau[l.Index]
		b.Tableau[l.Index] = col[:len(col)-1]
	}
	return c, true
}

// Place puts c at l without any rule check: it fills the free cell, or
// pushes onto the foundation pile or tableau column. The tableau card index
// is ignored.
func (l Location) Place(b *Board, c Card) {
	switch l.Kind {
	case KindFreecell:
		b.Freecells[l.Index] = c
	case KindFoundation:
		b.Foundations[l.Index] = append(b.Foundations[l.Index], c)
	case KindTableau:
		b.Tableau[l.Index] = append(b.Tableau[l.Index], c)
	}
}

// canonical drops the card index from non-tableau addresses.
func (l Location) canonical() Location {
	if l.Kind == KindTableau {
		return l
	}
	return Location{Kind: l.Kind, Index: l.Index}
}

// landing returns the canonical address a card placed at l will occupy:
// the tableau card index becomes the next free position, other kinds drop it.
func (l Location) landing(b *Board) Location {
	if l.Kind == KindTableau {
		return Tableau(l.Index, len(b.Tableau[l.Index]))
	}
	return l.canonical()
}
