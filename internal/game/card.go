// internal/game/card.go
//
// Card model: rank, suit, derived color, and the short display form
// shared by every renderer (CLI text layout, JSON labels).

package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Rank is a card rank, Ace (1) through King (13).
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

const rankLabels = "A23456789TJQK"

// String returns the one-character rank label ("A", "7", "T", "K").
func (r Rank) String() string {
	if r < Ace || r > King {
		return "?"
	}
	return rankLabels[r-1 : r]
}

// Suit is one of the four French suits. The zero value is not a suit.
type Suit uint8

const (
	Hearts Suit = iota + 1
	Diamonds
	Clubs
	Spades
)

var suitNames = [...]string{"", "hearts", "diamonds", "clubs", "spades"}
var suitSymbols = [...]string{"", "♥", "♦", "♣", "♠"}

// String returns the lowercase suit name.
func (s Suit) String() string {
	if s < Hearts || s > Spades {
		return "unknown"
	}
	return suitNames[s]
}

// Symbol returns the suit glyph.
func (s Suit) Symbol() string {
	if s < Hearts || s > Spades {
		return "?"
	}
	return suitSymbols[s]
}

// Color returns Red for hearts and diamonds, Black for clubs and spades.
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// MarshalText encodes the suit by name.
func (s Suit) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a suit name as written by MarshalText.
func (s *Suit) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i := Hearts; i <= Spades; i++ {
		if suitNames[i] == name {
			*s = i
			return nil
		}
	}
	return fmt.Errorf("unknown suit %q", b)
}

// Color is the derived color of a suit.
type Color uint8

const (
	Red Color = iota + 1
	Black
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "unknown"
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Card is an immutable rank+suit value. The zero Card means "no card".
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard builds a card from its rank and suit.
func NewCard(r Rank, s Suit) Card { return Card{Rank: r, Suit: s} }

// IsZero reports whether c is the empty placeholder rather than a real card.
func (c Card) IsZero() bool { return c.Rank == 0 }

// Color returns the card's derived color.
func (c Card) Color() Color { return c.Suit.Color() }

// String returns the short display form, e.g. "7♣" or "T♥".
func (c Card) String() string {
	if c.IsZero() {
		return "--"
	}
	return c.Rank.String() + c.Suit.Symbol()
}

// MarshalJSON emits the card together with its display label and color,
// so presentation layers never re-derive them.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Rank  Rank   `json:"rank"`
		Suit  Suit   `json:"suit"`
		Color Color  `json:"color"`
		Label string `json:"label"`
	}{c.Rank, c.Suit, c.Color(), c.String()})
}

// UnmarshalJSON accepts either the object form written by MarshalJSON or a
// bare compact string such as "7C". An object without a label is read from
// its rank and suit; an empty object is the zero card.
func (c *Card) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var label string
		if err := json.Unmarshal(b, &label); err != nil {
			return err
		}
		return c.setLabel(label)
	}
	var v struct {
		Rank  Rank    `json:"rank"`
		Suit  Suit    `json:"suit"`
		Label *string `json:"label"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v.Label != nil {
		return c.setLabel(*v.Label)
	}
	switch {
	case v.Rank == 0 && v.Suit == 0:
		*c = Card{}
	case v.Rank < Ace || v.Rank > King:
		return fmt.Errorf("card rank %d out of range", v.Rank)
	case v.Suit == 0:
		return fmt.Errorf("card rank %d without suit", v.Rank)
	default:
		*c = NewCard(v.Rank, v.Suit)
	}
	return nil
}

func (c *Card) setLabel(label string) error {
	if label == "" || label == "--" {
		*c = Card{}
		return nil
	}
	parsed, err := ParseCard(label)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard reads a card from its compact text form: a rank label
// (A 2-9 T J Q K, or "10") followed by a suit letter (H D C S) or glyph.
// Input is case-insensitive.
func ParseCard(s string) (Card, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	if strings.HasPrefix(in, "10") {
		in = "T" + in[2:]
	}
	if len(in) < 2 {
		return Card{}, fmt.Errorf("parse card %q: too short", s)
	}
	idx := strings.IndexByte(rankLabels, in[0])
	if idx < 0 {
		return Card{}, fmt.Errorf("parse card %q: bad rank", s)
	}
	var suit Suit
	switch in[1:] {
	case "H", "♥":
		suit = Hearts
	case "D", "♦":
		suit = Diamonds
	case "C", "♣":
		suit = Clubs
	case "S", "♠":
		suit = Spades
	default:
		return Card{}, fmt.Errorf("parse card %q: bad suit", s)
	}
	return Card{Rank: Rank(idx + 1), Suit: suit}, nil
}
