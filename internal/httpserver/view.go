// internal/httpserver/view.go
//
// JSON payloads exchanged with the presentation layer.
// The board is copied into plain slices so encoding never races a later
// command on the same session.

package httpserver

import (
	"github.com/robalobadob/freecell/internal/game"
	"github.com/robalobadob/freecell/internal/store"
)

// gameView is the read-only query surface of one game.
type gameView struct {
	GameID      string        `json:"gameId"`
	Seed        int64         `json:"seed"`
	Daily       string        `json:"daily,omitempty"`
	Freecells   []*game.Card  `json:"freecells"`   // null = empty slot
	Foundations [][]game.Card `json:"foundations"` // bottom first
	Tableau     [][]game.Card `json:"tableau"`     // bottom first
	Moves       int           `json:"moves"`
	CanUndo     bool          `json:"canUndo"`
	Won         bool          `json:"won"`
}

// viewOf snapshots g. Call it while holding the session lock.
func viewOf(sess *store.Session, g *game.Game) gameView {
	v := gameView{
		GameID:      g.ID,
		Seed:        g.Seed,
		Daily:       sess.Daily,
		Freecells:   make([]*game.Card, game.NumFreecells),
		Foundations: make([][]game.Card, game.NumFoundations),
		Tableau:     make([][]game.Card, game.NumColumns),
		Moves:       g.Moves(),
		CanUndo:     g.CanUndo(),
		Won:         g.IsGameWon(),
	}
	for i, c := range g.Board.Freecells {
		if !c.IsZero() {
			c := c
			v.Freecells[i] = &c
		}
	}
	for i, pile := range g.Board.Foundations {
		v.Foundations[i] = append([]game.Card{}, pile...)
	}
	for i, col := range g.Board.Tableau {
		v.Tableau[i] = append([]game.Card{}, col...)
	}
	return v
}

// locationReq is a Location as sent by a client.
type locationReq struct {
	Kind  string `json:"kind" validate:"required,oneof=freecell foundation tableau"`
	Index *int   `json:"index" validate:"required,min=0,max=7"`
	Card  int    `json:"card" validate:"min=0"`
}

// location converts the request into an engine address and checks its range
// for the given kind.
func (l locationReq) location() (game.Location, error) {
	kind, err := game.ParseKind(l.Kind)
	if err != nil {
		return game.Location{}, err
	}
	loc := game.Location{Kind: kind, Index: *l.Index, Card: l.Card}
	return loc, loc.Validate()
}

// moveReq is the payload for POST /game/{id}/move.
type moveReq struct {
	From locationReq `json:"from"`
	To   locationReq `json:"to"`
}

// autoReq is the payload for POST /game/{id}/auto.
type autoReq struct {
	From locationReq `json:"from"`
}

// newGameReq is the payload for POST /game/new. Without a seed the deal is random.
type newGameReq struct {
	Seed *int64 `json:"seed"`
}

// commandRes answers every state-changing command.
type commandRes struct {
	OK    bool       `json:"ok"`
	Move  *game.Move `json:"move,omitempty"`
	Error string     `json:"error,omitempty"`
	Game  gameView   `json:"game"`
}

// hintRes answers GET /game/{id}/hint.
type hintRes struct {
	Found bool       `json:"found"`
	Move  *game.Move `json:"move,omitempty"`
}
