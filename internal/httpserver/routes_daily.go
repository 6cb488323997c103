// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Deal" mode.
//   - POST /daily/new → start today's deal (creates or reuses a session)
//
// Everyone gets the same seed on a given UTC day (HMAC of date + salt).
// The deal is played through the ordinary /game/{id} endpoints; a win is
// recorded in daily_results once per player and date.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/freecell/internal/daily"
	"github.com/robalobadob/freecell/internal/game"
	"github.com/robalobadob/freecell/internal/metrics"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	sessions map[string]string // game ID keyed by owner|date
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		sessions: make(map[string]string),
	}
	s.dailyDeals = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
	})
}

// dailyRes is returned by /daily/new. Game is omitted once today's deal
// has been won.
type dailyRes struct {
	Date   string    `json:"date"`
	Seed   int64     `json:"seed"`
	Played bool      `json:"played"`
	Game   *gameView `json:"game,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
//   - If the player already has a result for today → Played=true.
//   - Otherwise reuse the live session, or deal a new one.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	userID, anonID := d.srv.owner(w, r)
	uid := userID + anonID
	now := time.Now()
	date, seed := daily.DateKey(now), daily.Seed(now, d.srv.cfg.DailySalt)

	played, err := d.srv.daily.AlreadyWon(r.Context(), uid, date)
	if err != nil {
		log.Warn().Err(err).Str("date", date).Msg("daily lookup")
	}
	if played {
		_ = json.NewEncoder(w).Encode(dailyRes{Date: date, Seed: seed, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prune(date)

	if id, ok := d.sessions[key]; ok {
		if sess, err := d.srv.store.Get(r.Context(), id); err == nil {
			var v gameView
			_ = sess.Do(func(g *game.Game) error {
				v = viewOf(sess, g)
				return nil
			})
			_ = json.NewEncoder(w).Encode(dailyRes{Date: date, Seed: seed, Game: &v})
			return
		}
		delete(d.sessions, key) // abandoned
	}

	sess, err := d.srv.startSession(r.Context(), game.New(seed), userID, anonID, date)
	if err != nil {
		log.Error().Err(err).Msg("save daily game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.sessions[key] = sess.ID()
	metrics.GameStarted("daily")

	var v gameView
	_ = sess.Do(func(g *game.Game) error {
		v = viewOf(sess, g)
		return nil
	})
	_ = json.NewEncoder(w).Encode(dailyRes{Date: date, Seed: seed, Game: &v})
}

// claim re-keys a guest's live daily sessions to userID.
func (d *dailyServer) claim(anonID, userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	prefix := anonID + "|"
	for k, id := range d.sessions {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		delete(d.sessions, k)
		userKey := userID + "|" + strings.TrimPrefix(k, prefix)
		if _, ok := d.sessions[userKey]; !ok {
			d.sessions[userKey] = id
		}
	}
}

// prune forgets sessions from earlier dates. Caller holds d.mu.
func (d *dailyServer) prune(today string) {
	for k := range d.sessions {
		if !strings.HasSuffix(k, "|"+today) {
			delete(d.sessions, k)
		}
	}
}
