// internal/httpserver/server.go
//
// HTTP server wiring for the Freecell backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, request log).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Game endpoints (optional auth): new, view, move, undo, auto, hint, abandon.
//   - Daily deal endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//   - Persistence of per-game records and user stats.
//
// Notes:
//   - Live games sit in the session store; every command runs under that
//     session's lock, so one player's game is never mutated concurrently.
//   - Rejected commands are expected outcomes: 409 with {"ok":false,...}
//     and the unchanged game view.

package httpserver

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/freecell/internal/config"
	"github.com/robalobadob/freecell/internal/daily"
	"github.com/robalobadob/freecell/internal/game"
	"github.com/robalobadob/freecell/internal/metrics"
	"github.com/robalobadob/freecell/internal/store"
)

// validate checks request payloads against their struct tags.
var validate = validator.New()

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	daily *daily.Store
	cfg   config.Config

	dailyDeals *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, cfg config.Config) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		store: st,
		db:    db,
		daily: daily.NewStore(db),
		cfg:   cfg,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"freecell-go","endpoints":["/health","/metrics","POST /game/new","/game/{id}","POST /daily/new","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Game endpoints: OPTIONAL AUTH (guests can play)
	s.r.Route("/game", func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/new", s.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Delete("/", s.handleAbandon)
			r.Post("/move", s.handleMove)
			r.Post("/undo", s.handleUndo)
			r.Post("/auto", s.handleAuto)
			r.Get("/hint", s.handleHint)
		})
	})

	// Daily deal: OPTIONAL AUTH, completion recorded on win
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Janitor drops sessions idle for longer than idle, checking every interval,
// until ctx is done.
func (s *Server) Janitor(ctx context.Context, every, idle time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(ctx, idle)
		}
	}
}

// sweep removes idle sessions and marks their unfinished records abandoned.
// Streaks are left alone: walking away is not a forfeit.
func (s *Server) sweep(ctx context.Context, idle time.Duration) int {
	ids := s.store.Sweep(ctx, idle)
	if len(ids) == 0 {
		return 0
	}
	metrics.LiveSessions(s.store.Len())
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE games SET status='abandoned', finished_at=? WHERE id=? AND status='playing'`,
			nowRFC3339(), id); err != nil {
			log.Warn().Err(err).Str("gameId", id).Msg("abandon idle game")
		}
	}
	log.Info().Int("sessions", len(ids)).Dur("idle", idle).Msg("swept idle sessions")
	return len(ids)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one debug line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

// handleNewGame deals a new game, registers its session, and writes the
// owner row (user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	mode, seed := "random", randomSeed()
	if req.Seed != nil {
		mode, seed = "seeded", *req.Seed
	}
	userID, anonID := s.owner(w, r)
	sess, err := s.startSession(r.Context(), game.New(seed), userID, anonID, "")
	if err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	metrics.GameStarted(mode)
	s.writeView(w, sess)
}

// handleGetGame returns the current layout of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeView(w, sess)
}

// handleMove applies a single card move.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req moveReq
	if !decode(w, r, &req) {
		return
	}
	from, err := req.From.location()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := req.To.location()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.runCommand(w, r, sess, "move", func(g *game.Game) (game.Move, error) {
		return g.MoveCard(from, to)
	})
}

// handleUndo reverses the last move.
func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.runCommand(w, r, sess, "undo", func(g *game.Game) (game.Move, error) {
		return g.UndoMove()
	})
}

// handleAuto sends one card to the first foundation that accepts it.
func (s *Server) handleAuto(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req autoReq
	if !decode(w, r, &req) {
		return
	}
	from, err := req.From.location()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.runCommand(w, r, sess, "auto", func(g *game.Game) (game.Move, error) {
		return g.AutoMoveToFoundation(from)
	})
}

// handleHint suggests one legal move without changing the game.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var res hintRes
	_ = sess.Do(func(g *game.Game) error {
		if m, found := g.Hint(); found {
			res = hintRes{Found: true, Move: &m}
		}
		return nil
	})
	metrics.Hint(res.Found)
	_ = json.NewEncoder(w).Encode(res)
}

// handleAbandon drops a live game and marks its record abandoned.
// An abandoned game breaks the owner's win streak.
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), sess.ID()); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	metrics.LiveSessions(s.store.Len())

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err == nil {
		defer func() { _ = tx.Rollback() }()
		res, err := tx.Exec(`UPDATE games SET status='abandoned', finished_at=? WHERE id=? AND status='playing'`,
			nowRFC3339(), sess.ID())
		if err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID()).Msg("abandon game")
		} else if n, _ := res.RowsAffected(); n == 1 && sess.UserID() != "" {
			if _, err := tx.Exec(`UPDATE users SET streak=0 WHERE id=?`, sess.UserID()); err != nil {
				log.Warn().Err(err).Str("user", sess.UserID()).Msg("reset streak")
			}
		}
		_ = tx.Commit()
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// runCommand executes cmd under the session lock, records progress, and
// writes the command result.
func (s *Server) runCommand(w http.ResponseWriter, r *http.Request, sess *store.Session, name string,
	cmd func(g *game.Game) (game.Move, error)) {
	var (
		res     commandRes
		seed    int64
		moves   int
		justWon bool
	)
	err := sess.Do(func(g *game.Game) error {
		wasWon := g.IsGameWon()
		m, err := cmd(g)
		res = commandRes{OK: err == nil, Game: viewOf(sess, g)}
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Move = &m
		}
		seed, moves = g.Seed, g.Moves()
		justWon = !wasWon && g.IsGameWon()
		return err
	})
	metrics.Command(name, err)

	if err == nil {
		s.recordProgress(r.Context(), sess, seed, moves, justWon)
	} else if errors.Is(err, game.ErrCorruptHistory) {
		log.Error().Err(err).Str("gameId", sess.ID()).Msg(name)
	}

	w.WriteHeader(statusFor(err))
	_ = json.NewEncoder(w).Encode(res)
}

// recordProgress persists the move counter and, on a fresh win, the finished
// record, user stats, and daily completion, all in one transaction.
// Best effort: failures are logged, never surfaced to the player.
func (s *Server) recordProgress(ctx context.Context, sess *store.Session, seed int64, moves int, justWon bool) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET moves=? WHERE id=?`, moves, sess.ID()); err != nil {
		log.Warn().Err(err).Str("gameId", sess.ID()).Msg("update moves")
	}

	if justWon {
		res, err := tx.Exec(`UPDATE games SET status='won', finished_at=? WHERE id=? AND status='playing'`,
			nowRFC3339(), sess.ID())
		if err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID()).Msg("finish game")
		} else if n, _ := res.RowsAffected(); n == 1 {
			metrics.GameWon()
			log.Info().Str("gameId", sess.ID()).Int("moves", moves).Msg("game won")
			if userID := sess.UserID(); userID != "" {
				if _, err := tx.Exec(`UPDATE users SET wins = wins + 1, streak = streak + 1 WHERE id=?`, userID); err != nil {
					log.Warn().Err(err).Str("user", userID).Msg("bump stats")
				}
			}
			if sess.Daily != "" {
				if err := s.daily.InsertResultTx(ctx, tx, daily.Result{
					UserID: sess.Owner(), Date: sess.Daily, Seed: seed, Moves: moves,
				}); err != nil {
					log.Warn().Err(err).Str("gameId", sess.ID()).Msg("insert daily result")
				}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit progress")
	}
}

// owner identifies the caller: a user ID when signed in, otherwise an
// anonymous ID (set as a cookie on first use).
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (userID, anonID string) {
	if me := currentUser(r); me != nil {
		return me.ID, ""
	}
	return "", s.ensureAnonID(w, r)
}

// startSession stores a freshly dealt game for its owner and writes its
// record. dailyDate is the date key for daily deals, empty otherwise.
func (s *Server) startSession(ctx context.Context, g *game.Game, userID, anonID, dailyDate string) (*store.Session, error) {
	sess := store.NewSession(g)
	sess.SetOwner(userID, anonID)
	sess.Daily = dailyDate
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	metrics.LiveSessions(s.store.Len())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("begin game tx")
		return sess, nil
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec(`INSERT INTO games (id, user_id, anonymous_id, seed, daily_date, status, moves, started_at)
	                      VALUES (?,?,?,?,?,'playing',0,?)`,
		g.ID, nullable(userID), nullable(anonID), g.Seed, nullable(dailyDate), nowRFC3339()); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
		return sess, nil
	}
	if userID != "" {
		if _, err := tx.Exec(`UPDATE users SET games_played = games_played + 1 WHERE id=?`, userID); err != nil {
			log.Warn().Err(err).Str("user", userID).Msg("bump games played")
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("commit game row")
	}
	return sess, nil
}

// session looks up the caller's {id} session or writes a 404. A game owned
// by someone else is reported exactly like a missing one.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err == nil && !sess.OwnedBy(s.owner(w, r)) {
		err = store.ErrNotFound
	}
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

// writeView encodes the current view of sess.
func (s *Server) writeView(w http.ResponseWriter, sess *store.Session) {
	var v gameView
	_ = sess.Do(func(g *game.Game) error {
		v = viewOf(sess, g)
		return nil
	})
	_ = json.NewEncoder(w).Encode(v)
}

// ------------------------------- small util --------------------------------

// decode reads a JSON body into dst and validates it, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// statusFor maps an engine error to an HTTP status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, game.ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrEmptySource),
		errors.Is(err, game.ErrNothingToUndo),
		errors.Is(err, game.ErrNoFoundationMove):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError writes {"error": msg} with status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// randomSeed draws a non-negative deal seed from crypto/rand.
func randomSeed() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.BigEndian.Uint64(b[:]) &^ (1 << 63))
}

// nullable maps "" to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }
