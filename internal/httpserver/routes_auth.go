// internal/httpserver/routes_auth.go
//
// Accounts, JWT cookies, and per-player history.
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me, /stats/me, /games/mine (gated)
//
// Guests get a long-lived anonymous cookie; their game rows are moved onto
// the account on signup/login.

package httpserver

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	errUsernameTaken   = errors.New("username taken")
	errUsernameCharset = errors.New("username: letters, numbers, underscore only")
)

// credentialsReq is the payload for signup and login.
type credentialsReq struct {
	Username string `json:"username" validate:"required,min=3,max=24"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// authUser is placed into request context by auth middleware.
type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ctxUserKey is the context key type for storing authUser.
type ctxUserKey struct{}

// currentUser returns the authenticated user or nil for guests.
func currentUser(r *http.Request) *authUser {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	return me
}

// mountAuthRoutes registers authentication + gated routes (/auth/*, /stats/me, /games/mine).
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(currentUser(r))
		})
		r.Get("/stats/me", s.handleStats)
		r.Get("/games/mine", s.handleMyGames)
	})
}

// handleSignup creates a new user, signs a JWT, sets auth cookie, and claims anon history.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if !decode(w, r, &body) {
		return
	}
	u, err := s.createUser(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, errUsernameTaken):
		writeError(w, http.StatusConflict, "Username taken")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.startAuth(w, r, u) {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"id": u.ID, "username": u.Username, "createdAt": u.CreatedAt})
}

// handleLogin authenticates user, sets cookie, and claims anon history.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	u, err := s.findUserByUsername(r.Context(), strings.TrimSpace(body.Username))
	if err != nil || !checkPassword(u.PasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !s.startAuth(w, r, u) {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"id": u.ID, "username": u.Username})
}

// startAuth signs a token for u, sets the cookie, and claims guest games.
func (s *Server) startAuth(w http.ResponseWriter, r *http.Request, u *userRow) bool {
	tok, exp, err := s.signJWT(u.ID, u.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.setAuthCookie(w, tok, exp)
	s.claimAnonGames(r.Context(), s.ensureAnonID(w, r), u.ID)
	log.Info().Str("user", u.ID).Msg("signed in")
	return true
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, s.cfg.CookieName, "", time.Time{}, -1)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleStats returns the caller's finished-game statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	u, err := s.findUserByID(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":          u.ID,
		"gamesPlayed": u.GamesPlayed,
		"wins":        u.Wins,
		"streak":      u.Streak,
	})
}

// gameRow is one entry of /games/mine.
type gameRow struct {
	ID         string `json:"id"`
	Seed       int64  `json:"seed"`
	Daily      string `json:"daily,omitempty"`
	Status     string `json:"status"`
	Moves      int    `json:"moves"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// handleMyGames lists the caller's 50 most recent games.
func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(),
		`SELECT id, seed, COALESCE(daily_date,''), status, moves, started_at, COALESCE(finished_at,'')
		 FROM games WHERE user_id=? ORDER BY started_at DESC LIMIT 50`, currentUser(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	defer rows.Close()

	out := []gameRow{}
	for rows.Next() {
		var gr gameRow
		if err := rows.Scan(&gr.ID, &gr.Seed, &gr.Daily, &gr.Status, &gr.Moves, &gr.StartedAt, &gr.FinishedAt); err != nil {
			log.Warn().Err(err).Msg("scan game row")
			continue
		}
		out = append(out, gr)
	}
	_ = json.NewEncoder(w).Encode(out)
}

// --------------------------- auth middleware -------------------------------

// parseToken validates tok and returns its user, checking the row still exists.
func (s *Server) parseToken(ctx context.Context, tok string) (*authUser, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return nil, errors.New("invalid token")
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return nil, errors.New("invalid token")
	}
	u, err := s.findUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &authUser{ID: u.ID, Username: u.Username}, nil
}

// withOptionalAuth decorates requests with user context if a valid JWT is present.
// It never 401s; used for routes where guests are allowed.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := s.bearerOrCookie(r); tok != "" {
				if me, err := s.parseToken(r.Context(), tok); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, me))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth enforces a valid JWT and injects authUser into request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := s.bearerOrCookie(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			me, err := s.parseToken(r.Context(), tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, me)))
		})
	}
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// ------------------------------ anon players -------------------------------

const anonCookieName = "freecell_anon"

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	s.setCookie(w, anonCookieName, id, time.Now().Add(180*24*time.Hour), 0)
	return id
}

// claimAnonGames transfers a guest's history and live games to a user account
// after auth: game rows, their counts in the user's stats, daily completions,
// and the in-memory sessions still being played.
func (s *Server) claimAnonGames(ctx context.Context, anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	if err := s.claimRows(ctx, anonID, userID); err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("claim anon games")
	}
	if n := s.store.ClaimAnon(ctx, anonID, userID); n > 0 {
		log.Debug().Str("user", userID).Int("sessions", n).Msg("claimed live sessions")
	}
	s.dailyDeals.claim(anonID, userID)
}

// claimRows re-owns the guest's rows in one transaction.
func (s *Server) claimRows(ctx context.Context, anonID, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var played, won int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(status='won'),0) FROM games WHERE anonymous_id=?`, anonID,
	).Scan(&played, &won); err != nil {
		return err
	}
	if played > 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET games_played = games_played + ?, wins = wins + ? WHERE id=?`,
			played, won, userID); err != nil {
			return err
		}
	}
	// A day the account already completed keeps its own result.
	if _, err := tx.ExecContext(ctx,
		`UPDATE OR IGNORE daily_results SET user_id=? WHERE user_id=?`, userID, anonID); err != nil {
		return err
	}
	return tx.Commit()
}

// ------------------------ users -----------------------------

// userRow matches the users table shape.
type userRow struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	GamesPlayed  int
	Wins         int
	Streak       int
}

// createUser checks the charset and uniqueness, hashes the password, and inserts a new user.
func (s *Server) createUser(ctx context.Context, username, pw string) (*userRow, error) {
	username = strings.TrimSpace(username)
	for _, r := range username {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return nil, errUsernameCharset
		}
	}
	var exists int
	_ = s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE lower(username)=lower(?)`, username).Scan(&exists)
	if exists == 1 {
		return nil, errUsernameTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := nowRFC3339()
	id := genID()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, username, string(h), now); err != nil {
		return nil, err
	}
	return &userRow{ID: id, Username: username, PasswordHash: string(h), CreatedAt: mustParse(now)}, nil
}

// findUserByUsername/ID load a user row or return an error if missing.
func (s *Server) findUserByUsername(ctx context.Context, username string) (*userRow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                      FROM users WHERE lower(username)=lower(?)`, username)
	return scanUser(row)
}
func (s *Server) findUserByID(ctx context.Context, id string) (*userRow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                      FROM users WHERE id=?`, id)
	return scanUser(row)
}

// scanUser converts a *sql.Row into a userRow.
func scanUser(row *sql.Row) (*userRow, error) {
	var u userRow
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.GamesPlayed, &u.Wins, &u.Streak); err != nil {
		return nil, err
	}
	u.CreatedAt = mustParse(created)
	return &u, nil
}

// mustParse parses RFC3339 timestamps; on error returns zero time.
func mustParse(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ------------------------------ JWT & cookies ------------------------------

// signJWT creates an HS256 JWT with id/username and the configured expiry.
func (s *Server) signJWT(id, username string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.cfg.JWTExpiry)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// setAuthCookie writes the auth token cookie.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	s.setCookie(w, s.cfg.CookieName, token, exp, 0)
}

// setCookie writes an HttpOnly cookie. Production cookies are Secure and
// SameSite=None so a separately hosted client can send them.
func (s *Server) setCookie(w http.ResponseWriter, name, value string, exp time.Time, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  exp,
		MaxAge:   maxAge,
	})
}
