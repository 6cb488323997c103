// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Live Freecell games are kept here between requests; finished-game records
// go to SQLite through the httpserver, not through this package.
//
// Characteristics:
//   - Stores *Session objects keyed by game ID in a map.
//   - The map is guarded by an RWMutex (concurrent reads, exclusive writes).
//   - Each Session carries its own mutex; commands on one game never block
//     another game.
//   - Sessions unused for a while are dropped by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robalobadob/freecell/internal/game"
)

// ErrNotFound is returned by Get for an unknown game ID.
var ErrNotFound = errors.New("not found")

// Store defines the registry of live game sessions.
// Implementations may be backed by memory (this package), Redis, etc.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by game ID.
	// Returns ErrNotFound if there is none.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete drops a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// ClaimAnon hands every session owned by anonID to userID and returns
	// how many moved.
	ClaimAnon(ctx context.Context, anonID, userID string) int

	// Sweep drops sessions unused for longer than idle and returns their IDs.
	Sweep(ctx context.Context, idle time.Duration) []string

	// Len reports the number of live sessions.
	Len() int
}

// Session is one player's game plus the metadata the server tracks for it.
// All access to Game must go through Do.
type Session struct {
	Daily     string // YYYY-MM-DD for daily deals, empty otherwise
	CreatedAt time.Time

	ownerMu sync.RWMutex
	userID  string // authenticated owner, empty for guests
	anonID  string // anonymous cookie owner, empty for users

	lastUsed atomic.Int64 // unix nanos of the last Do

	mu   sync.Mutex
	game *game.Game
}

// NewSession wraps g for storage.
func NewSession(g *game.Game) *Session {
	s := &Session{game: g, CreatedAt: time.Now().UTC()}
	s.lastUsed.Store(s.CreatedAt.UnixNano())
	return s
}

// ID returns the wrapped game's identifier.
func (s *Session) ID() string { return s.game.ID }

// SetOwner records who the session belongs to.
func (s *Session) SetOwner(userID, anonID string) {
	s.ownerMu.Lock()
	defer s.ownerMu.Unlock()
	s.userID, s.anonID = userID, anonID
}

// UserID returns the authenticated owner, empty for guests.
func (s *Session) UserID() string {
	s.ownerMu.RLock()
	defer s.ownerMu.RUnlock()
	return s.userID
}

// Owner returns the user ID, or the anonymous ID for guests.
func (s *Session) Owner() string {
	s.ownerMu.RLock()
	defer s.ownerMu.RUnlock()
	if s.userID != "" {
		return s.userID
	}
	return s.anonID
}

// OwnedBy reports whether the caller identified by userID or anonID owns
// the session. Empty IDs never match.
func (s *Session) OwnedBy(userID, anonID string) bool {
	s.ownerMu.RLock()
	defer s.ownerMu.RUnlock()
	if s.userID != "" {
		return s.userID == userID
	}
	return s.anonID != "" && s.anonID == anonID
}

// claim moves a guest session to userID if anonID owns it.
func (s *Session) claim(anonID, userID string) bool {
	s.ownerMu.Lock()
	defer s.ownerMu.Unlock()
	if s.userID != "" || s.anonID != anonID {
		return false
	}
	s.userID, s.anonID = userID, ""
	return true
}

// Do runs fn with exclusive access to the game.
func (s *Session) Do(fn func(g *game.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed.Store(time.Now().UnixNano())
	return fn(s.game)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by game ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	if s == nil || s.game == nil {
		return errors.New("nil session")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) ClaimAnon(ctx context.Context, anonID, userID string) int {
	if anonID == "" || userID == "" {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.sessions {
		if s.claim(anonID, userID) {
			n++
		}
	}
	return n
}

func (m *memory) Sweep(ctx context.Context, idle time.Duration) []string {
	cutoff := time.Now().Add(-idle).UnixNano()
	m.mu.Lock()
	defer m.mu.Unlock()
	var gone []string
	for id, s := range m.sessions {
		if s.lastUsed.Load() < cutoff {
			delete(m.sessions, id)
			gone = append(gone, id)
		}
	}
	return gone
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
