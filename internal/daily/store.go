package daily

import (
	"context"
	"database/sql"
)

// Result is one player's completion of a daily deal.
type Result struct {
	UserID string `json:"userId"`
	Date   string `json:"date"`
	Seed   int64  `json:"seed"`
	Moves  int    `json:"moves"`
}

// Store reads and writes daily_results.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyWon reports whether userID has completed the deal for date.
func (s *Store) AlreadyWon(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InsertResult records a completion. A second result for the same player and
// date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	return insertResult(ctx, s.db, r)
}

// InsertResultTx is InsertResult inside an open transaction.
func (s *Store) InsertResultTx(ctx context.Context, tx *sql.Tx, r Result) error {
	return insertResult(ctx, tx, r)
}

func insertResult(ctx context.Context, ex execer, r Result) error {
	_, err := ex.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, seed, moves)
		VALUES(?,?,?,?)`, r.UserID, r.Date, r.Seed, r.Moves,
	)
	return err
}
