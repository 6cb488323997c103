// Package metrics exposes Prometheus counters for game commands.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/robalobadob/freecell/internal/game"
)

var (
	// gamesStarted counts new deals by how the seed was chosen
	gamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freecell_games_started_total",
		Help: "Games dealt, by mode (random, seeded, daily)",
	}, []string{"mode"})

	gamesWon = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freecell_games_won_total",
		Help: "Games finished with all four foundations complete",
	})

	// commands counts engine commands by name and outcome
	commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freecell_commands_total",
		Help: "Engine commands by command and result",
	}, []string{"command", "result"})

	liveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "freecell_live_sessions",
		Help: "Sessions currently held in memory",
	})
)

// GameStarted records a new deal.
func GameStarted(mode string) { gamesStarted.WithLabelValues(mode).Inc() }

// GameWon records a finished game.
func GameWon() { gamesWon.Inc() }

// Command records one engine command outcome.
func Command(command string, err error) {
	commands.WithLabelValues(command, Result(err)).Inc()
}

// Hint records a hint request.
func Hint(found bool) {
	res := "none"
	if found {
		res = "found"
	}
	commands.WithLabelValues("hint", res).Inc()
}

// LiveSessions sets the live session gauge.
func LiveSessions(n int) { liveSessions.Set(float64(n)) }

// Result maps an engine error to a low-cardinality label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, game.ErrIllegalMove):
		return "illegal"
	case errors.Is(err, game.ErrEmptySource):
		return "empty_source"
	case errors.Is(err, game.ErrInvalidLocation):
		return "invalid_location"
	case errors.Is(err, game.ErrNothingToUndo):
		return "nothing_to_undo"
	case errors.Is(err, game.ErrNoFoundationMove):
		return "no_foundation"
	}
	return "error"
}
