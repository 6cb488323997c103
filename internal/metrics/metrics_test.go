package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/freecell/internal/game"
)

func TestResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{game.ErrIllegalMove, "illegal"},
		{fmt.Errorf("wrapped: %w", game.ErrInvalidLocation), "invalid_location"},
		{game.ErrEmptySource, "empty_source"},
		{game.ErrNothingToUndo, "nothing_to_undo"},
		{game.ErrNoFoundationMove, "no_foundation"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Result(tt.err))
		})
	}
}

func TestCommandCounters(t *testing.T) {
	before := testutil.ToFloat64(commands.WithLabelValues("move", "illegal"))
	Command("move", game.ErrIllegalMove)
	Command("move", game.ErrIllegalMove)
	assert.Equal(t, before+2, testutil.ToFloat64(commands.WithLabelValues("move", "illegal")))

	hintsBefore := testutil.ToFloat64(commands.WithLabelValues("hint", "found"))
	Hint(true)
	assert.Equal(t, hintsBefore+1, testutil.ToFloat64(commands.WithLabelValues("hint", "found")))

	LiveSessions(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(liveSessions))
}
