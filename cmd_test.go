package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/freecell/internal/game"
)

func TestDealCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"deal", "--seed", "11", "--hint"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "seed 11\n"))
	assert.Contains(t, out, game.New(11).Board.String())
	assert.Contains(t, out, "hint: tableau[")
}
