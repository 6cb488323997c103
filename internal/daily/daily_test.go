package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/freecell/internal/db"
)

func TestDateKey_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // still March 1st in UTC
	assert.Equal(t, "2026-03-01", DateKey(ts))
}

func TestSeed_StablePerDateAndSalt(t *testing.T) {
	morning := time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)
	tomorrow := morning.Add(24 * time.Hour)

	assert.Equal(t, Seed(morning, "salt"), Seed(evening, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(tomorrow, "salt"))
	assert.NotEqual(t, Seed(morning, "salt"), Seed(morning, "other"))
	assert.GreaterOrEqual(t, Seed(morning, "salt"), int64(0))
}

func TestStore_InsertAndAlreadyWon(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.OpenMigrated(db.Memory)
	require.NoError(t, err)
	defer sqlDB.Close()
	st := NewStore(sqlDB)

	won, err := st.AlreadyWon(ctx, "u1", "2026-10-19")
	require.NoError(t, err)
	assert.False(t, won)

	require.NoError(t, st.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-19", Seed: 9, Moves: 88}))
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-19", Seed: 9, Moves: 70}))

	won, err = st.AlreadyWon(ctx, "u1", "2026-10-19")
	require.NoError(t, err)
	assert.True(t, won)

	var moves int
	require.NoError(t, sqlDB.QueryRow(`SELECT moves FROM daily_results WHERE user_id='u1'`).Scan(&moves))
	assert.Equal(t, 88, moves, "first result is kept")

	won, err = st.AlreadyWon(ctx, "u2", "2026-10-19")
	require.NoError(t, err)
	assert.False(t, won)
}
