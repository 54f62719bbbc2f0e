package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/absurdle/assets"
	"github.com/robalobadob/absurdle/internal/db"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	assert.Equal(t, "2026-03-01", DateKey(time.Date(2026, 3, 2, 5, 0, 0, 0, loc)))
}

func TestWordIndexDeterministic(t *testing.T) {
	day := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	a := WordIndex(day, "salt", 500)
	assert.Equal(t, a, WordIndex(day.Add(6*time.Hour), "salt", 500), "same day, same index")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 500)
	assert.Zero(t, WordIndex(day, "salt", 0))

	differs := false
	for d := 1; d <= 10; d++ {
		if WordIndex(day.AddDate(0, 0, d), "salt", 500) != a {
			differs = true
		}
	}
	assert.True(t, differs)
}

func TestTarget(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	cands := []string{"buggy", "crazy", "fancy", "panic"}

	w, idx, ok := Target(day, "salt", cands)
	require.True(t, ok)
	assert.Equal(t, cands[idx], w)

	_, _, ok = Target(day, "salt", nil)
	assert.False(t, ok)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(sqlDB, assets.Migrations()))
	s := NewStore(sqlDB)

	played, err := s.AlreadyPlayed(ctx, "p1", "2026-10-19")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "p1", Date: "2026-10-19", Guesses: 7, ElapsedMs: 1000}))
	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "p1", Date: "2026-10-19", Guesses: 2, ElapsedMs: 10}))
	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "p2", Date: "2026-10-19", Guesses: 5, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "p3", Date: "2026-10-19", Guesses: 5, ElapsedMs: 3000}))
	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "p4", Date: "2026-10-18", Guesses: 1, ElapsedMs: 1}))

	played, err = s.AlreadyPlayed(ctx, "p1", "2026-10-19")
	require.NoError(t, err)
	assert.True(t, played)

	rows, err := s.Leaderboard(ctx, "2026-10-19", 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "p3", rows[0].PlayerID)
	assert.Equal(t, "p2", rows[1].PlayerID)
	assert.Equal(t, LBRow{PlayerID: "p1", Guesses: 7, ElapsedMs: 1000}, rows[2])
}
