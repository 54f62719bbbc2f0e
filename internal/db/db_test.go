package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/absurdle/assets"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, Migrate(sqlDB, assets.Migrations()))
	return NewStore(sqlDB)
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTest(t)
	require.NoError(t, Migrate(s.SQL, assets.Migrations()))

	var n int
	require.NoError(t, s.SQL.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrateOrderAndFailure(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	fsys := fstest.MapFS{
		"002_more.sql": {Data: []byte(`INSERT INTO t(v) VALUES ('two');`)},
		"001_t.sql":    {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"README.md":    {Data: []byte(`ignored`)},
	}
	require.NoError(t, Migrate(sqlDB, fsys))
	var v string
	require.NoError(t, sqlDB.QueryRow(`SELECT v FROM t`).Scan(&v))
	assert.Equal(t, "two", v)

	bad := fstest.MapFS{"003_bad.sql": {Data: []byte(`NOT SQL;`)}}
	assert.Error(t, Migrate(sqlDB, bad))
	var n int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM _migrations WHERE name='003_bad.sql'`).Scan(&n))
	assert.Zero(t, n)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	u, err := s.CreateUser(ctx, "Player_1", "hash")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "player_1", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := s.UserByUsername(ctx, "PLAYER_1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, u.CreatedAt, got.CreatedAt)

	_, err = s.UserByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGameHistoryAndStats(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	u, err := s.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	require.NoError(t, s.StartGame(ctx, GameRow{ID: "g1", UserID: u.ID, Mode: "normal", WordLength: 5, StartedAt: "2026-01-01T00:00:00Z"}))
	require.NoError(t, s.StartGame(ctx, GameRow{ID: "g2", UserID: u.ID, Mode: "challenge", WordLength: 5, StartedAt: "2026-01-02T00:00:00Z"}))
	require.NoError(t, s.Progress(ctx, "g1", 3))

	require.NoError(t, s.FinishGame(ctx, "g1", "won", 6, "crane"))
	require.NoError(t, s.FinishGame(ctx, "g1", "won", 6, "crane"), "second finish is a no-op")
	require.NoError(t, s.FinishGame(ctx, "g2", "lost", 4, "buggy"))
	assert.ErrorIs(t, s.FinishGame(ctx, "missing", "won", 1, "x"), ErrNotFound)

	got, err := s.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.GamesPlayed)
	assert.Equal(t, 1, got.Wins)
	assert.Equal(t, 0, got.Streak)
	assert.Equal(t, 10, got.TotalGuesses)

	games, err := s.GamesByUser(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "g2", games[0].ID)
	assert.Equal(t, "lost", games[0].Status)
	assert.Equal(t, "crane", games[1].Answer)
	assert.NotEmpty(t, games[1].FinishedAt)
}

func TestClaimAnonGames(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	u, err := s.CreateUser(ctx, "bob", "hash")
	require.NoError(t, err)

	require.NoError(t, s.StartGame(ctx, GameRow{ID: "a1", AnonymousID: "anon", Mode: "normal", WordLength: 5}))
	require.NoError(t, s.ClaimAnonGames(ctx, "anon", u.ID))
	require.NoError(t, s.ClaimAnonGames(ctx, "", u.ID))

	var owner sql.NullString
	require.NoError(t, s.SQL.QueryRow(`SELECT user_id FROM games WHERE id='a1'`).Scan(&owner))
	assert.Equal(t, u.ID, owner.String)
}
