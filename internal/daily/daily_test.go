package daily_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/store"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2024, 3, 2, 5, 0, 0, 0, loc)
	assert.Equal(t, "2024-03-01", daily.DateKey(ts))
}

func TestWordIndex_Deterministic(t *testing.T) {
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)

	a := daily.WordIndex(day, "salt", 100)
	assert.Equal(t, a, daily.WordIndex(later, "salt", 100))
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 100)
	assert.Equal(t, 0, daily.WordIndex(day, "salt", 0))
}

func TestWord(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	list := []string{"planet", "rocket", "meadow"}

	idx, w, ok := daily.Word(day, "salt", list)
	require.True(t, ok)
	assert.Equal(t, list[idx], w)

	_, _, ok = daily.Word(day, "salt", nil)
	assert.False(t, ok)
}

func TestStore_ResultsAndLeaderboard(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, store.Migrate(db))

	ctx := context.Background()
	s := daily.NewStore(db)

	played, err := s.AlreadyPlayed(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u1", Date: "2024-03-01", WrongGuesses: 2, ElapsedMs: 900}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u2", Date: "2024-03-01", WrongGuesses: 0, ElapsedMs: 5000}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u3", Date: "2024-03-01", WrongGuesses: 2, ElapsedMs: 400}))
	// Duplicate is ignored.
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u1", Date: "2024-03-01", WrongGuesses: 0, ElapsedMs: 1}))

	played, err = s.AlreadyPlayed(ctx, "u1", "2024-03-01")
	require.NoError(t, err)
	assert.True(t, played)

	top, err := s.Leaderboard(ctx, "2024-03-01", 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"u2", "u3", "u1"}, []string{top[0].UserID, top[1].UserID, top[2].UserID})
	assert.Equal(t, 2, top[2].WrongGuesses)
}
