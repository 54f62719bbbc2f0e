package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/absurdle/internal/absurdle"
)

var eightWords = []string{"hello", "world", "quite", "fancy", "fresh", "panic", "crazy", "buggy"}

func play(t *testing.T, g *Game, guesses ...string) Turn {
	t.Helper()
	var last Turn
	for _, w := range guesses {
		turn, err := g.ApplyGuess(w)
		require.NoError(t, err, w)
		last = turn
	}
	return last
}

func TestNewDefaults(t *testing.T) {
	g, err := New(eightWords, Options{Length: 5})
	require.NoError(t, err)
	assert.Equal(t, ModeNormal, g.Mode)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, 8, g.Remaining())
	assert.Equal(t, StatePlaying, g.State())
}

func TestNewErrors(t *testing.T) {
	_, err := New(eightWords, Options{Length: 0})
	assert.ErrorIs(t, err, absurdle.ErrInvalidConfiguration)

	_, err = New(eightWords, Options{Length: 5, Mode: "speedrun"})
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = New(eightWords, Options{Length: 5, Mode: ModeChallenge, Target: "zebra"})
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestApplyGuessNormalizesInput(t *testing.T) {
	g, err := New(eightWords, Options{Length: 5})
	require.NoError(t, err)

	turn, err := g.ApplyGuess("  HeLLo ")
	require.NoError(t, err)
	assert.Equal(t, "hello", turn.Guess)
	assert.Equal(t, ".....", turn.Pattern.Code())
	assert.Equal(t, 4, turn.Remaining)
	assert.Equal(t, StatePlaying, turn.State)
}

func TestApplyGuessRejectsBadInput(t *testing.T) {
	g, err := New(eightWords, Options{Length: 5})
	require.NoError(t, err)

	_, err = g.ApplyGuess("he11o")
	assert.ErrorIs(t, err, ErrInvalidGuess)

	_, err = g.ApplyGuess("tiger!")
	assert.ErrorIs(t, err, ErrInvalidGuess)

	_, err = g.ApplyGuess("cat")
	assert.ErrorIs(t, err, ErrInvalidGuess)
	assert.ErrorIs(t, err, absurdle.ErrLengthMismatch)

	assert.Equal(t, 0, g.Guesses())
	assert.Equal(t, 8, g.Remaining())
}

func TestApplyGuessEmptyDictionary(t *testing.T) {
	g, err := New([]string{"lion", "frog"}, Options{Length: 3})
	require.NoError(t, err)
	_, err = g.ApplyGuess("cat")
	assert.ErrorIs(t, err, absurdle.ErrEmptyState)
}

func TestNormalWin(t *testing.T) {
	g, err := New(eightWords, Options{Length: 5})
	require.NoError(t, err)

	last := play(t, g, "hello", "world", "fresh", "crazy")
	assert.Equal(t, StatePlaying, last.State)
	assert.Equal(t, 1, last.Remaining)

	last = play(t, g, "buggy")
	assert.Equal(t, StateWon, last.State)
	assert.True(t, last.Pattern.Solved())

	_, err = g.ApplyGuess("buggy")
	assert.ErrorIs(t, err, ErrFinished)

	snap := g.Snapshot()
	assert.Equal(t, StateWon, snap.State)
	assert.Len(t, snap.History, 5)
	assert.Equal(t, []string{"buggy"}, snap.Candidates)
}

func TestChallengeLostWhenTargetEliminated(t *testing.T) {
	g, err := New(eightWords, Options{Length: 5, Mode: ModeChallenge, Target: "PANIC"})
	require.NoError(t, err)
	assert.Equal(t, "panic", g.Target)

	last := play(t, g, "hello", "world", "fresh")
	assert.Equal(t, StatePlaying, last.State)

	// "buggy" (....g) beats "panic" (y.y..) on the tie-break
	last = play(t, g, "crazy")
	assert.Equal(t, StateLost, last.State)
	assert.Equal(t, "....g", last.Pattern.Code())
}

func TestChallengeWon(t *testing.T) {
	g, err := New(eightWords, Options{Length: 5, Mode: ModeChallenge, Target: "buggy"})
	require.NoError(t, err)

	last := play(t, g, "hello", "world", "fresh", "crazy")
	assert.Equal(t, StatePlaying, last.State)

	last = play(t, g, "buggy")
	assert.Equal(t, StateWon, last.State)
}

func TestSnapshotHidesCandidatesWhilePlaying(t *testing.T) {
	g, err := New(eightWords, Options{Length: 5})
	require.NoError(t, err)
	snap := g.Snapshot()
	assert.Empty(t, snap.Candidates)
	assert.NotNil(t, snap.History)
}

func TestConcurrentGuessesAreSerialized(t *testing.T) {
	g, err := New(eightWords, Options{Length: 5})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = g.ApplyGuess("zzzzz")
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, g.Guesses())
	assert.Equal(t, 8, g.Remaining())
}
