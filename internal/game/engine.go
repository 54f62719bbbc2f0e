// internal/game/engine.go
//
// Game engine for a single Absurdle session.
// Responsibilities:
//   - Create sessions backed by their own absurdle.Manager.
//   - Validate player input (trim, lowercase, a–z, length) before it reaches
//     the partitioner.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - There is no guess limit; the adversary decides when the game ends.
//   - Dictionary membership of a guess is not checked.

package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/absurdle/internal/absurdle"
	"github.com/robalobadob/absurdle/internal/words"
)

// New constructs a session over dictionary.
// A dictionary without words of the requested length is accepted; the first
// guess then fails with absurdle.ErrEmptyState.
func New(dictionary []string, opts Options) (*Game, error) {
	if opts.Mode == "" {
		opts.Mode = ModeNormal
	}
	mgr, err := absurdle.New(dictionary, opts.Length)
	if err != nil {
		return nil, err
	}

	switch opts.Mode {
	case ModeNormal:
		opts.Target = ""
	case ModeChallenge:
		opts.Target = words.Normalize(opts.Target)
		if !mgr.Contains(opts.Target) {
			return nil, fmt.Errorf("%w: %q is not a %d-letter candidate", ErrInvalidTarget, opts.Target, opts.Length)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, opts.Mode)
	}

	return &Game{
		ID:      uuid.NewString(),
		Mode:    opts.Mode,
		Length:  opts.Length,
		Target:  opts.Target,
		Started: time.Now().UTC(),
		mgr:     mgr,
	}, nil
}

// ApplyGuess validates and records a guess, mutating the session.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be a–z only (after trim + lowercase) and exactly g.Length letters.
//
// State transitions:
//   - normal:    all-correct pattern → won.
//   - challenge: target no longer a candidate → lost;
//     all-correct pattern (so guess == target) → won.
func (g *Game) ApplyGuess(guess string) (Turn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return Turn{}, ErrFinished
	}
	guess = words.Normalize(guess)
	if !words.IsAlpha(guess) {
		return Turn{}, fmt.Errorf("%w: %q must be letters a-z", ErrInvalidGuess, guess)
	}

	pattern, err := g.mgr.Record(guess)
	if err != nil {
		if errors.Is(err, absurdle.ErrLengthMismatch) {
			return Turn{}, fmt.Errorf("%w: %w", ErrInvalidGuess, err)
		}
		return Turn{}, err
	}

	switch {
	case g.Mode == ModeChallenge && !g.mgr.Contains(g.Target):
		g.finished = true
	case pattern.Solved():
		g.finished, g.won = true, true
	}

	turn := Turn{Guess: guess, Pattern: pattern, Remaining: g.mgr.Len(), State: g.state()}
	g.history = append(g.history, turn)
	return turn, nil
}

// State reports the current session state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() State {
	if g.finished {
		if g.won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Guesses returns the number of guesses applied so far.
func (g *Game) Guesses() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.history)
}

// Remaining returns the number of candidates left.
func (g *Game) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mgr.Len()
}

// Snapshot copies the session for serialization. Candidate words are only
// revealed once the game is over.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := Snapshot{
		ID:        g.ID,
		Mode:      g.Mode,
		Length:    g.Length,
		Target:    g.Target,
		State:     g.state(),
		Remaining: g.mgr.Len(),
		History:   append([]Turn{}, g.history...),
	}
	if g.finished {
		s.Candidates = g.mgr.Words()
	}
	return s
}
