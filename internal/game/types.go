// internal/game/types.go
//
// Core type definitions for an Absurdle game session.
// Defines:
//   - Mode: normal or challenge play.
//   - State: playing / won / lost.
//   - Turn: one applied guess and the adversary's answer.
//   - Game: state for a single in-progress or finished session.

package game

import (
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/absurdle/internal/absurdle"
)

// Mode selects the win condition of a session.
//   - "normal":    won when the adversary is forced to report all-correct.
//   - "challenge": a target word is fixed; it must survive every guess and
//     the game is won by guessing it once it is the only candidate.
type Mode string

const (
	ModeNormal    Mode = "normal"
	ModeChallenge Mode = "challenge"
)

// State is the coarse session state reported to clients.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

var (
	ErrFinished      = errors.New("game finished")
	ErrInvalidGuess  = errors.New("invalid guess")
	ErrInvalidTarget = errors.New("invalid challenge target")
	ErrInvalidMode   = errors.New("invalid mode")
)

// Options configures a new session.
type Options struct {
	Length int    // letters per word
	Mode   Mode   // defaults to ModeNormal
	Target string // challenge target; ignored in normal mode
}

// Turn records one guess.
type Turn struct {
	Guess     string           `json:"guess"`
	Pattern   absurdle.Pattern `json:"tiles"`
	Remaining int              `json:"remaining"`
	State     State            `json:"state"`
}

// Game holds the state of a single Absurdle session.
// All methods are safe for concurrent use; the embedded Manager is only
// touched with mu held.
type Game struct {
	ID      string    // Unique session identifier (UUID).
	Mode    Mode      // Win condition.
	Length  int       // Letters per word.
	Target  string    // Challenge target (empty in normal mode).
	Started time.Time // Creation time (UTC).

	mu       sync.Mutex
	mgr      *absurdle.Manager
	history  []Turn
	finished bool
	won      bool
}

// Snapshot is a point-in-time copy of a Game, safe to serialize.
type Snapshot struct {
	ID         string   `json:"gameId"`
	Mode       Mode     `json:"mode"`
	Length     int      `json:"length"`
	Target     string   `json:"target,omitempty"` // challenge mode only
	State      State    `json:"state"`
	Remaining  int      `json:"remaining"`
	History    []Turn   `json:"history"`
	Candidates []string `json:"candidates,omitempty"` // only once finished
}
