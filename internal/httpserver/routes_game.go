// internal/httpserver/routes_game.go
//
// Free-play Absurdle endpoints:
//   - POST /game/new   → create a session (normal or challenge mode)
//   - POST /game/guess → apply a guess, report the adversary's pattern
//   - GET  /game/{id}  → snapshot of a session
//
// Live sessions are kept in the session store; a history row per game is
// written to SQLite (best effort) so signed-in players get stats.

package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/absurdle/internal/absurdle"
	"github.com/robalobadob/absurdle/internal/db"
	"github.com/robalobadob/absurdle/internal/game"
	"github.com/robalobadob/absurdle/internal/store"
)

type newGameReq struct {
	Length int       `json:"length"` // 0 → configured default
	Mode   game.Mode `json:"mode"`   // "normal" (default) | "challenge"
	Target string    `json:"target"` // challenge only; random when empty
}

type newGameRes struct {
	GameID     string    `json:"gameId"`
	Length     int       `json:"length"`
	Mode       game.Mode `json:"mode"`
	Target     string    `json:"target,omitempty"`
	Candidates int       `json:"candidates"`
}

// handleNewGame creates a session over the loaded dictionary and records its
// owner (user or anonymous cookie) in the games table.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	if req.Length == 0 {
		req.Length = s.cfg.WordLength
	}
	if req.Mode == game.ModeChallenge && req.Target == "" {
		pool := s.ofLength(req.Length)
		if len(pool) > 0 {
			req.Target = pool[rand.Intn(len(pool))]
		}
	}

	g, err := game.New(s.dict, game.Options{Length: req.Length, Mode: req.Mode, Target: req.Target})
	if err != nil {
		writeGameError(w, err)
		return
	}
	if g.Remaining() == 0 {
		writeError(w, http.StatusConflict, "no words of that length")
		return
	}
	if err := s.sessions.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	row := db.GameRow{ID: g.ID, Mode: string(g.Mode), WordLength: g.Length}
	if id, isUser := s.playerID(w, r); isUser {
		row.UserID = id
	} else {
		row.AnonymousID = id
	}
	if err := s.db.StartGame(r.Context(), row); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}

	writeJSON(w, http.StatusOK, newGameRes{
		GameID:     g.ID,
		Length:     g.Length,
		Mode:       g.Mode,
		Target:     g.Target,
		Candidates: g.Remaining(),
	})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Guess     string           `json:"guess"`
	Pattern   string           `json:"pattern"` // glyphs, e.g. ⬜🟨🟩⬜⬜
	Code      string           `json:"code"`    // ASCII, e.g. .yg..
	Tiles     absurdle.Pattern `json:"tiles"`
	Remaining int              `json:"remaining"`
	State     game.State       `json:"state"`
	Guesses   int              `json:"guesses"`
	Answer    string           `json:"answer,omitempty"` // set once won
}

// handleGuess applies a guess and persists progress. Finished games update
// the history row and, for accounts, the user's stats.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.sessions.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	turn, err := g.ApplyGuess(req.Guess)
	if err != nil {
		writeGameError(w, err)
		return
	}
	guesses := g.Guesses()
	s.recordProgress(r, g, turn, guesses)

	res := guessRes{
		Guess:     turn.Guess,
		Pattern:   turn.Pattern.String(),
		Code:      turn.Pattern.Code(),
		Tiles:     turn.Pattern,
		Remaining: turn.Remaining,
		State:     turn.State,
		Guesses:   guesses,
	}
	if turn.State == game.StateWon {
		res.Answer = turn.Guess
	}
	writeJSON(w, http.StatusOK, res)
}

// recordProgress mirrors a turn into the games table. Failures are logged
// and never surface to the player.
func (s *Server) recordProgress(r *http.Request, g *game.Game, turn game.Turn, guesses int) {
	ctx := r.Context()
	var err error
	if turn.State == game.StatePlaying {
		err = s.db.Progress(ctx, g.ID, guesses)
	} else {
		answer := ""
		if turn.State == game.StateWon {
			answer = turn.Guess
		}
		err = s.db.FinishGame(ctx, g.ID, string(turn.State), guesses, answer)
	}
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("record progress")
	}
}

// handleGetGame returns a snapshot of a session.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// writeGameError maps engine errors onto HTTP statuses.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidGuess),
		errors.Is(err, game.ErrInvalidMode),
		errors.Is(err, game.ErrInvalidTarget),
		errors.Is(err, absurdle.ErrInvalidConfiguration):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrFinished),
		errors.Is(err, absurdle.ErrEmptyState):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		log.Error().Err(err).Msg("game error")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}

// ofLength returns the dictionary words of length n, sorted.
func (s *Server) ofLength(n int) []string {
	var out []string
	for _, w := range s.dict {
		if len(w) == n {
			out = append(out, w)
		}
	}
	return out
}
