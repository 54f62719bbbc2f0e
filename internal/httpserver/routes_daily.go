// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start a daily game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's daily game
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// A daily game is a challenge-mode session: everyone gets the same target,
// picked deterministically from date + salt, and has to keep it alive until
// it is the last candidate. Each player can finish once per day (enforced by
// DB + in-memory session). Wins are persisted for the leaderboard.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/absurdle/internal/daily"
	"github.com/robalobadob/absurdle/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by playerID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession links a player's day to a challenge game in the session store.
type dailySession struct {
	GameID    string
	Date      string
	WordIndex int
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	s.daily = &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db.SQL),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.daily.handleNew)
		r.Post("/guess", s.daily.handleGuess)
		r.Get("/leaderboard", s.daily.handleLeaderboard)
	})
}

// today returns today's date key, word index, and target.
func (d *dailyServer) today() (date string, idx int, target string, ok bool) {
	now := time.Now().UTC()
	target, idx, ok = daily.Target(now, d.salt, d.srv.ofLength(d.srv.cfg.WordLength))
	return daily.DateKey(now), idx, target, ok
}

// dropBefore forgets sessions from earlier days.
func (d *dailyServer) dropBefore(date string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, sess := range d.sessions {
		if sess.Date < date {
			delete(d.sessions, k)
		}
	}
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string `json:"gameId,omitempty"`
	Date   string `json:"date"`
	Played bool   `json:"played"`
	Length int    `json:"length,omitempty"`
	Target string `json:"target,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
//   - If the player already has a DB row for today, or finished today's
//     session → Played=true.
//   - Otherwise create/reuse a challenge game and return its ID and target.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	pid, _ := d.srv.playerID(w, r)
	date, idx, target, ok := d.today()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no daily word available")
		return
	}

	if played, err := d.store.AlreadyPlayed(r.Context(), pid, date); err != nil {
		log.Warn().Err(err).Msg("daily already played")
	} else if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := pid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()

	if sess, ok := d.sessions[key]; ok {
		g, err := d.srv.sessions.Get(r.Context(), sess.GameID)
		if err == nil {
			if g.State() != game.StatePlaying {
				writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
				return
			}
			writeJSON(w, http.StatusOK, dailyNewRes{GameID: g.ID, Date: date, Length: g.Length, Target: g.Target})
			return
		}
		// swept; start over
		delete(d.sessions, key)
	}

	g, err := game.New(d.srv.dict, game.Options{
		Length: d.srv.cfg.WordLength,
		Mode:   game.ModeChallenge,
		Target: target,
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	if err := d.srv.sessions.Save(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.sessions[key] = &dailySession{GameID: g.ID, Date: date, WordIndex: idx}

	writeJSON(w, http.StatusOK, dailyNewRes{GameID: g.ID, Date: date, Length: g.Length, Target: g.Target})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Pattern   string     `json:"pattern"`
	Code      string     `json:"code"`
	Remaining int        `json:"remaining"`
	State     game.State `json:"state"`
	Guesses   int        `json:"guesses"`
}

// handleGuess applies a guess to today's daily session and stores the
// result once the target is won.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	pid, _ := d.srv.playerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	date := daily.DateKey(time.Now())
	d.mu.Lock()
	sess, ok := d.sessions[pid+"|"+date]
	d.mu.Unlock()
	if !ok || p.GameID == "" || sess.GameID != p.GameID {
		writeError(w, http.StatusConflict, "no session")
		return
	}
	g, err := d.srv.sessions.Get(r.Context(), sess.GameID)
	if err != nil {
		writeError(w, http.StatusConflict, "no session")
		return
	}

	turn, err := g.ApplyGuess(p.Guess)
	if err != nil {
		writeGameError(w, err)
		return
	}
	guesses := g.Guesses()

	if turn.State == game.StateWon {
		err := d.store.InsertResult(r.Context(), daily.Result{
			PlayerID:  pid,
			Date:      sess.Date,
			WordIndex: sess.WordIndex,
			Guesses:   guesses,
			ElapsedMs: int(time.Since(g.Started).Milliseconds()),
		})
		if err != nil {
			log.Warn().Err(err).Str("player", pid).Msg("insert daily result")
		}
	}

	writeJSON(w, http.StatusOK, dailyGuessRes{
		Pattern:   turn.Pattern.String(),
		Code:      turn.Pattern.Code(),
		Remaining: turn.Remaining,
		State:     turn.State,
		Guesses:   guesses,
	})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
