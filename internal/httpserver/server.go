// internal/httpserver/server.go
//
// HTTP server wiring for the Absurdle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess, GET /game/{id}.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//   - Anonymous session cookie and periodic sweep of abandoned sessions.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Live sessions stay in the in-memory store; SQLite only receives history.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/absurdle/internal/auth"
	"github.com/robalobadob/absurdle/internal/config"
	"github.com/robalobadob/absurdle/internal/daily"
	"github.com/robalobadob/absurdle/internal/db"
	"github.com/robalobadob/absurdle/internal/store"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Config     config.Config
	Sessions   store.Store
	DB         *db.Store
	Dictionary []string
}

// Server bundles router, session store, and DB-backed stores.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	sessions store.Store
	db       *db.Store
	auth     *auth.Authenticator
	dict     []string
	daily    *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	dict := slices.Clone(d.Dictionary)
	slices.Sort(dict)
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      d.Config,
		sessions: d.Sessions,
		db:       d.DB,
		dict:     slices.Compact(dict),
	}
	s.auth = &auth.Authenticator{
		Signer: auth.Signer{Secret: []byte(d.Config.JWTSecret), TTL: d.Config.JWTTTL},
		Cookie: d.Config.CookieName,
		Secure: d.Config.Production,
		Exists: func(ctx context.Context, id string) bool {
			_, err := s.db.UserByID(ctx, id)
			return err == nil
		},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "absurdle-go",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/guess", "GET /game/{id}", "/daily/*", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		byLength := make(map[int]int)
		for _, w := range s.dict {
			byLength[len(w)]++
		}
		writeJSON(w, http.StatusOK, map[string]any{"total": len(s.dict), "byLength": byLength})
	})

	// Game + daily endpoints: optional auth, guests can play
	s.r.Group(func(r chi.Router) {
		r.Use(s.auth.Optional)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}", s.handleGetGame)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// SweepLoop drops sessions older than ttl every interval until ctx is done.
func (s *Server) SweepLoop(ctx context.Context, ttl, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := s.sessions.Sweep(ctx, now.Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("sweep sessions")
				continue
			}
			s.daily.dropBefore(daily.DateKey(now))
			if n > 0 {
				log.Info().Int("removed", n).Msg("swept abandoned sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

const anonCookieName = "absurdle_anon"

// ensureAnonID returns an existing anon cookie or sets a new one.
// Used to associate guest games with a stable identifier.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// playerID returns the authenticated user ID, or the anonymous cookie ID for guests.
func (s *Server) playerID(w http.ResponseWriter, r *http.Request) (id string, isUser bool) {
	if me := auth.UserFrom(r.Context()); me != nil {
		return me.ID, true
	}
	return s.ensureAnonID(w, r), false
}
