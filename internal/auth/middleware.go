package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Authenticator reads tokens from requests and manages the auth cookie.
type Authenticator struct {
	Signer Signer
	Cookie string // auth cookie name
	Secure bool   // production cookies: Secure + SameSite=None

	// Exists confirms the token's user still exists. Optional.
	Exists func(ctx context.Context, id string) bool
}

// TokenFromRequest extracts a bearer token from the Authorization header or
// the auth cookie.
func (a *Authenticator) TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if c, err := r.Cookie(a.Cookie); err == nil {
		return c.Value
	}
	return ""
}

func (a *Authenticator) userFromRequest(r *http.Request) *User {
	tok := a.TokenFromRequest(r)
	if tok == "" {
		return nil
	}
	u, err := a.Signer.Parse(tok)
	if err != nil {
		log.Debug().Err(err).Msg("rejecting token")
		return nil
	}
	if a.Exists != nil && !a.Exists(r.Context(), u.ID) {
		return nil
	}
	return u
}

// Optional decorates requests with the user when a valid token is present.
// It never rejects; guests pass through.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := a.userFromRequest(r); u != nil {
			r = r.WithContext(WithUser(r.Context(), u))
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects requests without a valid token with 401.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := a.userFromRequest(r)
		if u == nil {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

func (a *Authenticator) sameSite() http.SameSite {
	if a.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// SetCookie writes the auth token cookie.
func (a *Authenticator) SetCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.Cookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.Secure,
		SameSite: a.sameSite(),
		Expires:  exp,
	})
}

// ClearCookie deletes the auth token cookie.
func (a *Authenticator) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.Cookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   a.Secure,
		SameSite: a.sameSite(),
		MaxAge:   -1,
	})
}
