// internal/auth/auth.go
//
// Account helpers for the Absurdle server.
// Responsibilities:
//   - bcrypt password hashing and verification.
//   - Signup validation (username/password rules).
//   - HS256 JWT signing and parsing (subject = user ID).
//   - Request user context helpers.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// User is placed into the request context by the middleware.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ctxUserKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, u)
}

// UserFrom returns the authenticated user, or nil for guests.
func UserFrom(ctx context.Context) *User {
	u, _ := ctx.Value(ctxUserKey{}).(*User)
	return u
}

// HashPassword returns a bcrypt hash (default cost).
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword is a bcrypt verifier.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// NormalizeUsername trims whitespace.
func NormalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

var ErrInvalidSignup = errors.New("invalid signup")

// ValidateSignup enforces basic username/password rules.
func ValidateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return fmt.Errorf("%w: username must be 3-24 chars", ErrInvalidSignup)
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return fmt.Errorf("%w: username: letters, numbers, underscore only", ErrInvalidSignup)
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return fmt.Errorf("%w: password must be 8-100 chars", ErrInvalidSignup)
	}
	return nil
}

// Signer issues and verifies HS256 tokens.
type Signer struct {
	Secret []byte
	TTL    time.Duration
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sign creates a token for the user and returns it with its expiry.
func (s Signer) Sign(id, username string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.TTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(s.Secret)
	return ss, exp, err
}

// Parse verifies a token and returns the user it names.
func (s Signer) Parse(token string) (*User, error) {
	var c claims
	t, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !t.Valid || c.Subject == "" || c.Username == "" {
		return nil, errors.New("invalid token")
	}
	return &User{ID: c.Subject, Username: c.Username}, nil
}
