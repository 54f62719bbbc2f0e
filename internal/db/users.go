package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username taken")
)

// User matches the users table shape.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	GamesPlayed  int       `json:"gamesPlayed"`
	Wins         int       `json:"wins"`
	Streak       int       `json:"streak"`
	TotalGuesses int       `json:"totalGuesses"`
}

// Store wraps the SQL handle for account and history queries.
type Store struct{ SQL *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{SQL: db} }

// CreateUser inserts a user with an already-hashed password.
// Usernames are unique case-insensitively.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	_, err := s.SQL.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

const userCols = `id, username, password_hash, created_at, games_played, wins, streak, total_guesses`

func (s *Store) UserByID(ctx context.Context, id string) (*User, error) {
	return scanUser(s.SQL.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id=?`, id))
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(s.SQL.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE username=?`, username))
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.GamesPlayed, &u.Wins, &u.Streak, &u.TotalGuesses)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// bumpStats increments games played and total guesses; a win extends the
// streak, a loss resets it.
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool, guesses int) error {
	var gp, wins, streak, total int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak, total_guesses FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak, &total); err != nil {
		return err
	}
	gp++
	total += guesses
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET games_played=?, wins=?, streak=?, total_guesses=? WHERE id=?`,
		gp, wins, streak, total, userID)
	return err
}
