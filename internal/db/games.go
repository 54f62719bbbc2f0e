package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GameRow is one row of the games history table.
type GameRow struct {
	ID          string `json:"id"`
	UserID      string `json:"-"`
	AnonymousID string `json:"-"`
	Mode        string `json:"mode"`
	WordLength  int    `json:"wordLength"`
	Status      string `json:"status"`
	Guesses     int    `json:"guesses"`
	Answer      string `json:"answer,omitempty"`
	StartedAt   string `json:"startedAt"`
	FinishedAt  string `json:"finishedAt,omitempty"`
}

// StartGame records a new session owned by a user or an anonymous cookie.
func (s *Store) StartGame(ctx context.Context, g GameRow) error {
	if g.StartedAt == "" {
		g.StartedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.SQL.ExecContext(ctx,
		`INSERT INTO games (id, user_id, anonymous_id, mode, word_length, status, guesses, started_at)
		 VALUES (?,?,?,?,?,'playing',0,?)`,
		g.ID, nullable(g.UserID), nullable(g.AnonymousID), g.Mode, g.WordLength, g.StartedAt)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// Progress stores the running guess count of an unfinished game.
func (s *Store) Progress(ctx context.Context, id string, guesses int) error {
	_, err := s.SQL.ExecContext(ctx, `UPDATE games SET guesses=? WHERE id=?`, guesses, id)
	return err
}

// FinishGame closes a game row and, for account owners, updates their stats
// in the same transaction. answer is the word the adversary was left with.
func (s *Store) FinishGame(ctx context.Context, id, status string, guesses int, answer string) error {
	tx, err := s.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var userID sql.NullString
	var prev string
	if err := tx.QueryRowContext(ctx, `SELECT user_id, status FROM games WHERE id=?`, id).Scan(&userID, &prev); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if prev != "playing" {
		return nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET status=?, guesses=?, answer=?, finished_at=? WHERE id=?`,
		status, guesses, answer, time.Now().UTC().Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	if userID.Valid {
		if err := bumpStats(ctx, tx, userID.String, status == "won", guesses); err != nil {
			return fmt.Errorf("bump stats: %w", err)
		}
	}
	return tx.Commit()
}

// GamesByUser returns a user's most recent games, newest first.
func (s *Store) GamesByUser(ctx context.Context, userID string, limit int) ([]GameRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.SQL.QueryContext(ctx,
		`SELECT id, mode, word_length, status, guesses, answer, started_at, COALESCE(finished_at,'')
		 FROM games WHERE user_id=? ORDER BY started_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GameRow{}
	for rows.Next() {
		gr := GameRow{UserID: userID}
		if err := rows.Scan(&gr.ID, &gr.Mode, &gr.WordLength, &gr.Status, &gr.Guesses, &gr.Answer, &gr.StartedAt, &gr.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, gr)
	}
	return out, rows.Err()
}

// ClaimAnonGames transfers anonymous games to a user account after login.
func (s *Store) ClaimAnonGames(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.SQL.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
