package repository

import (
	"context"
	"errors"
	"fmt"

	"college-crush-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchRepository handles database operations for matches
type MatchRepository struct {
	db *pgxpool.Pool
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

// CreateIfAbsent inserts the match unless one already exists for its pair
// key. Returns true when this call created the row. The conditional insert
// is what keeps two users matching each other concurrently from producing
// two matches.
func (r *MatchRepository) CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error) {
	query := `
		INSERT INTO matches (id, user_a_id, user_b_id, created_at, last_activity_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	result, err := r.db.Exec(ctx, query,
		match.ID, match.UserAID, match.UserBID, match.CreatedAt, match.LastActivityAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create match: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// GetByID retrieves a match by ID
func (r *MatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `
		SELECT id, user_a_id, user_b_id, created_at, last_activity_at
		FROM matches
		WHERE id = $1
	`
	var match models.Match
	err := r.db.QueryRow(ctx, query, id).Scan(
		&match.ID, &match.UserAID, &match.UserBID, &match.CreatedAt, &match.LastActivityAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &match, nil
}

// ListForUser retrieves all matches a user participates in, most recent
// activity first
func (r *MatchRepository) ListForUser(ctx context.Context, userID string) ([]*models.Match, error) {
	query := `
		SELECT id, user_a_id, user_b_id, created_at, last_activity_at
		FROM matches
		WHERE user_a_id = $1 OR user_b_id = $1
		ORDER BY last_activity_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		var match models.Match
		err := rows.Scan(
			&match.ID, &match.UserAID, &match.UserBID, &match.CreatedAt, &match.LastActivityAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, &match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	return matches, nil
}

// TouchActivity bumps last_activity_at, used when a message is appended
func (r *MatchRepository) TouchActivity(ctx context.Context, matchID string) error {
	query := `UPDATE matches SET last_activity_at = now() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, matchID)
	if err != nil {
		return fmt.Errorf("failed to touch match activity: %w", err)
	}
	return nil
}

// Delete deletes a match. Messages cascade via the foreign key.
func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM matches WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
