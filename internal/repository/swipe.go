package repository

import (
	"context"
	"errors"
	"fmt"

	"college-crush-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SwipeRepository handles database operations for the swipe ledger.
// The (actor_id, target_id) composite primary key gives the single
// current-row-per-pair guarantee.
type SwipeRepository struct {
	db *pgxpool.Pool
}

// NewSwipeRepository creates a new swipe repository
func NewSwipeRepository(db *pgxpool.Pool) *SwipeRepository {
	return &SwipeRepository{db: db}
}

// Upsert sets the current action for (actor, target), replacing any prior one
func (r *SwipeRepository) Upsert(ctx context.Context, swipe *models.Swipe) error {
	query := `
		INSERT INTO swipes (actor_id, target_id, action, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (actor_id, target_id) DO UPDATE SET
			action = EXCLUDED.action,
			created_at = EXCLUDED.created_at
	`
	_, err := r.db.Exec(ctx, query,
		swipe.ActorID, swipe.TargetID, swipe.Action, swipe.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert swipe: %w", err)
	}
	return nil
}

// Get retrieves the current swipe of actor toward target
func (r *SwipeRepository) Get(ctx context.Context, actorID, targetID string) (*models.Swipe, error) {
	query := `
		SELECT actor_id, target_id, action, created_at
		FROM swipes
		WHERE actor_id = $1 AND target_id = $2
	`
	var swipe models.Swipe
	err := r.db.QueryRow(ctx, query, actorID, targetID).Scan(
		&swipe.ActorID, &swipe.TargetID, &swipe.Action, &swipe.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get swipe: %w", err)
	}
	return &swipe, nil
}

// ListTargetsByActor returns the IDs of every profile the actor has swiped on
func (r *SwipeRepository) ListTargetsByActor(ctx context.Context, actorID string) ([]string, error) {
	query := `SELECT target_id FROM swipes WHERE actor_id = $1`
	rows, err := r.db.Query(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swiped targets: %w", err)
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, fmt.Errorf("failed to scan swipe target: %w", err)
		}
		targets = append(targets, target)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swipe targets: %w", err)
	}

	return targets, nil
}
