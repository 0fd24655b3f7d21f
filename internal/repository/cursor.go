package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"college-crush-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// cursorTTL bounds how long a feed snapshot stays valid. A new session
// after expiry rebuilds the candidate list from scratch.
const cursorTTL = 24 * time.Hour

// CursorRepository stores per-user feed cursors in redis
type CursorRepository struct {
	client *redis.Client
}

// NewCursorRepository creates a new cursor repository
func NewCursorRepository(client *redis.Client) *CursorRepository {
	return &CursorRepository{client: client}
}

func cursorKey(userID string) string {
	return "feed:cursor:" + userID
}

// Get retrieves the feed cursor for a user
func (r *CursorRepository) Get(ctx context.Context, userID string) (*models.FeedCursor, error) {
	data, err := r.client.Get(ctx, cursorKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feed cursor: %w", err)
	}

	var cursor models.FeedCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feed cursor: %w", err)
	}
	return &cursor, nil
}

// Set stores the feed cursor for a user
func (r *CursorRepository) Set(ctx context.Context, userID string, cursor *models.FeedCursor) error {
	data, err := json.Marshal(cursor)
	if err != nil {
		return fmt.Errorf("failed to marshal feed cursor: %w", err)
	}

	if err := r.client.Set(ctx, cursorKey(userID), data, cursorTTL).Err(); err != nil {
		return fmt.Errorf("failed to set feed cursor: %w", err)
	}
	return nil
}
