package repository

import (
	"context"
	"fmt"

	"college-crush-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository handles database operations for chat messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (id, match_id, sender_id, content, kind, created_at, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		message.ID, message.MatchID, message.SenderID, message.Content,
		message.Kind, message.CreatedAt, message.IsRead,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListByMatch retrieves all messages for a match, oldest first
func (r *MessageRepository) ListByMatch(ctx context.Context, matchID string) ([]*models.Message, error) {
	query := `
		SELECT id, match_id, sender_id, content, kind, created_at, is_read
		FROM messages
		WHERE match_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var message models.Message
		err := rows.Scan(
			&message.ID, &message.MatchID, &message.SenderID, &message.Content,
			&message.Kind, &message.CreatedAt, &message.IsRead,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// MarkRead flips is_read on every message in the match not sent by readerID
func (r *MessageRepository) MarkRead(ctx context.Context, matchID, readerID string) error {
	query := `
		UPDATE messages
		SET is_read = TRUE
		WHERE match_id = $1 AND sender_id <> $2 AND is_read = FALSE
	`
	_, err := r.db.Exec(ctx, query, matchID, readerID)
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// CountUnreadForUser counts unread messages addressed to userID across all
// of their matches
func (r *MessageRepository) CountUnreadForUser(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM messages m
		JOIN matches mt ON mt.id = m.match_id
		WHERE (mt.user_a_id = $1 OR mt.user_b_id = $1)
			AND m.sender_id <> $1
			AND m.is_read = FALSE
	`
	var count int
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
