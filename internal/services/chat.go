package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"college-crush-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ChatService handles the per-match conversation: appending messages,
// listing them in order and flipping read flags. Fan-out to the other
// participant (WebSocket when online, push otherwise) happens after the
// message is persisted and never blocks or fails the append.
type ChatService struct {
	messages MessageStore
	matches  MatchStore
	hub      RealtimeNotifier
	push     PushSender
}

// NewChatService creates a new chat service
func NewChatService(messages MessageStore, matches MatchStore, hub RealtimeNotifier, push PushSender) *ChatService {
	return &ChatService{
		messages: messages,
		matches:  matches,
		hub:      hub,
		push:     push,
	}
}

// AppendMessage persists a message and returns it for optimistic UI
// insertion
func (s *ChatService) AppendMessage(ctx context.Context, matchID, senderID, content string, kind models.MessageKind) (*models.Message, error) {
	if kind == "" {
		kind = models.MessageText
	}
	if kind != models.MessageText && kind != models.MessageImage {
		return nil, fmt.Errorf("%w: unknown message kind %q", ErrValidation, kind)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidation)
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(senderID) {
		return nil, ErrForbidden
	}

	message := &models.Message{
		ID:        uuid.New().String(),
		MatchID:   matchID,
		SenderID:  senderID,
		Content:   content,
		Kind:      kind,
		CreatedAt: time.Now(),
		IsRead:    false,
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := s.matches.TouchActivity(ctx, matchID); err != nil {
		log.Error().Err(err).Str("match_id", matchID).Msg("Failed to bump match activity")
	}

	go s.deliver(match.PartnerID(senderID), message)

	return message, nil
}

// ListMessages returns all messages for a match, oldest first
func (s *ChatService) ListMessages(ctx context.Context, matchID, readerID string) ([]*models.Message, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(readerID) {
		return nil, ErrForbidden
	}
	return s.messages.ListByMatch(ctx, matchID)
}

// MarkRead flips the read flag on every message in the match not sent
// by the reader
func (s *ChatService) MarkRead(ctx context.Context, matchID, readerID string) error {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasParticipant(readerID) {
		return ErrForbidden
	}
	return s.messages.MarkRead(ctx, matchID, readerID)
}

// UnreadCount counts unread messages addressed to the user across all of
// their matches
func (s *ChatService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.messages.CountUnreadForUser(ctx, userID)
}

// deliver fans a persisted message out to the recipient. WebSocket when
// connected, push otherwise. Failures stay here.
func (s *ChatService) deliver(recipientID string, message *models.Message) {
	if s.hub != nil && s.hub.IsOnline(recipientID) {
		s.hub.NotifyNewMessage(recipientID, message)
		return
	}
	if s.push != nil {
		body := message.Content
		if message.Kind == models.MessageImage {
			body = "Sent you a photo"
		}
		s.push.Notify(recipientID, "New message", body)
	}
}
