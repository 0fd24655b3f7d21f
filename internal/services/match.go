package services

import (
	"context"
	"fmt"

	"college-crush-backend/internal/models"
)

// MatchService handles match listing and deletion
type MatchService struct {
	matches MatchStore
	hub     RealtimeNotifier
}

// NewMatchService creates a new match service
func NewMatchService(matches MatchStore, hub RealtimeNotifier) *MatchService {
	return &MatchService{
		matches: matches,
		hub:     hub,
	}
}

// ListForUser retrieves all matches the user participates in
func (s *MatchService) ListForUser(ctx context.Context, userID string) ([]*models.Match, error) {
	return s.matches.ListForUser(ctx, userID)
}

// GetForUser retrieves a match, enforcing that the caller is a participant
func (s *MatchService) GetForUser(ctx context.Context, matchID, userID string) (*models.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(userID) {
		return nil, ErrForbidden
	}
	return match, nil
}

// Delete removes a match on behalf of a participant. Its messages are
// deleted with it. The former partner is told over the hub, best-effort.
func (s *MatchService) Delete(ctx context.Context, matchID, userID string) error {
	match, err := s.GetForUser(ctx, matchID, userID)
	if err != nil {
		return err
	}

	if err := s.matches.Delete(ctx, matchID); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	if s.hub != nil {
		go s.hub.NotifyMatchDeleted(match.PartnerID(userID), matchID)
	}
	return nil
}
