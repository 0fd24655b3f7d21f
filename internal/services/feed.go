package services

import (
	"context"
	"errors"
	"fmt"

	"college-crush-backend/internal/models"
	"college-crush-backend/internal/repository"
)

// FeedService walks a user through candidate profiles one at a time. The
// candidate list is a snapshot taken when the cursor is first built:
// every profile except the viewer, minus profiles already swiped on at
// build time, filtered by the gender preference rule. Advancing is
// unconditional; a reset rewinds the index on the same snapshot.
type FeedService struct {
	profiles ProfileStore
	swipes   SwipeStore
	cursors  CursorStore
}

// NewFeedService creates a new feed service
func NewFeedService(profiles ProfileStore, swipes SwipeStore, cursors CursorStore) *FeedService {
	return &FeedService{
		profiles: profiles,
		swipes:   swipes,
		cursors:  cursors,
	}
}

// FeedItem is one card in the feed: a candidate profile and how well it
// scores against the viewer.
type FeedItem struct {
	Profile         *models.Profile `json:"profile"`
	MatchPercentage int             `json:"match_percentage"`
}

// Next returns the candidate at the cursor and advances it. Returns
// ErrFeedExhausted once the index has passed the end of the snapshot;
// the only recovery from that state is Reset.
func (s *FeedService) Next(ctx context.Context, userID string) (*FeedItem, error) {
	cursor, err := s.loadOrBuild(ctx, userID)
	if err != nil {
		return nil, err
	}

	for cursor.Index < len(cursor.CandidateIDs) {
		candidateID := cursor.CandidateIDs[cursor.Index]
		cursor.Index++
		if err := s.cursors.Set(ctx, userID, cursor); err != nil {
			return nil, fmt.Errorf("failed to save feed cursor: %w", err)
		}

		profile, err := s.profiles.GetByID(ctx, candidateID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Candidate vanished since the snapshot was taken.
				continue
			}
			return nil, fmt.Errorf("failed to load candidate: %w", err)
		}

		viewer, err := s.profiles.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load viewer profile: %w", err)
		}
		return &FeedItem{
			Profile:         profile,
			MatchPercentage: MatchPercentage(viewer, profile),
		}, nil
	}

	return nil, ErrFeedExhausted
}

// MatchPercentage scores how compatible two profiles are, 0..100: a base
// of 50 plus weights for a shared course, overlapping interests, class
// year proximity and age proximity.
func MatchPercentage(a, b *models.Profile) int {
	score := 50

	if a.Course == b.Course {
		score += 15
	}

	interests := make(map[string]bool, len(a.Interests))
	for _, interest := range a.Interests {
		interests[interest] = true
	}
	for _, interest := range b.Interests {
		if interests[interest] {
			score += 5
		}
	}

	switch diff := abs(a.Year - b.Year); diff {
	case 0:
		score += 10
	case 1:
		score += 5
	}

	switch diff := abs(a.Age - b.Age); {
	case diff <= 2:
		score += 10
	case diff <= 4:
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Reset rewinds the cursor to the start of its snapshot. Swipe history is
// not consulted again, so previously swiped candidates are re-shown.
func (s *FeedService) Reset(ctx context.Context, userID string) error {
	cursor, err := s.loadOrBuild(ctx, userID)
	if err != nil {
		return err
	}
	cursor.Index = 0
	if err := s.cursors.Set(ctx, userID, cursor); err != nil {
		return fmt.Errorf("failed to save feed cursor: %w", err)
	}
	return nil
}

func (s *FeedService) loadOrBuild(ctx context.Context, userID string) (*models.FeedCursor, error) {
	cursor, err := s.cursors.Get(ctx, userID)
	if err == nil {
		return cursor, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load feed cursor: %w", err)
	}

	cursor, err = s.buildSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cursors.Set(ctx, userID, cursor); err != nil {
		return nil, fmt.Errorf("failed to save feed cursor: %w", err)
	}
	return cursor, nil
}

func (s *FeedService) buildSnapshot(ctx context.Context, userID string) (*models.FeedCursor, error) {
	viewer, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load viewer profile: %w", err)
	}

	all, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	swipedTargets, err := s.swipes.ListTargetsByActor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swiped targets: %w", err)
	}
	swiped := make(map[string]bool, len(swipedTargets))
	for _, target := range swipedTargets {
		swiped[target] = true
	}

	wanted := wantedGender(viewer.Gender)

	cursor := &models.FeedCursor{CandidateIDs: []string{}}
	for _, candidate := range all {
		if candidate.ID == userID || swiped[candidate.ID] {
			continue
		}
		if wanted != "" && candidate.Gender != wanted {
			continue
		}
		cursor.CandidateIDs = append(cursor.CandidateIDs, candidate.ID)
	}
	return cursor, nil
}

// wantedGender implements the declared preference rule: male sees female,
// female sees male, anything else sees everyone.
func wantedGender(viewerGender string) string {
	switch viewerGender {
	case models.GenderMale:
		return models.GenderFemale
	case models.GenderFemale:
		return models.GenderMale
	}
	return ""
}
