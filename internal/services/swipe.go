package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"college-crush-backend/internal/models"
	"college-crush-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// SwipeService records swipes and runs match detection. The match policy
// is reciprocal: a like or super-like only produces a match when the
// target's current action toward the actor is itself a like or super-like.
type SwipeService struct {
	swipes   SwipeStore
	matches  MatchStore
	profiles ProfileStore
	hub      RealtimeNotifier
	push     PushSender
}

// NewSwipeService creates a new swipe service
func NewSwipeService(
	swipes SwipeStore,
	matches MatchStore,
	profiles ProfileStore,
	hub RealtimeNotifier,
	push PushSender,
) *SwipeService {
	return &SwipeService{
		swipes:   swipes,
		matches:  matches,
		profiles: profiles,
		hub:      hub,
		push:     push,
	}
}

// SwipeResult reports whether the swipe produced a new match
type SwipeResult struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"match_id,omitempty"`
}

// PairKey derives the match identifier from the two user IDs. Sorting
// before joining guarantees the same identifier regardless of which side
// triggers creation.
func PairKey(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + "_" + userB
}

// Swipe idempotently sets the actor's current action for the target,
// replacing any prior action for the pair, then evaluates for a match.
// Recording never fails because of matching; storage errors propagate to
// the caller unretried.
func (s *SwipeService) Swipe(ctx context.Context, actorID, targetID string, action models.SwipeAction) (*SwipeResult, error) {
	if actorID == targetID {
		return nil, fmt.Errorf("%w: cannot swipe on yourself", ErrValidation)
	}
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}
	if _, err := s.profiles.GetByID(ctx, targetID); err != nil {
		return nil, fmt.Errorf("failed to load target profile: %w", err)
	}

	swipe := &models.Swipe{
		ActorID:   actorID,
		TargetID:  targetID,
		Action:    action,
		CreatedAt: time.Now(),
	}
	if err := s.swipes.Upsert(ctx, swipe); err != nil {
		return nil, fmt.Errorf("failed to record swipe: %w", err)
	}

	return s.evaluateForMatch(ctx, actorID, targetID, action)
}

// evaluateForMatch decides whether the swipe promotes the pair to a match.
// Creating a match never removes or alters swipe records, and evaluating
// an already-matched pair again never creates a second match.
func (s *SwipeService) evaluateForMatch(ctx context.Context, actorID, targetID string, action models.SwipeAction) (*SwipeResult, error) {
	if !action.Positive() {
		return &SwipeResult{}, nil
	}

	reciprocal, err := s.swipes.Get(ctx, targetID, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// One-sided like: no match yet, just let the target know.
			go s.notifyLiked(targetID)
			return &SwipeResult{}, nil
		}
		return nil, fmt.Errorf("failed to look up reciprocal swipe: %w", err)
	}
	if !reciprocal.Action.Positive() {
		go s.notifyLiked(targetID)
		return &SwipeResult{}, nil
	}

	now := time.Now()
	match := &models.Match{
		ID:             PairKey(actorID, targetID),
		UserAID:        actorID,
		UserBID:        targetID,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	created, err := s.matches.CreateIfAbsent(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	if !created {
		return &SwipeResult{}, nil
	}

	go s.notifyMatched(actorID, targetID, match)

	return &SwipeResult{Matched: true, MatchID: match.ID}, nil
}

// notifyLiked tells the target somebody liked them. Best-effort only.
func (s *SwipeService) notifyLiked(targetID string) {
	if s.push != nil {
		s.push.Notify(targetID, "College Crush", "Someone liked your profile!")
	}
}

// notifyMatched fans the new match out to both sides after the
// authoritative write has committed. Failures are swallowed.
func (s *SwipeService) notifyMatched(actorID, targetID string, match *models.Match) {
	for _, userID := range []string{actorID, targetID} {
		if s.hub != nil {
			s.hub.NotifyMatchCreated(userID, match)
		}
		if s.push != nil {
			other := match.PartnerID(userID)
			body := "It's a match! Say hi."
			if name, err := s.partnerName(other); err == nil {
				body = fmt.Sprintf("It's a match with %s! Say hi.", name)
			}
			s.push.Notify(userID, "College Crush", body)
		}
	}
	log.Info().Str("match_id", match.ID).Msg("Match created")
}

func (s *SwipeService) partnerName(userID string) (string, error) {
	profile, err := s.profiles.GetByID(context.Background(), userID)
	if err != nil {
		return "", err
	}
	return profile.Name, nil
}
