package services

import (
	"context"
	"errors"

	"college-crush-backend/internal/models"
)

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
	ErrFeedExhausted      = errors.New("feed exhausted")
)

// Storage interfaces consumed by the services. The pgx repositories
// implement them in production; tests substitute in-memory fakes.

// UserStore persists accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePushToken(ctx context.Context, userID string, pushToken *string) error
}

// ProfileStore persists dating profiles
type ProfileStore interface {
	Upsert(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
}

// SwipeStore persists the swipe ledger
type SwipeStore interface {
	Upsert(ctx context.Context, swipe *models.Swipe) error
	Get(ctx context.Context, actorID, targetID string) (*models.Swipe, error)
	ListTargetsByActor(ctx context.Context, actorID string) ([]string, error)
}

// MatchStore persists matches
type MatchStore interface {
	CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Match, error)
	TouchActivity(ctx context.Context, matchID string) error
	Delete(ctx context.Context, id string) error
}

// MessageStore persists chat messages
type MessageStore interface {
	Create(ctx context.Context, message *models.Message) error
	ListByMatch(ctx context.Context, matchID string) ([]*models.Message, error)
	MarkRead(ctx context.Context, matchID, readerID string) error
	CountUnreadForUser(ctx context.Context, userID string) (int, error)
}

// CursorStore persists per-user feed cursors
type CursorStore interface {
	Get(ctx context.Context, userID string) (*models.FeedCursor, error)
	Set(ctx context.Context, userID string, cursor *models.FeedCursor) error
}

// RealtimeNotifier pushes events to connected clients. Implemented by
// WSHub; delivery failures are logged inside the hub, never surfaced.
type RealtimeNotifier interface {
	IsOnline(userID string) bool
	NotifyMatchCreated(userID string, match *models.Match)
	NotifyMatchDeleted(userID, matchID string)
	NotifyNewMessage(userID string, message *models.Message)
}

// PushSender delivers best-effort push notifications
type PushSender interface {
	Notify(userID, title, body string)
}
