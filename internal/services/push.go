package services

import (
	"context"
	"fmt"
	"time"

	"college-crush-backend/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// PushService sends best-effort notifications through APNs. Every failure
// is logged and swallowed; nothing here is ever surfaced to the sender or
// retried. With no key configured the service degrades to a no-op so the
// rest of the app keeps working.
type PushService struct {
	users  UserStore
	client *apns2.Client
	topic  string
}

// NewPushService creates a new push service
func NewPushService(users UserStore, cfg config.APNsConfig) (*PushService, error) {
	s := &PushService{users: users, topic: cfg.Topic}

	if cfg.KeyPath == "" {
		log.Warn().Msg("APNs key not configured, push notifications disabled")
		return s, nil
	}

	authKey, err := token.AuthKeyFromFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs auth key: %w", err)
	}

	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	})
	if cfg.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	s.client = client
	return s, nil
}

// Notify sends a notification to a user's registered device. Safe to call
// from a goroutine; errors never escape.
func (s *PushService) Notify(userID, title, body string) {
	if s.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user for push")
		return
	}
	if user.PushToken == nil || *user.PushToken == "" {
		return
	}

	notification := &apns2.Notification{
		DeviceToken: *user.PushToken,
		Topic:       s.topic,
		Payload:     payload.NewPayload().AlertTitle(title).AlertBody(body),
	}

	res, err := s.client.PushWithContext(ctx, notification)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to send push notification")
		return
	}
	if !res.Sent() {
		log.Error().
			Str("user_id", userID).
			Str("reason", res.Reason).
			Msg("Push notification rejected")
	}
}
