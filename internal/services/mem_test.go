package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"college-crush-backend/internal/models"
	"college-crush-backend/internal/repository"
)

// memDB is an in-memory stand-in for the pgx repositories and the redis
// cursor store, implementing every store interface the services consume.
type memDB struct {
	mu       sync.Mutex
	users    map[string]*models.User
	profiles map[string]*models.Profile
	swipes   map[string]*models.Swipe
	matches  map[string]*models.Match
	messages []*models.Message
	cursors  map[string]models.FeedCursor
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[string]*models.User),
		profiles: make(map[string]*models.Profile),
		swipes:   make(map[string]*models.Swipe),
		matches:  make(map[string]*models.Match),
		cursors:  make(map[string]models.FeedCursor),
	}
}

func swipeKey(actorID, targetID string) string {
	return actorID + "|" + targetID
}

// UserStore

func (db *memDB) Create(ctx context.Context, user *models.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	u := *user
	db.users[user.ID] = &u
	return nil
}

func (db *memDB) GetByID(ctx context.Context, id string) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	user, ok := db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (db *memDB) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, user := range db.users {
		if strings.EqualFold(user.Email, email) {
			u := *user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (db *memDB) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := db.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (db *memDB) UpdatePushToken(ctx context.Context, userID string, pushToken *string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if user, ok := db.users[userID]; ok {
		user.PushToken = pushToken
	}
	return nil
}

// ProfileStore

func (db *memDB) Upsert(ctx context.Context, profile *models.Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	p := *profile
	if existing, ok := db.profiles[profile.ID]; ok {
		// created_at is immutable once the row exists.
		p.CreatedAt = existing.CreatedAt
	}
	db.profiles[profile.ID] = &p
	return nil
}

func (db *memDB) profileByID(id string) (*models.Profile, error) {
	profile, ok := db.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := *profile
	return &p, nil
}

func (db *memDB) List(ctx context.Context) ([]*models.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	profiles := make([]*models.Profile, 0, len(db.profiles))
	for _, profile := range db.profiles {
		p := *profile
		profiles = append(profiles, &p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if !profiles[i].CreatedAt.Equal(profiles[j].CreatedAt) {
			return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
		}
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

// The remaining stores are thin adapters over memDB so their Upsert and
// GetByID methods don't collide with the user store's.

type memProfileStore struct{ db *memDB }

func (s memProfileStore) Upsert(ctx context.Context, profile *models.Profile) error {
	return s.db.Upsert(ctx, profile)
}

func (s memProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.profileByID(id)
}

func (s memProfileStore) List(ctx context.Context) ([]*models.Profile, error) {
	return s.db.List(ctx)
}

type memSwipeStore struct{ db *memDB }

func (s memSwipeStore) Upsert(ctx context.Context, swipe *models.Swipe) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	sw := *swipe
	s.db.swipes[swipeKey(swipe.ActorID, swipe.TargetID)] = &sw
	return nil
}

func (s memSwipeStore) Get(ctx context.Context, actorID, targetID string) (*models.Swipe, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	swipe, ok := s.db.swipes[swipeKey(actorID, targetID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	sw := *swipe
	return &sw, nil
}

func (s memSwipeStore) ListTargetsByActor(ctx context.Context, actorID string) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var targets []string
	for _, swipe := range s.db.swipes {
		if swipe.ActorID == actorID {
			targets = append(targets, swipe.TargetID)
		}
	}
	return targets, nil
}

type memMatchStore struct{ db *memDB }

func (s memMatchStore) CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.matches[match.ID]; ok {
		return false, nil
	}
	m := *match
	s.db.matches[match.ID] = &m
	return true, nil
}

func (s memMatchStore) GetByID(ctx context.Context, id string) (*models.Match, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	match, ok := s.db.matches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m := *match
	return &m, nil
}

func (s memMatchStore) ListForUser(ctx context.Context, userID string) ([]*models.Match, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var matches []*models.Match
	for _, match := range s.db.matches {
		if match.HasParticipant(userID) {
			m := *match
			matches = append(matches, &m)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].LastActivityAt.After(matches[j].LastActivityAt)
	})
	return matches, nil
}

func (s memMatchStore) TouchActivity(ctx context.Context, matchID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if match, ok := s.db.matches[matchID]; ok {
		now := time.Now()
		if !now.After(match.LastActivityAt) {
			now = match.LastActivityAt.Add(time.Nanosecond)
		}
		match.LastActivityAt = now
	}
	return nil
}

func (s memMatchStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.matches[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.db.matches, id)
	// Mirror the ON DELETE CASCADE on messages.
	kept := s.db.messages[:0]
	for _, message := range s.db.messages {
		if message.MatchID != id {
			kept = append(kept, message)
		}
	}
	s.db.messages = kept
	return nil
}

type memMessageStore struct{ db *memDB }

func (s memMessageStore) Create(ctx context.Context, message *models.Message) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m := *message
	s.db.messages = append(s.db.messages, &m)
	return nil
}

func (s memMessageStore) ListByMatch(ctx context.Context, matchID string) ([]*models.Message, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var messages []*models.Message
	for _, message := range s.db.messages {
		if message.MatchID == matchID {
			m := *message
			messages = append(messages, &m)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (s memMessageStore) MarkRead(ctx context.Context, matchID, readerID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, message := range s.db.messages {
		if message.MatchID == matchID && message.SenderID != readerID {
			message.IsRead = true
		}
	}
	return nil
}

func (s memMessageStore) CountUnreadForUser(ctx context.Context, userID string) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	count := 0
	for _, message := range s.db.messages {
		match, ok := s.db.matches[message.MatchID]
		if !ok || !match.HasParticipant(userID) {
			continue
		}
		if message.SenderID != userID && !message.IsRead {
			count++
		}
	}
	return count, nil
}

type memCursorStore struct{ db *memDB }

func (s memCursorStore) Get(ctx context.Context, userID string) (*models.FeedCursor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	cursor, ok := s.db.cursors[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := models.FeedCursor{
		CandidateIDs: append([]string(nil), cursor.CandidateIDs...),
		Index:        cursor.Index,
	}
	return &c, nil
}

func (s memCursorStore) Set(ctx context.Context, userID string, cursor *models.FeedCursor) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.cursors[userID] = models.FeedCursor{
		CandidateIDs: append([]string(nil), cursor.CandidateIDs...),
		Index:        cursor.Index,
	}
	return nil
}

// recordingPush captures push notifications on a channel so tests can
// wait for the fire-and-forget goroutines.
type recordingPush struct {
	sent chan string
}

func newRecordingPush() *recordingPush {
	return &recordingPush{sent: make(chan string, 16)}
}

func (p *recordingPush) Notify(userID, title, body string) {
	p.sent <- userID + ": " + body
}
