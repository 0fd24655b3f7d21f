package models

import "time"

// User represents an account in the system. The profile lives in a
// separate record so signup can complete before profile setup does.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PushToken    *string   `json:"push_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Gender values accepted on a profile. The field itself is optional.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Prompt is a question/answer pair shown on a profile card.
type Prompt struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Profile represents a user's dating profile. ID equals the owning
// account's ID and never changes after creation.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Bio       string    `json:"bio"`
	Course    string    `json:"course"`
	Year      int       `json:"year"`
	Gender    string    `json:"gender,omitempty"`
	Photos    []string  `json:"photos"`
	Interests []string  `json:"interests,omitempty"`
	Prompts   []Prompt  `json:"prompts,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SwipeAction is a user's directional decision on a candidate profile.
type SwipeAction string

const (
	ActionPass      SwipeAction = "pass"
	ActionLike      SwipeAction = "like"
	ActionSuperLike SwipeAction = "super-like"
)

// Valid reports whether a is one of the known swipe actions.
func (a SwipeAction) Valid() bool {
	switch a {
	case ActionPass, ActionLike, ActionSuperLike:
		return true
	}
	return false
}

// Positive reports whether a can qualify for a match.
func (a SwipeAction) Positive() bool {
	return a == ActionLike || a == ActionSuperLike
}

// Swipe records the current action of one user toward another. At most one
// row exists per (ActorID, TargetID) pair; a re-swipe overwrites it.
type Swipe struct {
	ActorID   string      `json:"actor_id"`
	TargetID  string      `json:"target_id"`
	Action    SwipeAction `json:"action"`
	CreatedAt time.Time   `json:"created_at"`
}

// Match represents two users who are eligible to converse. ID is derived
// from the sorted user pair so both sides compute the same identifier.
type Match struct {
	ID             string    `json:"id"`
	UserAID        string    `json:"user_a_id"`
	UserBID        string    `json:"user_b_id"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// PartnerID returns the other participant of the match.
func (m *Match) PartnerID(userID string) string {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

// HasParticipant reports whether userID is one of the match's two users.
func (m *Match) HasParticipant(userID string) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// FeedCursor is a user's position in a snapshot of candidate profiles.
// The snapshot is fixed when the cursor is built; resetting rewinds the
// index without rebuilding, so candidates swiped during the walk are
// re-shown.
type FeedCursor struct {
	CandidateIDs []string `json:"candidate_ids"`
	Index        int      `json:"index"`
}

// MessageKind distinguishes text messages from image references.
type MessageKind string

const (
	MessageText  MessageKind = "text"
	MessageImage MessageKind = "image"
)

// Message belongs to exactly one match. Messages are never edited or
// deleted individually; only IsRead is mutated after creation.
type Message struct {
	ID        string      `json:"id"`
	MatchID   string      `json:"match_id"`
	SenderID  string      `json:"sender_id"`
	Content   string      `json:"content"`
	Kind      MessageKind `json:"kind"`
	CreatedAt time.Time   `json:"created_at"`
	IsRead    bool        `json:"is_read"`
}
