package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"college-crush-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket event sent to a client
type WSMessage struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// wsConn wraps a connection with a write lock. gorilla/websocket allows
// at most one concurrent writer per connection, and chat, match and
// greeting events can all target the same user at once.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub manages WebSocket connections, one per user. It is the push
// channel the chat surface subscribes to instead of polling.
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*wsConn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*wsConn),
	}
}

// Register registers a new WebSocket connection for a user, replacing
// any existing one
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, exists := h.connections[userID]; exists {
		existing.conn.Close()
	}
	h.connections[userID] = &wsConn{conn: conn}

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a user's WebSocket connection, but only if conn is
// still the registered one. A reconnect replaces the entry, and the old
// handler's deferred unregister must not knock the new session offline.
func (h *WSHub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, exists := h.connections[userID]; exists && existing.conn == conn {
		existing.conn.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// IsOnline checks if a user has a registered connection
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[userID]
	return exists
}

// SendToUser sends a message to a specific user
func (h *WSHub) SendToUser(userID string, message WSMessage) error {
	h.mu.RLock()
	wc, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := wc.write(data); err != nil {
		h.Unregister(userID, wc.conn)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// NotifyMatchCreated tells a user about a new match. Best-effort.
func (h *WSHub) NotifyMatchCreated(userID string, match *models.Match) {
	msg := WSMessage{
		Type: "match_created",
		Data: match,
	}
	if err := h.SendToUser(userID, msg); err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("Skipped match_created delivery")
	}
}

// NotifyMatchDeleted tells a user their match was removed. Best-effort.
func (h *WSHub) NotifyMatchDeleted(userID, matchID string) {
	msg := WSMessage{
		Type: "match_deleted",
		Data: map[string]interface{}{"match_id": matchID},
	}
	if err := h.SendToUser(userID, msg); err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("Skipped match_deleted delivery")
	}
}

// NotifyNewMessage delivers a chat message to a connected user.
// Best-effort.
func (h *WSHub) NotifyNewMessage(userID string, message *models.Message) {
	msg := WSMessage{
		Type: "new_message",
		Data: message,
	}
	if err := h.SendToUser(userID, msg); err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("Skipped new_message delivery")
	}
}
