package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialHub opens a real client/server WebSocket pair and registers the
// server side with the hub. Returns both ends.
func dialHub(t *testing.T, hub *WSHub, userID string) (client, server *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Register(userID, conn)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-serverConns:
	case <-time.After(2 * time.Second):
		t.Fatal("server side never registered")
	}
	return client, server
}

func TestSendToUserOffline(t *testing.T) {
	hub := NewWSHub()
	if err := hub.SendToUser("nobody", WSMessage{Type: "hello"}); err == nil {
		t.Fatal("send to an offline user reported success")
	}
	if hub.IsOnline("nobody") {
		t.Fatal("offline user reported online")
	}
}

// TestSendToUserConcurrent hammers one connection from many goroutines;
// every write must serialize on the connection and every event must
// arrive.
func TestSendToUserConcurrent(t *testing.T) {
	hub := NewWSHub()
	client, _ := dialHub(t, hub, "alice")

	const writers = 32
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- hub.SendToUser("alice", WSMessage{Type: "new_message"})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent send: %v", err)
		}
	}

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < writers; i++ {
		if _, _, err := client.ReadMessage(); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
	}
}

// TestReconnectKeepsNewSession covers the replace-then-unregister order:
// when a stale handler unregisters after a reconnect, the fresh session
// must stay online.
func TestReconnectKeepsNewSession(t *testing.T) {
	hub := NewWSHub()
	_, firstServer := dialHub(t, hub, "alice")
	secondClient, secondServer := dialHub(t, hub, "alice")

	// The stale handler's deferred unregister fires after the
	// replacement was registered.
	hub.Unregister("alice", firstServer)

	if !hub.IsOnline("alice") {
		t.Fatal("stale unregister knocked the new session offline")
	}
	if err := hub.SendToUser("alice", WSMessage{Type: "hello"}); err != nil {
		t.Fatalf("send after reconnect: %v", err)
	}
	secondClient.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := secondClient.ReadMessage(); err != nil {
		t.Fatalf("new session did not receive the event: %v", err)
	}

	// Unregistering the live connection does take the user offline.
	hub.Unregister("alice", secondServer)
	if hub.IsOnline("alice") {
		t.Fatal("user still online after live unregister")
	}
}
