package realtime

import (
	"testing"
	"time"

	"civicalert/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func waitForEviction(hub *Hub, userID string) bool {
	deadline := time.After(time.Second)
	for {
		select {
		case <-deadline:
			return false
		default:
			if !hub.IsUserOnline(userID) {
				return true
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func TestWebSocketClient_PongAfterEviction(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &WebSocketClient{
		UserID: "user_A",
		Hub:    hub,
		Send:   make(chan models.Event, 1),
	}

	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)

	// First event fills the one-slot buffer, the second one marks the
	// session as too slow and the hub evicts it, closing Send.
	hub.Deliver("user_A", models.EventNotification, "first")
	hub.Deliver("user_A", models.EventNotification, "second")
	assert.True(t, waitForEviction(hub, "user_A"))

	// The connection outlives the eviction, so a ping from the peer can
	// still arrive. The reply must be dropped, not sent into the closed
	// channel.
	assert.NotPanics(t, func() {
		client.trySend(models.Event{Event: models.EventPong})
	})
}

func TestWebSocketClient_CloseIsIdempotent(t *testing.T) {
	client := &WebSocketClient{
		UserID: "user_A",
		Send:   make(chan models.Event, 1),
	}

	assert.NotPanics(t, func() {
		client.Close()
		client.Close()
	})
	assert.NotPanics(t, func() {
		client.trySend(models.Event{Event: models.EventPong})
	})
}
