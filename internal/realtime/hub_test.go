package realtime_test

import (
	"testing"
	"time"

	"civicalert/backend/internal/models"
	"civicalert/backend/internal/realtime"

	"github.com/stretchr/testify/assert"
)

// mockClient is an in-memory session for hub tests.
type mockClient struct {
	userID string
	Recv   chan models.Event
	closed bool
}

func newMockClient(userID string) *mockClient {
	return &mockClient{
		userID: userID,
		Recv:   make(chan models.Event, 16),
	}
}

func (c *mockClient) GetUserID() string                   { return c.userID }
func (c *mockClient) GetSendChannel() chan<- models.Event { return c.Recv }
func (c *mockClient) Run()                                {}
func (c *mockClient) Close()                              { c.closed = true }

func TestHub_RegisterUnregister(t *testing.T) {
	hub := realtime.NewHub()
	go hub.Run()

	client := newMockClient("user_A")

	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)
	assert.True(t, hub.IsUserOnline("user_A"))
	assert.Equal(t, 1, hub.SessionCount("user_A"))

	hub.UnregisterCh <- client
	time.Sleep(50 * time.Millisecond)
	assert.False(t, hub.IsUserOnline("user_A"))
	assert.True(t, client.closed)
}

func TestHub_ReconnectAddsSecondSession(t *testing.T) {
	hub := realtime.NewHub()
	go hub.Run()

	first := newMockClient("user_A")
	second := newMockClient("user_A")

	hub.RegisterCh <- first
	hub.RegisterCh <- second
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 2, hub.SessionCount("user_A"))

	// Both sessions of the same room receive the event.
	hub.Deliver("user_A", models.EventNotification, "payload")
	time.Sleep(50 * time.Millisecond)

	assert.Len(t, first.Recv, 1)
	assert.Len(t, second.Recv, 1)
}

func TestHub_DeliverToRegisteredClient(t *testing.T) {
	hub := realtime.NewHub()
	go hub.Run()

	client := newMockClient("user_A")
	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)

	notification := &models.Notification{ID: "n1", UserID: "user_A", Message: "hello"}
	hub.Deliver("user_A", models.EventNotification, notification)

	select {
	case evt := <-client.Recv:
		assert.Equal(t, models.EventNotification, evt.Event)
		assert.Equal(t, notification, evt.Data)
	case <-time.After(time.Second):
		t.Error("client did not receive event")
	}

	// Exactly one event: nothing else queued.
	assert.Empty(t, client.Recv)
}

func TestHub_DeliverToOfflineUserIsNoOp(t *testing.T) {
	hub := realtime.NewHub()
	go hub.Run()

	done := make(chan struct{})
	go func() {
		hub.Deliver("nobody", models.EventNotification, "payload")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Deliver blocked on a user with no sessions")
	}
}

func TestHub_DeliverSkipsOtherUsers(t *testing.T) {
	hub := realtime.NewHub()
	go hub.Run()

	target := newMockClient("user_A")
	bystander := newMockClient("user_B")
	hub.RegisterCh <- target
	hub.RegisterCh <- bystander
	time.Sleep(50 * time.Millisecond)

	hub.Deliver("user_A", models.EventNotification, "payload")
	time.Sleep(50 * time.Millisecond)

	assert.Len(t, target.Recv, 1)
	assert.Empty(t, bystander.Recv)
}
