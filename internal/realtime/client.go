package realtime

import "civicalert/backend/internal/models"

// Client is one live session in a room. The user id is fixed at handshake
// time and never changes for the session's lifetime.
type Client interface {
	// GetUserID returns the id of the user who authenticated the session.
	GetUserID() string

	// GetSendChannel returns the channel the hub pushes outbound events
	// into. It is a send-only channel from the hub's point of view.
	GetSendChannel() chan<- models.Event

	// Run starts the session's read and write pumps.
	Run()

	// Close shuts down the session's outbound channel. Called by the hub
	// exactly once, when the session leaves its room.
	Close()
}
