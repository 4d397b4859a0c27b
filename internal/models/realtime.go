package models

import "time"

// Realtime event names emitted to connected clients.
const (
	EventNotification = "notification"
	EventNewMessage   = "new_message"
	EventPong         = "pong"
)

// Event is the wire envelope for everything pushed over a websocket:
// a named event plus its JSON payload.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// NewMessagePayload is the data block of a new_message event.
type NewMessagePayload struct {
	Type       string    `json:"type"`
	ChatID     string    `json:"chatId"`
	SenderID   string    `json:"senderId"`
	SenderRole string    `json:"senderRole"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}
