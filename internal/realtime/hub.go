// Package realtime maintains the process-wide registry of authenticated
// websocket sessions, grouped into per-user rooms, and routes best-effort
// event delivery to them. Durability lives in the notification store; this
// layer only ever promises at-most-once delivery to currently connected
// clients.
package realtime

import (
	"errors"
	"log"
	"sync"

	"civicalert/backend/internal/models"
)

// ErrNotInitialized is returned by Handle before Init has run.
var ErrNotInitialized = errors.New("realtime hub not initialized")

// Hub owns the room registry: user id -> set of live sessions for that
// user. Mutations go through the Register/Unregister channels and are
// applied only by the Run loop; the mutex exists so Deliver and
// IsUserOnline can read the registry from request goroutines.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Client]bool

	RegisterCh   chan Client
	UnregisterCh chan Client
}

func NewHub() *Hub {
	return &Hub{
		rooms:        make(map[string]map[Client]bool),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
	}
}

// Run is the single goroutine that mutates the room registry.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.RegisterCh:
			h.addClient(client)
		case client := <-h.UnregisterCh:
			h.removeClient(client)
		}
	}
}

func (h *Hub) addClient(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.GetUserID()
	room, ok := h.rooms[userID]
	if !ok {
		room = make(map[Client]bool)
		h.rooms[userID] = room
	}
	// A reconnect from the same user just adds another member to the room.
	room[client] = true
	log.Printf("User %s joined room %s (%d sessions)", userID, userID, len(room))
}

func (h *Hub) removeClient(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.GetUserID()
	room, ok := h.rooms[userID]
	if !ok || !room[client] {
		return
	}
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, userID)
	}
	client.Close()
	log.Printf("User %s left room %s (%d sessions remain)", userID, userID, len(room))
}

// Deliver pushes an event to every live session of the user. It never
// blocks and never returns an error: a user without a session, or a
// session too slow to keep up, is logged and skipped.
func (h *Hub) Deliver(userID, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[userID]
	if !ok || len(room) == 0 {
		log.Printf("No live session for user %s, skipping %q delivery", userID, event)
		return
	}

	evt := models.Event{Event: event, Data: payload}
	for client := range room {
		select {
		case client.GetSendChannel() <- evt:
		default:
			log.Printf("WARN: Session of user %s too slow, dropping it", userID)
			go func(c Client) { h.UnregisterCh <- c }(client)
		}
	}
}

// IsUserOnline reports whether the user has at least one live session.
// The chat fan-out uses it to decide between realtime delivery and the
// offline push fallback.
func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID]) > 0
}

// SessionCount returns the number of live sessions for a user.
func (h *Hub) SessionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}
