package realtime

import (
	"log"
	"sync"
)

var (
	hubMu sync.Mutex
	hub   *Hub
)

// Init creates the process-wide hub and starts its Run loop. Calling it
// again returns the existing hub unchanged, so a startup path and a retry
// path cannot end up with two registries.
func Init() *Hub {
	hubMu.Lock()
	defer hubMu.Unlock()

	if hub != nil {
		log.Println("Realtime hub already initialized, returning existing instance")
		return hub
	}
	hub = NewHub()
	go hub.Run()
	log.Println("Realtime hub initialized")
	return hub
}

// Handle returns the process-wide hub, or ErrNotInitialized before Init.
func Handle() (*Hub, error) {
	hubMu.Lock()
	defer hubMu.Unlock()

	if hub == nil {
		return nil, ErrNotInitialized
	}
	return hub, nil
}
