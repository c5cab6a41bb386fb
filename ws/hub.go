package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// hub tracks every open socket per user. A user may hold several
// connections (tabs); events go to all of them.
type hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[string]*websocket.Conn
}

var h = &hub{rooms: make(map[uint]map[string]*websocket.Conn)}

func (h *hub) register(userID uint, socketID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[string]*websocket.Conn)
	}
	h.rooms[userID][socketID] = conn
}

func (h *hub) unregister(userID uint, socketID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sockets, ok := h.rooms[userID]; ok {
		delete(sockets, socketID)
		if len(sockets) == 0 {
			delete(h.rooms, userID)
		}
	}
}

// PushToUser sends an event to every open connection of the user. A user
// with no connection is not an error; the notification row is still in the
// database and the unread count catches up on the next fetch.
func PushToUser(userID uint, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws: failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for socketID, conn := range h.rooms[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("ws: write to socket %s failed: %v", socketID, err)
		}
	}
}

// ConnectedUsers reports how many users currently hold at least one socket.
func ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}
