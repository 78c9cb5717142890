package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/AdamBeresnev/sinuca-bracket/internal/metrics"
)

const (
	TypeSnapshot = "snapshot"
	TypeEvents   = "events"
)

// Message is what subscribers receive.
type Message struct {
	Type    string `json:"type"`
	Room    string `json:"room"`
	Payload any    `json:"payload"`
}

type outgoing struct {
	room string
	data []byte
}

// Hub fans messages out to the websocket clients of a room. A room is one
// tournament id. Run owns the room membership, ClientCount only reads it.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan outgoing
	done       chan struct{}

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outgoing, 16),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for room, clients := range h.rooms {
				for c := range clients {
					close(c.send)
					metrics.Subscribers.Dec()
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[c.room]; !ok {
				h.rooms[c.room] = make(map[*Client]bool)
			}
			h.rooms[c.room][c] = true
			n := len(h.rooms[c.room])
			h.mu.Unlock()
			metrics.Subscribers.Inc()
			slog.Info("websocket client connected", "room", c.room, "clients", n)

		case c := <-h.unregister:
			h.mu.Lock()
			n, removed := h.remove(c)
			h.mu.Unlock()
			if removed {
				slog.Info("websocket client disconnected", "room", c.room, "clients", n)
			}

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[msg.room] {
				select {
				case c.send <- msg.data:
				default:
					// slow client, drop it instead of blocking the room
					h.remove(c)
					slog.Warn("websocket client too slow, disconnected", "room", msg.room)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(c *Client) (int, bool) {
	clients, ok := h.rooms[c.room]
	if !ok || !clients[c] {
		return len(clients), false
	}
	delete(clients, c)
	close(c.send)
	metrics.Subscribers.Dec()
	if len(clients) == 0 {
		delete(h.rooms, c.room)
	}
	return len(clients), true
}

// Publish sends a message to every client in room. It never waits on a
// client, only on the hub loop itself.
func (h *Hub) Publish(room, msgType string, payload any) {
	data, err := json.Marshal(Message{Type: msgType, Room: room, Payload: payload})
	if err != nil {
		slog.Error("failed to encode websocket message", "room", room, "type", msgType, "error", err)
		return
	}
	select {
	case h.broadcast <- outgoing{room: room, data: data}:
		metrics.Published.Inc()
	case <-h.done:
	}
}

func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
