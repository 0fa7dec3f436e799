package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/tablepos/api/internal/events"
)

var ErrBroadcastFull = errors.New("websocket broadcast queue is full")

// Event is the frame pushed to websocket clients.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type tenantEvent struct {
	TenantID uuid.UUID
	Event    Event
}

// Hub fans order events out to the websocket clients of the tenant that
// owns the order. Each tenant gets its own room.
type Hub struct {
	rooms map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *tenantEvent
	done       chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *tenantEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run serves register, unregister and broadcast requests until ctx is
// cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.tenantID] == nil {
				h.rooms[client.tenantID] = make(map[*Client]bool)
			}
			h.rooms[client.tenantID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			message, err := json.Marshal(event.Event)
			if err != nil {
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[event.TenantID] {
				select {
				case client.send <- message:
				default:
					// Slow consumer.
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.tenantID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.tenantID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for tenantID, clients := range h.rooms {
		for client := range clients {
			close(client.send)
		}
		delete(h.rooms, tenantID)
	}
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// BroadcastToTenant queues an event for every client of the tenant. It
// never blocks the caller.
func (h *Hub) BroadcastToTenant(tenantID uuid.UUID, event Event) error {
	select {
	case h.broadcast <- &tenantEvent{TenantID: tenantID, Event: event}:
		return nil
	default:
		return ErrBroadcastFull
	}
}

// Publish makes the hub an events.Publisher.
func (h *Hub) Publish(ctx context.Context, env events.Envelope) error {
	return h.BroadcastToTenant(env.TenantID, Event{
		ID:      env.EventID,
		Type:    env.EventType,
		Payload: env.Payload,
	})
}
