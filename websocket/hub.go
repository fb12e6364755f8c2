package websocket

import (
	"ClassFeed/metrics"
	"ClassFeed/models"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// outbound is an encoded event addressed to one class channel.
type outbound struct {
	room string
	data []byte
	kind string
}

// Hub keeps the websocket clients of every class channel and fans events
// out to them. Registration and delivery run on the Run goroutine.
type Hub struct {
	// Registered clients by channel key (course:class)
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
	done       chan struct{}

	mu sync.Mutex

	// Recent message events per channel, replayed to clients on connect
	history        map[string][][]byte
	historyMaxSize int
	historyMu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:          make(map[string]map[*Client]bool),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		broadcast:      make(chan outbound, 256),
		done:           make(chan struct{}),
		history:        make(map[string][][]byte),
		historyMaxSize: 50,
	}
}

// Register adds the client to its channel. It reports false once the hub
// has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish encodes the event and queues it for the clients of its channel.
func (h *Hub) Publish(ctx context.Context, event models.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	select {
	case h.broadcast <- outbound{room: event.ChannelKey(), data: data, kind: event.Type}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return fmt.Errorf("hub stopped")
	}
}

// ClientCount returns the number of clients subscribed to a channel.
func (h *Hub) ClientCount(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()
			metrics.WebsocketClients.Inc()
			zap.L().Info("websocket client registered", zap.Uint("user_id", client.userID), zap.String("room", client.room))

			h.sendHistory(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok && clients[client] {
				h.remove(clients, client)
				zap.L().Info("websocket client unregistered", zap.Uint("user_id", client.userID), zap.String("room", client.room))
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			if clients, ok := h.rooms[msg.room]; ok {
				for client := range clients {
					select {
					case client.send <- msg.data:
					default:
						// Slow consumer; drop it rather than block the channel.
						h.remove(clients, client)
					}
				}
			}
			h.mu.Unlock()

			if msg.kind == models.EventMessage {
				h.saveToHistory(msg.room, msg.data)
			}
		}
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(clients map[*Client]bool, client *Client) {
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
	metrics.WebsocketClients.Dec()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.rooms {
		for client := range clients {
			h.remove(clients, client)
		}
	}
}

func (h *Hub) saveToHistory(room string, data []byte) {
	h.historyMu.Lock()
	defer h.historyMu.Unlock()

	history := h.history[room]
	if len(history) >= h.historyMaxSize {
		history = history[1:]
	}
	h.history[room] = append(history, data)
}

func (h *Hub) sendHistory(client *Client) {
	h.historyMu.Lock()
	history := make([][]byte, len(h.history[client.room]))
	copy(history, h.history[client.room])
	h.historyMu.Unlock()

	for _, data := range history {
		select {
		case client.send <- data:
		default:
			return
		}
	}
}
