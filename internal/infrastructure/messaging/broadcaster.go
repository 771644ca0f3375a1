// Package messaging provides live update fan-out over websockets.
package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/gorilla/websocket"
)

// Event types pushed to connected preview clients.
const (
	EventDesignUpdated = "design_updated"
	EventRSVPReceived  = "rsvp_received"
)

// Event is one message pushed to preview clients.
type Event struct {
	Type         string    `json:"type"`
	DesignID     string    `json:"designId,omitempty"`
	InvitationID string    `json:"invitationId,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Client represents a single connected preview client. A client with a
// non-empty DesignID only receives events for that design.
type Client struct {
	Conn     *websocket.Conn
	DesignID string
	Send     chan []byte
}

// PreviewBroadcaster manages connected preview clients and pushes design
// and RSVP events to them.
type PreviewBroadcaster struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan Event
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
}

// NewPreviewBroadcaster creates a new broadcaster instance.
func NewPreviewBroadcaster(logger *logging.ChanneledLogger) *PreviewBroadcaster {
	return &PreviewBroadcaster{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 64),
		logger:     logger,
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *PreviewBroadcaster) Run() {
	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			b.mu.Unlock()
			if b.logger != nil {
				b.logger.Realtime().Debug("Preview client registered", "designId", client.DesignID, "clients", b.ClientCount())
			}

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client.Send)
			}
			b.mu.Unlock()
			if b.logger != nil {
				b.logger.Realtime().Debug("Preview client unregistered", "clients", b.ClientCount())
			}

		case event := <-b.events:
			b.dispatch(event)
		}
	}
}

// Register queues a client for registration.
func (b *PreviewBroadcaster) Register(client *Client) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *PreviewBroadcaster) Unregister(client *Client) {
	b.unregister <- client
}

// BroadcastDesignUpdated notifies preview clients that a design document
// changed and their rendered view is stale.
func (b *PreviewBroadcaster) BroadcastDesignUpdated(designID string) {
	b.enqueue(Event{Type: EventDesignUpdated, DesignID: designID, Timestamp: time.Now().UTC()})
}

// BroadcastRSVPReceived notifies dashboard clients of a new RSVP.
func (b *PreviewBroadcaster) BroadcastRSVPReceived(invitationID, designID string) {
	b.enqueue(Event{Type: EventRSVPReceived, InvitationID: invitationID, DesignID: designID, Timestamp: time.Now().UTC()})
}

// ClientCount reports the number of connected clients.
func (b *PreviewBroadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *PreviewBroadcaster) enqueue(event Event) {
	select {
	case b.events <- event:
	default:
		if b.logger != nil {
			b.logger.Realtime().Warn("Event queue full, dropping event", "type", event.Type)
		}
	}
}

func (b *PreviewBroadcaster) dispatch(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		if b.logger != nil {
			b.logger.Realtime().Error("Failed to marshal event", "error", err.Error(), "type", event.Type)
		}
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for client := range b.clients {
		if client.DesignID != "" && event.DesignID != "" && client.DesignID != event.DesignID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			// Slow client; drop the message rather than block the loop.
		}
	}
}

// WritePump pumps messages from the client's send channel to the websocket
// connection. Runs as a goroutine per client.
func (c *Client) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump drains the connection until the client disconnects, then
// unregisters it.
func (c *Client) ReadPump(b *PreviewBroadcaster) {
	defer func() {
		b.Unregister(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
