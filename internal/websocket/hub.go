package slotws

import (
	"encoding/json"
	"log"

	websocket "github.com/gofiber/contrib/websocket"
)

// Event is pushed to every connected schedule page when a slot is taken, so
// open calendars grey the slot out without re-polling the sessions endpoint.
type Event struct {
	Type          string `json:"type"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
}

type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, exists := h.clients[client]; exists {
				delete(h.clients, client)
				close(client.send)
			}
		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastSlotBooked fans a slot_booked event out to all clients. Safe to
// call from any goroutine; drops the event if the hub backlog is full rather
// than blocking a booking request.
func (h *Hub) BroadcastSlotBooked(scheduledDate, scheduledTime string) {
	event := Event{
		Type:          "slot_booked",
		ScheduledDate: scheduledDate,
		ScheduledTime: scheduledTime,
	}
	select {
	case h.broadcast <- event:
	default:
		log.Printf("slot hub backlog full, dropping %s %s", scheduledDate, scheduledTime)
	}
}

func (h *Hub) deliver(event Event) {
	encoded, err := json.Marshal(event)
	if err != nil {
		log.Printf("slot hub encode event: %v", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- encoded:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// ReadPump discards inbound frames; the feed is one-way. It exists to detect
// the close handshake and unregister the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
