package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a connected dashboard session
type Client struct {
	ID   uint
	Role string
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub
}

// Hub maintains the set of active clients and pushes mentor-flow events to
// connected admin dashboards.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Dashboard client %d connected", client.ID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Dashboard client %d disconnected", client.ID)

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// BroadcastToRole sends a message to all connected clients with a role
func (h *Hub) BroadcastToRole(role string, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.Role != role {
			continue
		}
		select {
		case client.Send <- message:
		default:
			log.Printf("Warning: could not send to client %d (channel full)", client.ID)
		}
	}
}

// ConnectedClients returns the number of connected clients
func (h *Hub) ConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// WebSocket message types
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// MentorEvent is pushed to admin dashboards as the mentor approval flow
// progresses.
type MentorEvent struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

func (h *Hub) sendAdminEvent(eventType string, ev MentorEvent) {
	message := WebSocketMessage{
		Type: eventType,
		Data: ev,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	h.BroadcastToRole("ADMIN", data)
}

// MentorRegistered notifies admins a new mentor is awaiting review.
func (h *Hub) MentorRegistered(email, name string) {
	h.sendAdminEvent("mentor_registered", MentorEvent{Email: email, FullName: name})
}

// MentorVerified notifies admins a mentor entered their verification code.
func (h *Hub) MentorVerified(email, name string) {
	h.sendAdminEvent("mentor_verified", MentorEvent{Email: email, FullName: name})
}

// MentorApproved notifies admins a mentor account went live.
func (h *Hub) MentorApproved(email, name string) {
	h.sendAdminEvent("mentor_approved", MentorEvent{Email: email, FullName: name})
}

// MentorRejected notifies admins a mentor registration was removed.
func (h *Hub) MentorRejected(email, name string) {
	h.sendAdminEvent("mentor_rejected", MentorEvent{Email: email, FullName: name})
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:   userID,
		Role: role,
		Conn: conn,
		Send: make(chan []byte, 256),
		Hub:  hub,
	}

	client.Hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so pings and close frames are processed
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
