/*
Package api
File: hub.go
Description:
    The WebSocket Hub is the real-time push layer of the game server.

    It maintains a registry of all connected browser clients and manages the
    broadcast channel. The simulation loop publishes 'state_pulse' envelopes
    once a second and 'event_pulse' envelopes when a narrative event fires;
    this Hub writes them to the socket of every connected client.

    Architecture:
    - Hub: the singleton manager.
    - Client: one browser connection.
    - ServeWs: the HTTP handler that upgrades a GET request to a WebSocket.
*/

package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Message is the standard JSON envelope for all real-time communication.
type Message struct {
	Type    string `json:"type"`    // "state_pulse" or "event_pulse"
	Payload any    `json:"payload"` // The actual data
}

// Client represents a single connected player/browser tab.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // Buffered channel for outbound messages
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients map[*Client]bool

	// Broadcast carries raw JSON frames from the simulation loop.
	Broadcast chan []byte

	register   chan *Client
	unregister chan *Client

	logger *log.Logger
}

// NewHub creates a new Hub instance.
// Call once at boot and run it as a goroutine.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run is the main event loop for the Hub.
// It blocks, so it must be run in a goroutine: `go hub.Run()`
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("websocket client registered", "clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Full send buffer means the client hung or disconnected.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastJSON wraps a payload in the standard envelope and queues it for
// every connected client. Marshal failures are logged and dropped; the
// simulation must never stall on a push.
func (h *Hub) BroadcastJSON(msgType string, payload any) {
	raw, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		h.logger.Error("marshal broadcast", "type", msgType, "err", err)
		return
	}
	h.Broadcast <- raw
}

// upgrader configures the WebSocket handshake. CheckOrigin is permissive so
// the browser client can connect across domains.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the HTTP request to a persistent WebSocket connection.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Error("websocket upgrade", "err", err)
		return
	}

	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256)}
	client.hub.register <- client

	// One goroutine per direction so a slow client never blocks the server.
	go client.writePump()
	go client.readPump()
}

// readPump drains the connection. The game client has no upstream messages
// today (actions go through the REST API) so frames are discarded, but the
// read loop is still what detects a dropped connection.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read", "err", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	defer c.conn.Close()

	// Exits when c.send is closed by the Hub.
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}
}
