package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/meghnad/studylens/internal/behavior"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Frontend runs on another origin
	},
}

// liveClient is one connected WebSocket client. The connection allows only
// one writer at a time, so every write takes the client's write lock.
type liveClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// LiveHandler pushes detection results to connected WebSocket clients as
// they are produced.
type LiveHandler struct {
	clients map[*liveClient]bool
	mu      sync.RWMutex
}

// NewLiveHandler creates a new LiveHandler with no connected clients.
func NewLiveHandler() *LiveHandler {
	return &LiveHandler{
		clients: make(map[*liveClient]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := &liveClient{conn: conn}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	defer h.remove(client)

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// remove deregisters and closes a client. Safe to call more than once;
// only the call that finds the client registered closes the connection.
func (h *LiveHandler) remove(client *liveClient) {
	h.mu.Lock()
	registered := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()

	if registered {
		client.conn.Close()
	}
}

// livePayload is the wire form of one pushed result.
type livePayload struct {
	Score     float64  `json:"score"`
	Behaviors []string `json:"behaviors"`
	Timestamp string   `json:"timestamp"`
}

// Publish sends a detection result to all connected clients. It is safe to
// call from concurrent request handlers; writes to each connection are
// serialized through the client's write lock. Clients that fail to receive
// the payload are dropped.
func (h *LiveHandler) Publish(result *behavior.Result) {
	h.mu.RLock()
	if len(h.clients) == 0 {
		h.mu.RUnlock()
		return
	}
	clients := make([]*liveClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	behaviors := result.Behaviors
	if behaviors == nil {
		behaviors = []string{}
	}
	payload := livePayload{
		Score:     result.Score,
		Behaviors: behaviors,
		Timestamp: result.Timestamp.Format(time.RFC3339),
	}

	for _, client := range clients {
		client.writeMu.Lock()
		err := client.conn.WriteJSON(payload)
		client.writeMu.Unlock()

		if err != nil {
			h.remove(client)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *LiveHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
