package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bryanmalak/real-time-power-monitoring/internal/metrics"
)

const (
	// streamSendBuffer bounds the per-client outbound queue. A client
	// that falls this many ticks behind is disconnected rather than
	// allowed to stall the tick loop.
	streamSendBuffer = 16
	streamWriteWait  = 10 * time.Second
)

// Hub fans tick snapshots out to connected dashboard clients over
// WebSocket. Broadcast never blocks: slow clients are dropped.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]chan []byte
	closed  bool
}

// NewHub creates an empty stream hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard page is served from this same process.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[string]chan []byte),
	}
}

// HandleStream upgrades the request to a WebSocket and streams one
// snapshot message per tick until the client disconnects.
func (h *Hub) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Stream upgrade failed: %v", err)
		return
	}

	id := uuid.NewString()
	send := make(chan []byte, streamSendBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[id] = send
	n := len(h.clients)
	h.mu.Unlock()

	metrics.StreamClientConnected(1)
	log.Printf("Stream client %s connected (%d active)", id, n)

	go h.writeLoop(conn, send)

	// Block on reads only to learn about disconnects; clients send no data.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(id)
	_ = conn.Close()
}

func (h *Hub) writeLoop(conn *websocket.Conn, send <-chan []byte) {
	for msg := range send {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			// The read side observes the closed connection and
			// unregisters the client.
			_ = conn.Close()
			return
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(streamWriteWait))
	_ = conn.Close()
}

// Broadcast marshals v once and queues it to every connected client.
// Clients whose queue is full are dropped.
func (h *Hub) Broadcast(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling stream message: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, send := range h.clients {
		select {
		case send <- data:
		default:
			h.dropLocked(id)
			log.Printf("Stream client %s dropped: send queue full", id)
		}
	}
}

// ClientCount returns the number of connected stream clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client. Used during graceful shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id := range h.clients {
		h.dropLocked(id)
	}
}

func (h *Hub) drop(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(id)
}

func (h *Hub) dropLocked(id string) {
	send, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	close(send)
	metrics.StreamClientConnected(-1)
}
