// Live feed streaming over WebSocket. Observers connect read-only; the
// server pushes each tick's feed entries as they are applied.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talgya/god-world/internal/engine"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Observation is public; cross-origin pages may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient is one connected observer.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of connected observers and broadcasts feed entries.
type Hub struct {
	mu         sync.Mutex
	clients    map[*wsClient]bool
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
}

// NewHub creates an empty hub. Run must be called before serving clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
	}
}

// Run drives the hub loop until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("feed hub shutting down")
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			slog.Debug("feed observer connected")
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer: drop the connection, not the tick.
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastFeed pushes a tick's feed entries to every observer.
func (h *Hub) BroadcastFeed(entries []engine.FeedEntry) {
	for _, e := range entries {
		payload, err := json.Marshal(e)
		if err != nil {
			slog.Error("marshal feed entry for broadcast", "error", err)
			continue
		}
		select {
		case h.broadcast <- payload:
		default:
			slog.Warn("feed broadcast buffer full, dropping entry")
		}
	}
}

// ServeWS upgrades an HTTP request to a feed stream connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("websocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 32)}
	h.register <- client

	// Writer pump.
	go func() {
		defer conn.Close()
		for msg := range client.send {
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
	}()

	// Reader pump: observers send nothing; this just detects disconnects.
	go func() {
		defer func() { h.unregister <- client }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
