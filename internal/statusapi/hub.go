package statusapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fraudgraph/engine/internal/domain"
)

var normalCloseCodes = []int{
	websocket.CloseNormalClosure,
	websocket.CloseGoingAway,
	websocket.CloseNoStatusReceived,
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		host := r.Host
		return origin == "http://"+host || origin == "https://"+host
	},
}

// ProgressEvent is one stage milestone broadcast to subscribed clients.
type ProgressEvent struct {
	TrackingID string      `json:"tracking_id"`
	Stage      domain.Stage `json:"stage"`
	Message    string      `json:"message"`
	Percent    float64     `json:"percent"`
	Timestamp  time.Time   `json:"timestamp"`
}

// progressClient is one /ws/progress connection, optionally filtered to a
// single tracking id.
type progressClient struct {
	conn    *websocket.Conn
	send    chan []byte
	trackID string // empty means "all runs"
}

// ProgressHub fans out progress events from in-flight analysis runs to
// subscribed WebSocket clients. One hub is shared by the whole process.
type ProgressHub struct {
	clients    map[*progressClient]bool
	broadcast  chan ProgressEvent
	register   chan *progressClient
	unregister chan *progressClient
	mu         sync.RWMutex
	logger     *slog.Logger
	done       chan struct{}
}

// NewProgressHub creates a hub. Run must be started in its own goroutine
// before any client registers.
func NewProgressHub(logger *slog.Logger) *ProgressHub {
	return &ProgressHub{
		clients:    make(map[*progressClient]bool),
		broadcast:  make(chan ProgressEvent, 256),
		register:   make(chan *progressClient),
		unregister: make(chan *progressClient),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run drives the hub's event loop. It has no stop signal and does not
// return; it runs for the life of the process.
func (h *ProgressHub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			payload, _ := json.Marshal(event)
			h.mu.RLock()
			var slow []*progressClient
			for client := range h.clients {
				if client.trackID != "" && client.trackID != event.TrackingID {
					continue
				}
				select {
				case client.send <- payload:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()
			if len(slow) > 0 {
				h.mu.Lock()
				for _, client := range slow {
					if _, ok := h.clients[client]; ok {
						close(client.send)
						delete(h.clients, client)
					}
				}
				h.mu.Unlock()
			}
		}
	}
}

// Publish enqueues an event for delivery, dropping it if the broadcast
// channel is saturated rather than blocking the analysis run that produced
// it.
func (h *ProgressHub) Publish(event ProgressEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("progress broadcast channel full, dropping event", "tracking_id", event.TrackingID)
	}
}

// ServeWS upgrades the request to a WebSocket and streams progress events,
// optionally filtered to the tracking id given in the "track" query parameter.
func (h *ProgressHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &progressClient{
		conn:    conn,
		send:    make(chan []byte, 64),
		trackID: r.URL.Query().Get("track"),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *progressClient) readPump(h *ProgressHub) {
	defer func() {
		h.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, normalCloseCodes...) {
				h.logger.Warn("websocket read error", "error", err)
			}
			return
		}
	}
}

func (c *progressClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
