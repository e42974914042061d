package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

const (
	defaultSendBuffer = 256
	writeDeadline     = 5 * time.Second
	pongWait          = 30 * time.Second
	pingInterval      = 20 * time.Second
	maxCommandBytes   = 4 << 10
)

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	// topics is nil until the first subscribe; nil means every topic.
	// Guarded by Hub.mu.
	topics map[string]struct{}
}

func (c *client) wants(topic string) bool {
	if c.topics == nil {
		return true
	}
	_, ok := c.topics[topic]
	return ok
}

// Hub fans realtime frames out to connected websocket clients.
type Hub struct {
	upgrader   websocket.Upgrader
	sendBuffer int
	logger     *logging.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub(sendBuffer int, logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sendBuffer: sendBuffer,
		logger:     logger.With("component", "realtime-hub"),
		clients:    make(map[*client]struct{}),
	}
}

// Deliver enqueues frame for every client interested in topic. Clients whose
// queue is full miss the frame.
func (h *Hub) Deliver(_ context.Context, topic string, frame []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if !c.wants(topic) {
			continue
		}
		select {
		case c.send <- frame:
		default:
			h.logger.Warn("dropping frame for slow client", "topic", topic)
		}
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("websocket client connected", "remote", r.RemoteAddr)

	go h.writePump(c)
	go h.readPump(c)
}

// writePump owns the connection: on exit it unregisters the client and closes it.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		h.remove(c)
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-c.done:
			return
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readPump(c *client) {
	defer close(c.done)

	c.conn.SetReadLimit(maxCommandBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var cmd clientCommand
		if err := sonic.Unmarshal(raw, &cmd); err != nil {
			h.logger.Debug("ignoring malformed client command", "error", err)
			continue
		}
		h.apply(c, cmd)
	}
}

func (h *Hub) apply(c *client, cmd clientCommand) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch cmd.Action {
	case actionSubscribe:
		if c.topics == nil {
			c.topics = make(map[string]struct{}, len(cmd.Topics))
		}
		for _, topic := range cmd.Topics {
			c.topics[topic] = struct{}{}
		}
	case actionUnsubscribe:
		if c.topics == nil {
			c.topics = make(map[string]struct{})
		}
		for _, topic := range cmd.Topics {
			delete(c.topics, topic)
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second),
		)
		_ = c.conn.Close()
	}
}
