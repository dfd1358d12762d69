package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	sendBuffer   = 64
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
)

// Client is one websocket subscription.
type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan Event

	tables map[string]struct{}
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
}

func (c *Client) wants(table string) bool {
	if len(c.tables) == 0 {
		return true
	}
	_, ok := c.tables[table]
	return ok
}

// Hub tracks connected clients per user.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: map[uuid.UUID]map[*Client]struct{}{},
		logger:  logger,
	}
}

// AddClient registers conn for userID. An empty tables list subscribes to all tables.
func (h *Hub) AddClient(userID uuid.UUID, conn *websocket.Conn, tables []string) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan Event, sendBuffer),
		tables: map[string]struct{}{},
		ctx:    ctx,
		cancel: cancel,
		logger: h.logger,
	}
	for _, t := range tables {
		if t != "" {
			c.tables[t] = struct{}{}
		}
	}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*Client]struct{}{}
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()
	go c.keepAliveLoop()

	h.logger.Debug("realtime client connected", "user_id", userID, "tables", tables)
	return c
}

func (h *Hub) RemoveClient(c *Client) {
	c.cancel()

	h.mu.Lock()
	if set, ok := h.clients[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()

	_ = c.Conn.Close(websocket.StatusNormalClosure, "bye")
	h.logger.Debug("realtime client disconnected", "user_id", c.UserID)
}

// Publish queues ev for every client of every participant. A client whose
// buffer is full misses the event.
func (h *Hub) Publish(_ context.Context, ev Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{}, len(ev.Participants))
	for _, uid := range ev.Participants {
		if _, dup := seen[uid]; dup {
			continue
		}
		seen[uid] = struct{}{}
		for c := range h.clients[uid] {
			if !c.wants(ev.Table) {
				continue
			}
			select {
			case c.Send <- ev:
			default:
				h.logger.Warn("realtime client buffer full, dropping event",
					"user_id", uid, "table", ev.Table, "record_id", ev.RecordID)
			}
		}
	}
	return nil
}

// Connected returns the number of live clients for userID.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (c *Client) writeLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev := <-c.Send:
			writeCtx, cancel := context.WithTimeout(c.ctx, writeTimeout)
			if err := wsjson.Write(writeCtx, c.Conn, ev); err != nil {
				c.logger.Debug("realtime write failed", "user_id", c.UserID, "error", err)
			}
			cancel()
		}
	}
}

func (c *Client) keepAliveLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(c.ctx, 5*time.Second)
			_ = c.Conn.Ping(pingCtx)
			cancel()
		}
	}
}
