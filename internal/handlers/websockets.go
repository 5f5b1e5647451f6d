package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 30 * time.Second
	minInterval      = 1 * time.Second
	maxInterval      = 5 * time.Minute
	maxIntervalMilli = 300_000
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Cross-origin upgrades are refused because the
// cookie session would otherwise authenticate them.
var upgrader = websocket.Upgrader{
	CheckOrigin: sameOrigin,
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// @Summary      Todo feed
// @Description  WebSocket stream of the caller's todo list. A snapshot is sent on connect, after every change and every ?interval (default 30s).
// @Tags         todos
// @Param        interval     query  string  false  "Resync interval, e.g. 10s"
// @Param        interval_ms  query  int     false  "Resync interval in milliseconds"
// @Router       /todos/ws [get]
// @Security     BearerAuth
func (h *Handler) todoFeed(c *gin.Context) {
	uid, ok := h.userIDOrAbort(c)
	if !ok {
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err, "user_id", uid)
		return
	}
	defer func() { _ = conn.Close() }()

	changes, unsubscribe := h.services.Feed.Subscribe(uid)
	defer unsubscribe()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendTodos(ctx, conn, uid); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err, "user_id", uid)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err, "user_id", uid)
				return
			}
		case <-changes:
			if err := h.sendTodos(ctx, conn, uid); err != nil {
				h.log.Infow("ws_write_failed", "err", err, "user_id", uid)
				return
			}
		case <-ticker.C:
			if err := h.sendTodos(ctx, conn, uid); err != nil {
				h.log.Infow("ws_write_failed", "err", err, "user_id", uid)
				return
			}
		}
	}
}

// Helper: parseInterval reads ?interval=10s or ?interval_ms=10000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v >= int(minInterval/time.Millisecond) && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// Helper: sendTodos fetches and writes the user's current list with a write deadline.
// A failed read is reported to the client as an error frame and keeps the stream open.
func (h *Handler) sendTodos(ctx context.Context, conn *websocket.Conn, userID uint) error {
	todos, err := h.services.Todos.List(ctx, userID)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		h.log.Errorw("ws_list_todos_failed", "err", err, "user_id", userID)
		return conn.WriteJSON(wsEnvelope{Type: "error", Error: errInternal})
	}
	return conn.WriteJSON(wsEnvelope{Type: "todos", Data: todos})
}
