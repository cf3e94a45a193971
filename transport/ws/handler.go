package ws

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/turnforge/gridclash/dispatcher"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The transport implementation is intentionally permissive about
	// origin; production deployments terminate TLS and same-site checks
	// in front of this handler, not in it.
	CheckOrigin: func(r *http.Request) bool { return true },
}

var nextConnID uint64

// Handler upgrades incoming HTTP requests to websockets and feeds every
// frame to a Dispatcher. One Handler serves every match; routing between
// matches happens inside the dispatcher via join_match.
type Handler struct {
	d   *dispatcher.Dispatcher
	log *slog.Logger
}

// NewHandler builds a Handler that drives d.
func NewHandler(d *dispatcher.Dispatcher, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{d: d, log: log}
}

// ServeHTTP upgrades the request, then runs the connection's entire
// lifecycle (register, read loop, deregister) synchronously in this
// goroutine; gorilla's per-connection goroutine-per-request model means one
// blocked ReadMessage call only ever holds up that one player's socket.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	conn := NewConn(wsConn)
	connID := fmt.Sprintf("conn-%d", atomic.AddUint64(&nextConnID, 1))

	h.d.OnConnect(connID, conn)
	defer func() {
		h.d.OnDisconnect(connID)
		conn.Close()
	}()

	for {
		raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.d.HandleMessage(connID, raw)
	}
}
