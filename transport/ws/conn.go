// Package ws adapts the dispatcher to a websocket transport using
// gorilla/websocket, serializing concurrent writes on each connection so
// two outbound messages' bytes are never interleaved on the wire.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn implements match.Connection over a single *websocket.Conn. gorilla's
// Conn permits at most one concurrent writer; writeMu enforces that.
type Conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

// NewConn wraps an upgraded websocket connection.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// Send marshals message to JSON and writes it as a single text frame.
func (c *Conn) Send(message any) error {
	raw, err := json.Marshal(message)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, raw)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}

// ReadMessage blocks for the next text frame's payload. It is only ever
// called from the single per-connection read loop in Handler.
func (c *Conn) ReadMessage() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	return data, err
}
