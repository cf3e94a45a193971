// Package wsclient is the CLI's connection to a running server: dial,
// join_match, send one action, and read back whatever envelopes arrive.
package wsclient

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/turnforge/gridclash/protocol"
)

// Client wraps one websocket connection to the server.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Dial connects to serverURL (e.g. "ws://localhost:8080/ws").
func Dial(serverURL string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", serverURL, err)
	}
	return &Client{conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Send marshals and writes one {type, payload} envelope.
func (c *Client) Send(typ string, payload any) error {
	raw, err := protocol.Encode(typ, payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, raw)
}

// Next blocks for the next inbound envelope.
func (c *Client) Next() (protocol.Envelope, error) {
	_, raw, err := c.conn.ReadMessage()
	if err != nil {
		return protocol.Envelope{}, err
	}
	return protocol.Decode(raw)
}

// Listen runs a read loop on a background goroutine, invoking onMessage for
// every envelope until the connection closes or onError is called once.
func (c *Client) Listen(onMessage func(protocol.Envelope), onError func(error)) {
	go func() {
		for {
			env, err := c.Next()
			if err != nil {
				if onError != nil {
					onError(err)
				}
				return
			}
			onMessage(env)
		}
	}()
}

// JoinMatch sends join_match and waits (up to timeout) for the matching
// match_joined response, returning its decoded payload.
func (c *Client) JoinMatch(matchID string, timeout time.Duration) (protocol.MatchJoinedPayload, error) {
	if err := c.Send(protocol.TypeJoinMatch, protocol.JoinMatchPayload{MatchID: matchID}); err != nil {
		return protocol.MatchJoinedPayload{}, err
	}
	c.conn.SetReadDeadline(time.Now().Add(timeout))
	defer c.conn.SetReadDeadline(time.Time{})

	for {
		env, err := c.Next()
		if err != nil {
			return protocol.MatchJoinedPayload{}, err
		}
		if env.Type != protocol.TypeMatchJoined {
			continue
		}
		var payload protocol.MatchJoinedPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return protocol.MatchJoinedPayload{}, err
		}
		return payload, nil
	}
}
