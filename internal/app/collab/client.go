/*
Package collab contains the connection session and command dispatch layer of
the collaboration server.

This file defines the Client, one active WebSocket connection. It owns the
connection's Session, runs the read and write pumps, and feeds inbound
commands to the Dispatcher one at a time.
*/
package collab

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/MessiahAndrw/Collaborate/internal/pkg/logx"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/randx"
)

const (
	// timeout for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time the server waits for a Pong from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound message.
	maxMessageSize = 8192

	// sendQueueSize is the outbound event buffer per connection.
	sendQueueSize = 256
)

// Client is one active WebSocket connection.
type Client struct {
	// id identifies the connection in logs only; it carries no identity.
	id string

	manager    *Manager
	conn       *websocket.Conn
	dispatcher *Dispatcher

	// session is owned by the read pump goroutine. Commands are dispatched
	// sequentially, so no locking is needed around it.
	session *Session

	// send queues outbound events for the write pump.
	send chan []byte

	// mu guards closed. Emit and close may race with each other when a
	// chain finishes after the connection is gone.
	mu     sync.Mutex
	closed bool

	logger zerolog.Logger
}

// NewClient wraps an upgraded connection in a Client with a fresh
// unauthenticated session.
func NewClient(manager *Manager, wsConn *websocket.Conn, dispatcher *Dispatcher) *Client {
	id := randx.ConnectionID()

	clientLogger := logx.Logger().With().
		Str("connection_id", id).
		Logger()

	return &Client{
		id:         id,
		manager:    manager,
		conn:       wsConn,
		dispatcher: dispatcher,
		session:    NewSession(),
		send:       make(chan []byte, sendQueueSize),
		logger:     clientLogger,
	}
}

// Session exposes the connection's session for inspection.
func (c *Client) Session() *Session {
	return c.session
}

// Emit implements Emitter. Events queued after the connection is gone, or
// while the queue is full, are dropped; a late aggregation response to a
// closed connection is not an error.
func (c *Client) Emit(event string, data any) {
	payload, err := json.Marshal(Event{Name: event, Data: data})
	if err != nil {
		c.logger.Error().Err(err).Str("event", event).Msg("Error marshaling outbound event.")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.logger.Debug().Str("event", event).Msg("Connection gone, outbound event discarded.")
		return
	}

	select {
	case c.send <- payload:
	default:
		c.logger.Warn().Str("event", event).Int("queue_len", len(c.send)).Msg("Send queue full, dropping event.")
	}
}

// close marks the client closed and releases the write pump. Idempotent.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ReadPump reads inbound messages and dispatches them until the connection
// drops. Commands are handled sequentially in arrival order; a handler may
// block on collaborator calls, during which later commands simply wait.
func (c *Client) ReadPump(ctx context.Context) {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		var cmd Command
		if err := json.Unmarshal(messageBytes, &cmd); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid JSON.")
			continue
		}

		if cmd.Name == "" {
			c.logger.Warn().Msg("Client sent command without a name.")
			continue
		}

		c.dispatcher.Dispatch(ctx, c.session, c, cmd)
	}
}

// cleanupOnDisconnect tears the connection down: disconnect implies logout,
// then the manager forgets the client and the socket is closed.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.session.Logout()
	c.manager.unregister(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// WritePump writes queued events to the connection and keeps the heartbeat
// going. It exits when the send queue is closed or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage writes one event pulled from the send queue. Returns
// false when the write pump should terminate.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends one heartbeat Ping. Returns false when the write
// pump should terminate.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Debug().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
