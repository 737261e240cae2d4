/*
Package collab contains the connection session and command dispatch layer of
the collaboration server.

This file defines the Manager, which tracks every active connection so the
process can drain them on shutdown. Sessions never live here; each one stays
with its own Client.
*/
package collab

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/MessiahAndrw/Collaborate/internal/pkg/logx"
)

// Manager tracks the set of active connections.
type Manager struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  zerolog.Logger
}

// NewManager returns an empty connection manager.
func NewManager() *Manager {
	return &Manager{
		clients: make(map[*Client]struct{}),
		logger:  logx.Logger().With().Str("component", "Manager").Logger(),
	}
}

// Register adds a freshly upgraded connection.
func (m *Manager) Register(c *Client) {
	m.mu.Lock()
	m.clients[c] = struct{}{}
	total := len(m.clients)
	m.mu.Unlock()

	m.logger.Info().Str("connection_id", c.id).Int("total_connections", total).Msg("Connection registered.")
}

// unregister forgets a connection and releases its write pump. Safe to call
// for a connection that was already removed.
func (m *Manager) unregister(c *Client) {
	m.mu.Lock()
	_, known := m.clients[c]
	if known {
		delete(m.clients, c)
	}
	total := len(m.clients)
	m.mu.Unlock()

	if !known {
		return
	}

	c.close()
	m.logger.Info().Str("connection_id", c.id).Int("total_connections", total).Msg("Connection unregistered.")
}

// Count returns the number of active connections.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.clients)
}

// Shutdown closes every active connection. Their read pumps notice the
// closed sockets and run the normal per-connection cleanup.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	clients := make([]*Client, 0, len(m.clients))
	for c := range m.clients {
		clients = append(clients, c)
	}
	m.mu.Unlock()

	m.logger.Info().Int("total_connections", len(clients)).Msg("Shutting down Manager, closing connections.")

	for _, c := range clients {
		if err := c.conn.Close(); err != nil {
			m.logger.Debug().Err(err).Str("connection_id", c.id).Msg("Close error during shutdown.")
		}
	}
}
