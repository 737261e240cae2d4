package collab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManagerRegisterAndUnregister(t *testing.T) {
	m := NewManager()
	c := newDetachedClient()
	c.manager = m

	require.Equal(t, 0, m.Count())

	m.Register(c)
	require.Equal(t, 1, m.Count())

	m.unregister(c)
	require.Equal(t, 0, m.Count())

	// A second unregister for the same client is ignored and must not close
	// the send queue twice.
	require.NotPanics(t, func() {
		m.unregister(c)
	})
}

func TestManagerUnregisterUnknownClient(t *testing.T) {
	m := NewManager()
	c := newDetachedClient()
	c.manager = m

	require.NotPanics(t, func() {
		m.unregister(c)
	})
	require.Equal(t, 0, m.Count())
}
