package collab

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// newDetachedClient builds a client with no underlying connection, enough to
// exercise the outbound queue paths.
func newDetachedClient() *Client {
	return &Client{
		id:      "test-conn",
		session: NewSession(),
		send:    make(chan []byte, 2),
		logger:  zerolog.Nop(),
	}
}

func TestEmitQueuesEvent(t *testing.T) {
	c := newDetachedClient()

	c.Emit("recentThreadsResponse", statusOnly("success"))

	require.Len(t, c.send, 1)
	require.JSONEq(t,
		`{"event":"recentThreadsResponse","data":{"status":"success"}}`,
		string(<-c.send))
}

func TestEmitAfterCloseIsDiscarded(t *testing.T) {
	// A chain finishing after disconnect emits to a closed client; that must
	// be a harmless no-op, not a panic on a closed channel.
	c := newDetachedClient()
	c.close()

	require.NotPanics(t, func() {
		c.Emit("loadDiscussionsResponse", statusOnly("success"))
	})
}

func TestEmitDropsWhenQueueFull(t *testing.T) {
	c := newDetachedClient()

	c.Emit("a", statusOnly("success"))
	c.Emit("b", statusOnly("success"))
	require.NotPanics(t, func() {
		c.Emit("c", statusOnly("success"))
	})

	require.Len(t, c.send, 2)
}

func TestCloseIsIdempotent(t *testing.T) {
	c := newDetachedClient()

	require.NotPanics(t, func() {
		c.close()
		c.close()
	})
}
