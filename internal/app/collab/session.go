/*
Package collab contains the connection session and command dispatch layer of
the collaboration server.

This file defines the per-connection Session and the permission gate that
decides whether a session may invoke a command.
*/
package collab

// Session is the authentication state of a single connection. Exactly one
// Session exists per connection; it is created unauthenticated at connect,
// mutated only by the login success path and by logout, and discarded at
// disconnect. It is owned exclusively by the connection's read loop and
// never shared or persisted.
type Session struct {
	// Authenticated reports whether the connection has completed a login.
	Authenticated bool

	// UserID is the identity established at login, empty otherwise.
	UserID string

	// ForumAdmin and ForumModerator are the role flags copied from the user
	// collaborator's response at login time. They are a snapshot: revoking a
	// role does not affect connections that are already signed in.
	ForumAdmin     bool
	ForumModerator bool
}

// NewSession returns a fresh unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// Login upgrades the session with the identity snapshot from a successful
// authentication.
func (s *Session) Login(userID string, forumAdmin, forumModerator bool) {
	s.Authenticated = true
	s.UserID = userID
	s.ForumAdmin = forumAdmin
	s.ForumModerator = forumModerator
}

// Logout resets the session to its initial state. Calling it on an
// unauthenticated session is a no-op.
func (s *Session) Logout() {
	if !s.Authenticated {
		return
	}
	*s = Session{}
}

// Capability is the access level a command requires.
type Capability int

const (
	// CapabilityNone lets any session through.
	CapabilityNone Capability = iota

	// CapabilityAuthenticated requires a completed login.
	CapabilityAuthenticated

	// CapabilityForumAdmin requires a completed login whose snapshot has the
	// forum admin flag set.
	CapabilityForumAdmin
)

// Allowed reports whether the session satisfies the required capability.
// The forum admin check requires the flag itself; an authenticated session
// without it is denied.
func Allowed(s *Session, c Capability) bool {
	switch c {
	case CapabilityNone:
		return true
	case CapabilityAuthenticated:
		return s.Authenticated
	case CapabilityForumAdmin:
		return s.Authenticated && s.ForumAdmin
	default:
		return false
	}
}
