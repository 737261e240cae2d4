/*
Package collab contains the connection session and command dispatch layer of
the collaboration server.

This file defines the Dispatcher, which routes inbound commands to their
handlers. Every handler runs the same ordered checks before doing work:
payload shape, session state, permission, and only then the command itself.
What happens when a check fails is deliberately not uniform across commands
(some answer with a status, some say nothing); each handler encodes its own
policy and the tests pin it down.
*/
package collab

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/MessiahAndrw/Collaborate/internal/app/discussions"
	"github.com/MessiahAndrw/Collaborate/internal/app/settings"
	"github.com/MessiahAndrw/Collaborate/internal/app/users"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/logx"
)

// Emitter queues one outbound event for a connection. Implemented by Client;
// tests substitute a recorder. Emitting to a connection that is already gone
// must be harmless.
type Emitter interface {
	Emit(event string, data any)
}

// Dispatcher routes inbound commands to handlers. It is stateless across
// commands and safe to share between connections; all per-connection state
// lives in the Session passed to Dispatch.
type Dispatcher struct {
	users       users.Service
	discussions discussions.Service
	global      settings.Global
	logger      zerolog.Logger
}

// NewDispatcher wires the dispatcher to its collaborators and the immutable
// global settings.
func NewDispatcher(usersSvc users.Service, discussionsSvc discussions.Service, global settings.Global) *Dispatcher {
	return &Dispatcher{
		users:       usersSvc,
		discussions: discussionsSvc,
		global:      global,
		logger:      logx.Logger().With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch executes one command against the given session, sending any
// responses through out. Unknown command names are dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *Session, out Emitter, cmd Command) {
	switch cmd.Name {
	case CmdLogin:
		d.handleLogin(ctx, sess, out, cmd.Data)

	case CmdCreateUser:
		d.handleCreateUser(ctx, sess, out, cmd.Data)

	case CmdResendVerificationEmail:
		d.handleResendVerificationEmail(ctx, sess, cmd.Data)

	case CmdVerifyEmail:
		d.handleVerifyEmail(ctx, sess, out, cmd.Data)

	case CmdLogout:
		sess.Logout()

	case CmdGetGlobalUserSettings:
		out.Emit(eventGlobalUserSettings, d.users.GlobalUserSettings())

	case CmdLoadHomePage:
		d.handleLoadHomePage(ctx, out)

	case CmdRecentThreads:
		d.handleRecentThreads(ctx, sess, out)

	case CmdLoadDiscussions:
		d.handleLoadDiscussions(ctx, sess, out)

	case CmdCreateForum:
		d.handleCreateForum(ctx, sess, out, cmd.Data)

	case CmdSetForumTitle:
		d.handleSetForumTitle(ctx, sess, out, cmd.Data)

	case CmdDeleteForum:
		d.handleDeleteForum(ctx, sess, out, cmd.Data)

	default:
		d.logger.Warn().Str("command", cmd.Name).Msg("Unknown command dropped.")
	}
}

// unmarshalData decodes a command payload into dst. A missing payload or one
// that is not a structured object is a shape error. Required fields are
// declared as pointers on the destination struct so handlers can tell a
// missing field from an empty one.
func unmarshalData(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return errors.New("missing payload")
	}
	return json.Unmarshal(raw, dst)
}
