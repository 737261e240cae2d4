/*
Package collab contains the connection session and command dispatch layer of
the collaboration server.

This file holds the account command handlers: login, registration, the email
verification flow, and the global user settings lookup.
*/
package collab

import (
	"context"
	"encoding/json"
)

type loginData struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// handleLogin authenticates the connection. This is the one command that
// always answers after its shape check passes, success or not. The shape
// check runs before the already-signed-in check; a malformed login gets
// nouser even from an authenticated session.
func (d *Dispatcher) handleLogin(ctx context.Context, sess *Session, out Emitter, raw json.RawMessage) {
	var data loginData
	if err := unmarshalData(raw, &data); err != nil || data.Username == nil || data.Password == nil {
		out.Emit(eventLoginResponse, statusOnly(statusNoUser))
		return
	}

	// A second login on a signed-in connection is dropped without a reply.
	if sess.Authenticated {
		return
	}

	result, err := d.users.Authenticate(ctx, *data.Username, *data.Password)
	if err != nil {
		d.logger.Error().Err(err).Msg("Authenticate collaborator failed.")
		out.Emit(eventLoginResponse, statusOnly(statusError))
		return
	}

	if result.Status == statusSuccess {
		sess.Login(result.UserID, result.ForumAdmin, result.ForumModerator)
	}

	out.Emit(eventLoginResponse, result)
}

type createUserData struct {
	Username *string `json:"username"`
	Realname *string `json:"realname"`
	Email    *string `json:"email"`
}

// handleCreateUser registers a new account. A malformed payload and a
// registration attempt from a signed-in connection both answer badusername.
func (d *Dispatcher) handleCreateUser(ctx context.Context, sess *Session, out Emitter, raw json.RawMessage) {
	var data createUserData
	if err := unmarshalData(raw, &data); err != nil ||
		data.Username == nil || data.Realname == nil || data.Email == nil ||
		sess.Authenticated {
		out.Emit(eventCreateUserResponse, statusOnly(statusBadUsername))
		return
	}

	status, err := d.users.CreateUser(ctx, *data.Username, *data.Realname, *data.Email)
	if err != nil {
		d.logger.Error().Err(err).Msg("CreateUser collaborator failed.")
		out.Emit(eventCreateUserResponse, statusOnly(statusError))
		return
	}

	out.Emit(eventCreateUserResponse, statusOnly(status))
}

type resendVerificationData struct {
	Username *string `json:"username"`
}

// handleResendVerificationEmail asks the user collaborator to re-send the
// verification mail. The command never answers, whatever happens.
func (d *Dispatcher) handleResendVerificationEmail(ctx context.Context, sess *Session, raw json.RawMessage) {
	var data resendVerificationData
	if err := unmarshalData(raw, &data); err != nil || data.Username == nil || sess.Authenticated {
		return
	}

	if err := d.users.ResendVerificationEmail(ctx, *data.Username); err != nil {
		d.logger.Error().Err(err).Msg("ResendVerificationEmail collaborator failed.")
	}
}

type verifyEmailData struct {
	Username *string `json:"username"`
	Token    *string `json:"token"`
}

// handleVerifyEmail completes the email verification flow. A malformed
// payload and an attempt from a signed-in connection both answer badcode.
func (d *Dispatcher) handleVerifyEmail(ctx context.Context, sess *Session, out Emitter, raw json.RawMessage) {
	var data verifyEmailData
	if err := unmarshalData(raw, &data); err != nil ||
		data.Username == nil || data.Token == nil ||
		sess.Authenticated {
		out.Emit(eventVerifyEmailResponse, statusOnly(statusBadCode))
		return
	}

	status, err := d.users.VerifyEmail(ctx, *data.Username, *data.Token)
	if err != nil {
		d.logger.Error().Err(err).Msg("VerifyEmail collaborator failed.")
		out.Emit(eventVerifyEmailResponse, statusOnly(statusError))
		return
	}

	out.Emit(eventVerifyEmailResponse, statusOnly(status))
}
