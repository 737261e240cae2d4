/*
Package users implements the user collaborator: account lookup,
authentication, registration, and the email verification flow.

The socket layer talks to it exclusively through the Service interface and
forwards its status strings verbatim to clients.
*/
package users

import "context"

// Status values returned by the user collaborator. They travel to the client
// unchanged inside command responses.
const (
	// StatusSuccess indicates the operation completed.
	StatusSuccess = "success"

	// StatusNoUser indicates no account exists for the given username.
	StatusNoUser = "nouser"

	// StatusBadPassword indicates the password did not match.
	StatusBadPassword = "badpassword"

	// StatusNotVerified indicates the account exists but its email address
	// has not been verified yet.
	StatusNotVerified = "notverified"

	// StatusBadUsername indicates the username failed validation.
	StatusBadUsername = "badusername"

	// StatusUserExists indicates the username is already taken.
	StatusUserExists = "userexists"

	// StatusBadEmail indicates the email address failed validation.
	StatusBadEmail = "bademail"

	// StatusBadCode indicates the verification token did not match.
	StatusBadCode = "badcode"
)

// AuthResult is the outcome of an authentication attempt. On success it
// carries the identity snapshot the connection session copies at login time.
type AuthResult struct {
	Status         string `json:"status"`
	UserID         string `json:"userid,omitempty"`
	ForumAdmin     bool   `json:"forumAdmin,omitempty"`
	ForumModerator bool   `json:"forumModerator,omitempty"`
}

// GlobalUserSettings is the account policy sent to clients on request, so
// registration forms can validate input before submitting.
type GlobalUserSettings struct {
	MinUsernameLength int `json:"minUsernameLength"`
	MaxUsernameLength int `json:"maxUsernameLength"`
	MinPasswordLength int `json:"minPasswordLength"`
}

// Service is the user collaborator contract consumed by the socket layer.
// Methods return a protocol status for business outcomes; the error return
// is reserved for infrastructure faults.
type Service interface {
	// Authenticate checks the credentials for username.
	Authenticate(ctx context.Context, username, password string) (AuthResult, error)

	// CreateUser registers a new unverified account and sends the
	// verification email.
	CreateUser(ctx context.Context, username, realname, email string) (string, error)

	// ResendVerificationEmail re-sends the verification email for an
	// unverified account. It reports nothing back to the caller beyond
	// infrastructure faults.
	ResendVerificationEmail(ctx context.Context, username string) error

	// VerifyEmail marks the account's email address verified when the token
	// matches.
	VerifyEmail(ctx context.Context, username, token string) (string, error)

	// GlobalUserSettings returns the account policy.
	GlobalUserSettings() GlobalUserSettings
}
