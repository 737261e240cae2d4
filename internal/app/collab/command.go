/*
Package collab contains the connection session and command dispatch layer of
the collaboration server.

This file defines the wire envelopes and the protocol's command, event, and
status names.
*/
package collab

import "encoding/json"

// Command is one inbound request: a command name plus an optional
// structured payload. The payload stays raw until the handler validates its
// shape.
type Command struct {
	Name string          `json:"command"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Event is one outbound message.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

// Inbound command names. Each command <x> that answers does so with the
// <x>Response event, except getGlobalUserSettings, which answers with
// globalUserSettings.
const (
	CmdLogin                   = "login"
	CmdCreateUser              = "createUser"
	CmdResendVerificationEmail = "resendVerificationEmail"
	CmdVerifyEmail             = "verifyEmail"
	CmdLogout                  = "logout"
	CmdGetGlobalUserSettings   = "getGlobalUserSettings"
	CmdLoadHomePage            = "loadHomePage"
	CmdRecentThreads           = "recentThreads"
	CmdLoadDiscussions         = "loadDiscussions"
	CmdCreateForum             = "createDiscussionForum"
	CmdSetForumTitle           = "setDiscussionForumTitle"
	CmdDeleteForum             = "deleteDiscussionForum"
)

// Outbound event names.
const (
	// EventGlobalSettings is pushed to every connection right after it is
	// established, with no command involved.
	EventGlobalSettings = "globalSettings"

	eventGlobalUserSettings      = "globalUserSettings"
	eventLoginResponse           = "loginResponse"
	eventCreateUserResponse      = "createUserResponse"
	eventVerifyEmailResponse     = "verifyEmailResponse"
	eventLoadHomePageResponse    = "loadHomePageResponse"
	eventRecentThreadsResponse   = "recentThreadsResponse"
	eventLoadDiscussionsResponse = "loadDiscussionsResponse"
	eventCreateForumResponse     = "createDiscussionForumResponse"
	eventSetForumTitleResponse   = "setDiscussionForumTitleResponse"
	eventDeleteForumResponse     = "deleteDiscussionForumResponse"
)

// Statuses produced by the dispatch layer itself. Collaborator statuses
// (users.Status*, discussions.Status*) pass through unchanged.
const (
	statusSuccess      = "success"
	statusNoUser       = "nouser"
	statusBadUsername  = "badusername"
	statusBadCode      = "badcode"
	statusNoPermission = "nopermission"
	statusBadName      = "badname"

	// statusError stands in for a collaborator that failed outright, on
	// commands whose policy is to always answer.
	statusError = "error"
)

// statusResponse is the minimal reply carrying only a status.
type statusResponse struct {
	Status string `json:"status"`
}

func statusOnly(status string) statusResponse {
	return statusResponse{Status: status}
}
