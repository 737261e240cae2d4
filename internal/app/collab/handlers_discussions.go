/*
Package collab contains the connection session and command dispatch layer of
the collaboration server.

This file holds the discussion command handlers: the read aggregations and
the forum management operations. Aggregation chains are strictly sequential;
each step runs only after the previous one succeeded, so a response never
mixes results from inconsistent snapshots.
*/
package collab

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/MessiahAndrw/Collaborate/internal/app/discussions"
)

type threadsResponse struct {
	Threads []discussions.Thread `json:"threads"`
}

type loadDiscussionsResponse struct {
	Threads []discussions.Thread `json:"threads"`
	Posts   []discussions.Post   `json:"posts"`
	Forums  []discussions.Forum  `json:"forums"`
}

type forumListResponse struct {
	Status string              `json:"status"`
	Forums []discussions.Forum `json:"forums"`
}

// publicRead reports whether the session may run the public-gated read
// commands: any authenticated session, or anyone when public access is on.
func (d *Dispatcher) publicRead(sess *Session) bool {
	return sess.Authenticated || d.global.PublicAccess
}

// handleLoadHomePage answers with the recent thread list. The home page
// reply goes out even when the lookup fails; the client renders an empty
// list.
func (d *Dispatcher) handleLoadHomePage(ctx context.Context, out Emitter) {
	_, threads, err := d.discussions.GetRecentThreads(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("GetRecentThreads collaborator failed.")
	}

	out.Emit(eventLoadHomePageResponse, threadsResponse{Threads: threads})
}

// handleRecentThreads answers with the recent thread list for sessions
// allowed to read. A failed lookup is swallowed: no response at all.
func (d *Dispatcher) handleRecentThreads(ctx context.Context, sess *Session, out Emitter) {
	if !d.publicRead(sess) {
		return
	}

	status, threads, err := d.discussions.GetRecentThreads(ctx)
	if err != nil || status != discussions.StatusSuccess {
		d.logWarnStatus("recentThreads", status, err)
		return
	}

	out.Emit(eventRecentThreadsResponse, threadsResponse{Threads: threads})
}

// handleLoadDiscussions runs the three-step read chain: recent threads, then
// recent posts, then the forum list. Each step runs only after the previous
// one succeeded; any non-success aborts the whole chain with no response, so
// the client never sees a partially assembled snapshot.
func (d *Dispatcher) handleLoadDiscussions(ctx context.Context, sess *Session, out Emitter) {
	if !d.publicRead(sess) {
		return
	}

	status, threads, err := d.discussions.GetRecentThreads(ctx)
	if err != nil || status != discussions.StatusSuccess {
		d.logWarnStatus("loadDiscussions/threads", status, err)
		return
	}

	status, posts, err := d.discussions.GetRecentPosts(ctx)
	if err != nil || status != discussions.StatusSuccess {
		d.logWarnStatus("loadDiscussions/posts", status, err)
		return
	}

	status, forums, err := d.discussions.GetDiscussionForums(ctx)
	if err != nil || status != discussions.StatusSuccess {
		d.logWarnStatus("loadDiscussions/forums", status, err)
		return
	}

	out.Emit(eventLoadDiscussionsResponse, loadDiscussionsResponse{
		Threads: threads,
		Posts:   posts,
		Forums:  forums,
	})
}

type createForumData struct {
	Title *string `json:"title"`
}

// handleCreateForum creates a forum. Not signed in or malformed payload:
// silent drop. Signed in without the admin flag: nopermission. Title empty
// after trimming: badname, without touching the collaborator.
func (d *Dispatcher) handleCreateForum(ctx context.Context, sess *Session, out Emitter, raw json.RawMessage) {
	var data createForumData
	if err := unmarshalData(raw, &data); err != nil || data.Title == nil ||
		!Allowed(sess, CapabilityAuthenticated) {
		return
	}

	if !Allowed(sess, CapabilityForumAdmin) {
		out.Emit(eventCreateForumResponse, statusOnly(statusNoPermission))
		return
	}

	title := strings.TrimSpace(*data.Title)
	if title == "" {
		out.Emit(eventCreateForumResponse, statusOnly(statusBadName))
		return
	}

	status, err := d.discussions.CreateDiscussionForum(ctx, title)
	if err != nil {
		d.logger.Error().Err(err).Msg("CreateDiscussionForum collaborator failed.")
		status = statusError
	}
	if status != discussions.StatusSuccess {
		out.Emit(eventCreateForumResponse, statusOnly(status))
		return
	}

	d.emitForumList(ctx, out, eventCreateForumResponse)
}

type setForumTitleData struct {
	ID    *string `json:"id"`
	Title *string `json:"title"`
}

// handleSetForumTitle renames a forum, with the same check ladder as
// handleCreateForum.
func (d *Dispatcher) handleSetForumTitle(ctx context.Context, sess *Session, out Emitter, raw json.RawMessage) {
	var data setForumTitleData
	if err := unmarshalData(raw, &data); err != nil || data.ID == nil || data.Title == nil ||
		!Allowed(sess, CapabilityAuthenticated) {
		return
	}

	if !Allowed(sess, CapabilityForumAdmin) {
		out.Emit(eventSetForumTitleResponse, statusOnly(statusNoPermission))
		return
	}

	title := strings.TrimSpace(*data.Title)
	if title == "" {
		out.Emit(eventSetForumTitleResponse, statusOnly(statusBadName))
		return
	}

	status, err := d.discussions.SetDiscussionForumTitle(ctx, *data.ID, title)
	if err != nil {
		d.logger.Error().Err(err).Msg("SetDiscussionForumTitle collaborator failed.")
		status = statusError
	}
	if status != discussions.StatusSuccess {
		out.Emit(eventSetForumTitleResponse, statusOnly(status))
		return
	}

	d.emitForumList(ctx, out, eventSetForumTitleResponse)
}

type deleteForumData struct {
	ID *string `json:"id"`
}

// handleDeleteForum removes a forum, with the same check ladder as
// handleCreateForum minus the title validation.
func (d *Dispatcher) handleDeleteForum(ctx context.Context, sess *Session, out Emitter, raw json.RawMessage) {
	var data deleteForumData
	if err := unmarshalData(raw, &data); err != nil || data.ID == nil ||
		!Allowed(sess, CapabilityAuthenticated) {
		return
	}

	if !Allowed(sess, CapabilityForumAdmin) {
		out.Emit(eventDeleteForumResponse, statusOnly(statusNoPermission))
		return
	}

	status, err := d.discussions.DeleteDiscussionForum(ctx, *data.ID)
	if err != nil {
		d.logger.Error().Err(err).Msg("DeleteDiscussionForum collaborator failed.")
		status = statusError
	}
	if status != discussions.StatusSuccess {
		out.Emit(eventDeleteForumResponse, statusOnly(status))
		return
	}

	d.emitForumList(ctx, out, eventDeleteForumResponse)
}

// emitForumList is the closing step of every successful forum mutation: it
// re-fetches the full forum list and folds it into the response, so the
// client always receives the post-mutation state. If the re-fetch fails, its
// status is forwarded without a list.
func (d *Dispatcher) emitForumList(ctx context.Context, out Emitter, event string) {
	status, forums, err := d.discussions.GetDiscussionForums(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("GetDiscussionForums collaborator failed.")
		status = statusError
	}
	if status != discussions.StatusSuccess {
		out.Emit(event, statusOnly(status))
		return
	}

	out.Emit(event, forumListResponse{Status: statusSuccess, Forums: forums})
}

// logWarnStatus records a swallowed chain failure. The client gets nothing;
// the log is the only trace.
func (d *Dispatcher) logWarnStatus(step, status string, err error) {
	if err != nil {
		d.logger.Error().Err(err).Str("step", step).Msg("Aggregation step failed.")
		return
	}
	d.logger.Warn().Str("step", step).Str("status", status).Msg("Aggregation step reported non-success.")
}
