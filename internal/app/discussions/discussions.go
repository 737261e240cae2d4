/*
Package discussions implements the discussion collaborator: recent threads
and posts, and the forum list with its management operations.

The socket layer consumes it through the Service interface; statuses travel
to clients unchanged.
*/
package discussions

import (
	"context"
	"time"
)

// Status values returned by the discussion collaborator.
const (
	// StatusSuccess indicates the operation completed.
	StatusSuccess = "success"

	// StatusNotFound indicates the referenced forum does not exist.
	StatusNotFound = "notfound"
)

// RecentLimit caps how many threads or posts a recent listing returns.
const RecentLimit = 20

// Forum is one discussion forum.
type Forum struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Thread is one discussion thread, listed newest first.
type Thread struct {
	ID        string    `json:"id"`
	ForumID   string    `json:"forumId"`
	Title     string    `json:"title"`
	AuthorID  string    `json:"authorId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is one post inside a thread, listed newest first.
type Post struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"threadId"`
	AuthorID  string    `json:"authorId,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service is the discussion collaborator contract consumed by the socket
// layer. Methods return a protocol status for business outcomes; the error
// return is reserved for infrastructure faults.
type Service interface {
	GetRecentThreads(ctx context.Context) (string, []Thread, error)
	GetRecentPosts(ctx context.Context) (string, []Post, error)
	GetDiscussionForums(ctx context.Context) (string, []Forum, error)
	CreateDiscussionForum(ctx context.Context, title string) (string, error)
	SetDiscussionForumTitle(ctx context.Context, id, title string) (string, error)
	DeleteDiscussionForum(ctx context.Context, id string) (string, error)
}
