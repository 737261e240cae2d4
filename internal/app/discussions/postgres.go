package discussions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/MessiahAndrw/Collaborate/internal/pkg/logx"
)

// PostgresService is the pgx-backed Service implementation.
type PostgresService struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresService returns a Service backed by the given connection pool.
func NewPostgresService(pool *pgxpool.Pool) *PostgresService {
	return &PostgresService{
		pool:   pool,
		logger: logx.Logger().With().Str("component", "discussions").Logger(),
	}
}

// GetRecentThreads lists the newest threads across all forums.
func (s *PostgresService) GetRecentThreads(ctx context.Context) (string, []Thread, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, forum_id, title, COALESCE(author_id::text, ''), created_at
		 FROM threads ORDER BY created_at DESC LIMIT $1`,
		RecentLimit,
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to query recent threads: %w", err)
	}
	defer rows.Close()

	threads := make([]Thread, 0, RecentLimit)
	for rows.Next() {
		var (
			t       Thread
			id      uuid.UUID
			forumID uuid.UUID
		)
		if err := rows.Scan(&id, &forumID, &t.Title, &t.AuthorID, &t.CreatedAt); err != nil {
			return "", nil, fmt.Errorf("failed to scan thread row: %w", err)
		}
		t.ID = id.String()
		t.ForumID = forumID.String()
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("failed to read thread rows: %w", err)
	}

	return StatusSuccess, threads, nil
}

// GetRecentPosts lists the newest posts across all threads.
func (s *PostgresService) GetRecentPosts(ctx context.Context) (string, []Post, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, thread_id, COALESCE(author_id::text, ''), body, created_at
		 FROM posts ORDER BY created_at DESC LIMIT $1`,
		RecentLimit,
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to query recent posts: %w", err)
	}
	defer rows.Close()

	posts := make([]Post, 0, RecentLimit)
	for rows.Next() {
		var (
			p        Post
			id       uuid.UUID
			threadID uuid.UUID
		)
		if err := rows.Scan(&id, &threadID, &p.AuthorID, &p.Body, &p.CreatedAt); err != nil {
			return "", nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		p.ID = id.String()
		p.ThreadID = threadID.String()
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("failed to read post rows: %w", err)
	}

	return StatusSuccess, posts, nil
}

// GetDiscussionForums lists every forum in creation order.
func (s *PostgresService) GetDiscussionForums(ctx context.Context) (string, []Forum, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title FROM forums ORDER BY created_at ASC`,
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to query forums: %w", err)
	}
	defer rows.Close()

	forums := make([]Forum, 0)
	for rows.Next() {
		var (
			f  Forum
			id uuid.UUID
		)
		if err := rows.Scan(&id, &f.Title); err != nil {
			return "", nil, fmt.Errorf("failed to scan forum row: %w", err)
		}
		f.ID = id.String()
		forums = append(forums, f)
	}
	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("failed to read forum rows: %w", err)
	}

	return StatusSuccess, forums, nil
}

// CreateDiscussionForum creates a forum with the given title. Title
// validation happens in the dispatch layer; the title arrives trimmed and
// non-empty.
func (s *PostgresService) CreateDiscussionForum(ctx context.Context, title string) (string, error) {
	id := uuid.New()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO forums (id, title) VALUES ($1, $2)`,
		id, title,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert forum: %w", err)
	}

	s.logger.Info().Str("forum_id", id.String()).Str("title", title).Msg("Forum created.")
	return StatusSuccess, nil
}

// SetDiscussionForumTitle renames an existing forum.
func (s *PostgresService) SetDiscussionForumTitle(ctx context.Context, id, title string) (string, error) {
	forumID, err := uuid.Parse(id)
	if err != nil {
		return StatusNotFound, nil
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE forums SET title = $2 WHERE id = $1`,
		forumID, title,
	)
	if err != nil {
		return "", fmt.Errorf("failed to rename forum %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return StatusNotFound, nil
	}

	return StatusSuccess, nil
}

// DeleteDiscussionForum removes a forum. Its threads and posts go with it
// through the cascading foreign keys.
func (s *PostgresService) DeleteDiscussionForum(ctx context.Context, id string) (string, error) {
	forumID, err := uuid.Parse(id)
	if err != nil {
		return StatusNotFound, nil
	}

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM forums WHERE id = $1`,
		forumID,
	)
	if err != nil {
		return "", fmt.Errorf("failed to delete forum %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return StatusNotFound, nil
	}

	s.logger.Info().Str("forum_id", id).Msg("Forum deleted.")
	return StatusSuccess, nil
}
