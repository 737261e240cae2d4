package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/MessiahAndrw/Collaborate/internal/app/db"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/logx"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/randx"
)

// Account policy limits enforced on registration.
const (
	MinUsernameLength = 4
	MaxUsernameLength = 20
	MinPasswordLength = 6
)

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// PostgresService is the pgx-backed Service implementation.
type PostgresService struct {
	pool   *pgxpool.Pool
	mailer Mailer

	// siteAddress is the base URL used in verification links.
	siteAddress string

	logger zerolog.Logger
}

// NewPostgresService returns a Service backed by the given connection pool.
// Verification mail goes out through mailer with links pointing at
// siteAddress.
func NewPostgresService(pool *pgxpool.Pool, mailer Mailer, siteAddress string) *PostgresService {
	return &PostgresService{
		pool:        pool,
		mailer:      mailer,
		siteAddress: siteAddress,
		logger:      logx.Logger().With().Str("component", "users").Logger(),
	}
}

// Authenticate checks the credentials for username. Accounts with an
// unverified email address cannot sign in.
func (s *PostgresService) Authenticate(ctx context.Context, username, password string) (AuthResult, error) {
	var (
		id            uuid.UUID
		passwordHash  string
		emailVerified bool
		forumAdmin    bool
		forumMod      bool
	)

	err := s.pool.QueryRow(ctx,
		`SELECT id, password_hash, email_verified, forum_admin, forum_moderator
		 FROM users WHERE username = $1`,
		username,
	).Scan(&id, &passwordHash, &emailVerified, &forumAdmin, &forumMod)

	if errors.Is(err, pgx.ErrNoRows) {
		return AuthResult{Status: StatusNoUser}, nil
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to fetch user %q: %w", username, err)
	}

	if !emailVerified {
		return AuthResult{Status: StatusNotVerified}, nil
	}

	// Accounts whose password was never established carry an empty hash and
	// can never authenticate.
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return AuthResult{Status: StatusBadPassword}, nil
	}

	return AuthResult{
		Status:         StatusSuccess,
		UserID:         id.String(),
		ForumAdmin:     forumAdmin,
		ForumModerator: forumMod,
	}, nil
}

// CreateUser registers a new unverified account and sends the verification
// email. Mail delivery failures are logged, not surfaced; the client can ask
// for a resend.
func (s *PostgresService) CreateUser(ctx context.Context, username, realname, email string) (string, error) {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength || !usernameRegex.MatchString(username) {
		return StatusBadUsername, nil
	}

	if !emailRegex.MatchString(email) {
		return StatusBadEmail, nil
	}

	token, err := randx.VerificationToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification token: %w", err)
	}

	id := uuid.New()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (id, username, realname, email, verification_token)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, username, strings.TrimSpace(realname), email, token,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			s.logger.Warn().Str("username", username).Msg("Registration conflict: username already exists.")
			return StatusUserExists, nil
		}
		return "", fmt.Errorf("failed to insert user %q: %w", username, err)
	}

	if err := s.mailer.SendVerification(ctx, email, username, token, s.siteAddress); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("Failed to send verification email.")
	}

	return StatusSuccess, nil
}

// ResendVerificationEmail re-sends the verification email for an unverified
// account. Unknown usernames and already-verified accounts are ignored.
func (s *PostgresService) ResendVerificationEmail(ctx context.Context, username string) error {
	var (
		email         string
		emailVerified bool
		token         string
	)

	err := s.pool.QueryRow(ctx,
		`SELECT email, email_verified, verification_token FROM users WHERE username = $1`,
		username,
	).Scan(&email, &emailVerified, &token)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch user %q: %w", username, err)
	}

	if emailVerified {
		return nil
	}

	return s.mailer.SendVerification(ctx, email, username, token, s.siteAddress)
}

// VerifyEmail marks the account's email address verified when the token
// matches. Unknown usernames, already-verified accounts, and mismatched
// tokens all report badcode, so the response does not reveal which usernames
// exist.
func (s *PostgresService) VerifyEmail(ctx context.Context, username, token string) (string, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET email_verified = TRUE, verification_token = ''
		 WHERE username = $1 AND verification_token = $2
		   AND verification_token <> '' AND email_verified = FALSE`,
		username, token,
	)
	if err != nil {
		return "", fmt.Errorf("failed to verify email for %q: %w", username, err)
	}

	if tag.RowsAffected() == 0 {
		return StatusBadCode, nil
	}

	return StatusSuccess, nil
}

// GlobalUserSettings returns the account policy.
func (s *PostgresService) GlobalUserSettings() GlobalUserSettings {
	return GlobalUserSettings{
		MinUsernameLength: MinUsernameLength,
		MaxUsernameLength: MaxUsernameLength,
		MinPasswordLength: MinPasswordLength,
	}
}
