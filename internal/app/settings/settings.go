/*
Package settings loads the site-wide settings stored in the database.

Settings are read once at startup and never mutated afterwards. The Global
part is broadcast to every new connection; the Server part stays internal to
the process.
*/
package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Setting keys recognized in the settings table.
const (
	KeyCommunityName  = "community_name"
	KeyWelcomeMessage = "welcome_message"
	KeyPublicAccess   = "public_access"
	KeyPort           = "port"
	KeyEmailAddress   = "email_address"
	KeySiteAddress    = "site_address"
)

// Global holds the settings pushed to every client on connect.
type Global struct {
	// CommunityName appears at the top of the site.
	CommunityName string `json:"communityName"`

	// WelcomeMessage appears on the home page.
	WelcomeMessage string `json:"welcomeMessage"`

	// PublicAccess permits unauthenticated sessions to run designated read
	// commands.
	PublicAccess bool `json:"publicAccess"`
}

// Server holds settings that are never sent to clients.
type Server struct {
	// Port the server should listen on. Zero means the setting is absent
	// and the process falls back to its environment configuration.
	Port int

	// EmailAddress is the sender address for outgoing mail.
	EmailAddress string

	// SiteAddress is the externally reachable base URL, used when building
	// links sent out via email.
	SiteAddress string
}

// Load reads all rows from the settings table and splits them into the
// client-visible and server-only halves.
func Load(ctx context.Context, pool *pgxpool.Pool) (Global, Server, error) {
	rows, err := pool.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return Global{}, Server{}, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Global{}, Server{}, fmt.Errorf("failed to scan setting row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return Global{}, Server{}, fmt.Errorf("failed to read settings rows: %w", err)
	}

	global, server := Parse(values)
	return global, server, nil
}

// Parse converts a raw key/value settings map into the typed halves.
// Unknown keys are ignored. The public_access flag is true only for the
// exact string "true".
func Parse(values map[string]string) (Global, Server) {
	global := Global{
		CommunityName:  values[KeyCommunityName],
		WelcomeMessage: values[KeyWelcomeMessage],
		PublicAccess:   values[KeyPublicAccess] == "true",
	}

	server := Server{
		EmailAddress: values[KeyEmailAddress],
		SiteAddress:  values[KeySiteAddress],
	}

	if portStr, ok := values[KeyPort]; ok {
		if port, err := strconv.Atoi(portStr); err == nil {
			server.Port = port
		}
	}

	return global, server
}
