/*
Package main is the entry point for the Collaborate server.

It loads configuration, initializes the global logging system, connects to
the database and applies migrations, loads the site settings, builds the
collaborator services and the socket dispatch layer, and runs the HTTP
server until an interrupt signal arrives.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/smtp"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MessiahAndrw/Collaborate/internal/app/collab"
	"github.com/MessiahAndrw/Collaborate/internal/app/db"
	"github.com/MessiahAndrw/Collaborate/internal/app/discussions"
	"github.com/MessiahAndrw/Collaborate/internal/app/settings"
	"github.com/MessiahAndrw/Collaborate/internal/app/users"
	"github.com/MessiahAndrw/Collaborate/internal/configs"
	"github.com/MessiahAndrw/Collaborate/internal/handler"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database and apply migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize database")
	}
	defer pool.Close()

	// Load the site settings. The Global half is pushed to every new
	// connection and never changes while the process runs.
	global, server, err := settings.Load(ctx, pool)
	if err != nil {
		logx.Fatal(err, "Failed to load site settings")
	}

	var mailer users.Mailer
	if cfg.SMTPHost != "" {
		var auth smtp.Auth
		if cfg.SMTPUsername != "" {
			auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
		}
		mailer = &users.SMTPMailer{
			Addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
			From: server.EmailAddress,
			Auth: auth,
		}
	} else {
		mailer = users.NewLogMailer()
	}

	// Build the collaborator services and the socket dispatch layer
	usersService := users.NewPostgresService(pool, mailer, server.SiteAddress)
	discussionsService := discussions.NewPostgresService(pool)

	dispatcher := collab.NewDispatcher(usersService, discussionsService, global)
	manager := collab.NewManager()

	// Setup HTTP server and routes
	router := handler.Router(&handler.AppDeps{
		Manager:    manager,
		Dispatcher: dispatcher,
		Config:     cfg,
		Global:     global,
	})

	port := server.Port
	if port == 0 {
		port = cfg.Port
	}

	serverAddr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 5 * time.Second,
		// No WriteTimeout: WebSocket connections outlive any sane value.
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Collaborate server starting on http://localhost%s", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	manager.Shutdown()

	logx.Info("Server gracefully stopped.")
}
