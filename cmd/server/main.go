// Package main is the entry point for the microsoft-teams-actions server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekipalen/microsoft-teams-actions/internal/auth"
	"github.com/ekipalen/microsoft-teams-actions/internal/chats"
	"github.com/ekipalen/microsoft-teams-actions/internal/config"
	"github.com/ekipalen/microsoft-teams-actions/internal/graph"
	"github.com/ekipalen/microsoft-teams-actions/internal/safety"
	"github.com/ekipalen/microsoft-teams-actions/internal/teams"
	"github.com/ekipalen/microsoft-teams-actions/internal/tools"
	"github.com/ekipalen/microsoft-teams-actions/internal/users"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/oauth2"
)

const defaultConfigPath = "config.yaml"

func main() {
	// Load a .env file when present; a missing file is not an error.
	_ = godotenv.Load()

	cfg := loadConfig()
	config.ApplyEnvOverrides(cfg)

	tokenBefore := cfg.Server.AuthToken
	token, err := config.EnsureAuthToken(cfg)
	if err != nil {
		log.Printf("warning: could not generate auth token: %v; running without authentication", err)
	} else if tokenBefore == "" {
		log.Printf("generated auth token (set TEAMS_MCP_AUTH_TOKEN to persist): %s", token)
	}

	// The outbound Graph token is injected, never acquired here. Without it
	// every tool would fail, so refuse to start.
	if cfg.Graph.AccessToken == "" {
		log.Fatal("no Graph access token configured: set MSGRAPH_ACCESS_TOKEN or graph.access_token")
	}

	// Open audit log writer if enabled.
	var auditLogger *safety.AuditLogger
	if cfg.Audit.Enabled {
		f, err := os.OpenFile(cfg.Audit.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			log.Printf("warning: could not open audit log %q: %v; audit logging disabled", cfg.Audit.LogPath, err)
		} else {
			auditLogger = safety.NewAuditLogger(f)
			defer f.Close()
		}
	}

	// Build safety filters.
	teamFilter := safety.NewFilter(
		cfg.Safety.Teams.Allowlist,
		cfg.Safety.Teams.Denylist,
	)
	channelFilter := safety.NewFilter(
		cfg.Safety.Channels.Allowlist,
		cfg.Safety.Channels.Denylist,
	)

	// Build the shared Graph client and domain managers.
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Graph.AccessToken})
	graphClient, err := graph.NewHTTPClient(cfg.Graph, tokenSource)
	if err != nil {
		log.Fatalf("failed to create Graph client: %v", err)
	}

	teamMgr := teams.NewGraphTeamManager(graphClient)
	userMgr := users.NewGraphUserManager(graphClient)
	chatMgr := chats.NewGraphChatManager(graphClient)

	// Build MCP server.
	mcpServer := server.NewMCPServer(
		"microsoft-teams-actions",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	// Register all tools.
	var registrations []tools.Registration
	registrations = append(registrations, teams.TeamTools(teamMgr, teamFilter, channelFilter, auditLogger)...)
	registrations = append(registrations, users.UserTools(userMgr, auditLogger)...)
	registrations = append(registrations, chats.ChatTools(chatMgr, auditLogger)...)

	tools.RegisterAll(mcpServer, registrations)

	// Build Streamable HTTP server and wrap with auth middleware.
	httpHandler := server.NewStreamableHTTPServer(mcpServer)
	authMiddleware := auth.NewAuthMiddleware(cfg.Server.AuthToken)
	wrappedHandler := authMiddleware(httpHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           wrappedHandler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("microsoft-teams-actions listening on %s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-stop
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
	log.Println("server stopped")
}

// loadConfig attempts to read the config file from the path specified by
// TEAMS_MCP_CONFIG_PATH or the default config.yaml. If the file cannot be
// read, DefaultConfig is returned.
func loadConfig() *config.Config {
	path := os.Getenv("TEAMS_MCP_CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("could not load config from %q (%v), using defaults", path, err)
		return config.DefaultConfig()
	}

	log.Printf("loaded config from %q", path)
	return cfg
}
