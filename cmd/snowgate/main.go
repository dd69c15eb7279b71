package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/snowgate/snowgate/internal/core"
	"github.com/snowgate/snowgate/internal/db"
	httpsvr "github.com/snowgate/snowgate/internal/http"
	mcpsvr "github.com/snowgate/snowgate/internal/mcp"
	"github.com/snowgate/snowgate/internal/servicenow"
	"github.com/snowgate/snowgate/internal/tools"
)

var (
	version   = ""
	gitCommit = ""
	buildTime = ""
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	instance := requireEnv("SERVICENOW_INSTANCE")

	var creds servicenow.Credentials
	authMode := strings.TrimSpace(envOrDefault("SERVICENOW_AUTH", "basic"))
	switch authMode {
	case "basic":
		creds = servicenow.BasicAuth{
			Username: requireEnv("SERVICENOW_USERNAME"),
			Password: requireEnv("SERVICENOW_PASSWORD"),
		}
	case "oauth_jwt":
		bearer, err := servicenow.NewOAuthJWTBearer(
			instance,
			requireEnv("SERVICENOW_OAUTH_CLIENT_ID"),
			requireEnv("SERVICENOW_OAUTH_SUBJECT"),
			requireEnv("SERVICENOW_OAUTH_KEY_PATH"),
		)
		if err != nil {
			logger.Error("oauth credentials init failed", "err", err)
			os.Exit(1)
		}
		creds = bearer
	default:
		logger.Error("invalid SERVICENOW_AUTH", "value", authMode, "allowed", "basic, oauth_jwt")
		os.Exit(1)
	}

	timeout := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("SERVICENOW_TIMEOUT_SECONDS")); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			logger.Error("invalid SERVICENOW_TIMEOUT_SECONDS", "value", raw)
			os.Exit(1)
		}
		timeout = time.Duration(secs) * time.Second
	}

	snClient, err := servicenow.NewClient(servicenow.Config{
		InstanceURL: instance,
		Credentials: creds,
		Timeout:     timeout,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("servicenow client init failed", "err", err)
		os.Exit(1)
	}

	var audit *core.AuditService
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		database, err := db.New(databaseURL)
		if err != nil {
			logger.Error("database connection failed", "err", err)
			os.Exit(1)
		}
		defer database.Close()
		audit = core.NewAuditService(database)
		logger.Info("audit trail enabled")
	}

	toolService := tools.NewService(snClient, audit, logger)

	httpAddr := envOrDefault("SNOWGATE_HTTP_LISTEN", "0.0.0.0:8080")
	mcpAddr := envOrDefault("SNOWGATE_MCP_LISTEN", "0.0.0.0:8090")

	logger.Info("effective config",
		"instance", instance,
		"auth", authMode,
		"timeout_seconds", int(timeout.Seconds()),
		"http_listen", httpAddr,
		"mcp_listen", mcpAddr,
	)

	httpServer := httpsvr.NewServer(httpAddr, toolService, audit, logger, httpsvr.BuildInfo{
		Version:   version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
	})
	mcpServer := mcpsvr.NewServer(mcpAddr, toolService, logger)

	errCh := make(chan error, 2)
	go func() { errCh <- httpServer.ListenAndServe() }()
	go func() { errCh <- mcpServer.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	httpServer.Shutdown(ctx)
	mcpServer.Shutdown(ctx)
	logger.Info("shutdown complete")
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required env var missing", "key", key)
		os.Exit(1)
	}
	return v
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
