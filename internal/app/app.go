package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"mediadeck/backend/internal/api"
	"mediadeck/backend/internal/config"
	"mediadeck/backend/internal/database"
	"mediadeck/backend/internal/media"
	"mediadeck/backend/internal/metrics"
	"mediadeck/backend/internal/repository"
	"mediadeck/backend/internal/upstream"
)

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	checkUpstream(cfg.UpstreamURL)

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Info("Successfully connected to SQLite database.")

	store := repository.NewSQLiteStore(db)
	client := upstream.NewHTTPClient(cfg.UpstreamURL, cfg.UpstreamToken)
	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	mediaService := media.NewService(client, store, m, cfg.PromptScanLimit)
	mediaService.WarmFromStore(context.Background())

	mediaHandler := api.NewMediaHandler(mediaService)
	router := api.NewRouter(mediaHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		// Prompt recovery can scan many chats, so writes stay unbounded;
		// the router applies per-group timeouts instead.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// checkUpstream probes the chat platform once at startup. The resolvers
// degrade to "not found" on upstream failures, so an unreachable platform is
// a warning, not a fatal condition.
func checkUpstream(upstreamURL string) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(upstreamURL)
	if err != nil {
		slog.Warn("Chat platform is not reachable yet, continuing anyway.", "url", upstreamURL, "error", err)
		return
	}
	if bErr := resp.Body.Close(); bErr != nil {
		slog.Warn("Failed to close response body in upstream health check", "error", bErr)
	}
	slog.Info("Chat platform is reachable.", "url", upstreamURL, "status", resp.StatusCode)
}
