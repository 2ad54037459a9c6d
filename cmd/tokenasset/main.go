package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/layer-3/tokenasset/adapters/activity"
	"github.com/layer-3/tokenasset/adapters/backend"
	"github.com/layer-3/tokenasset/adapters/events"
	"github.com/layer-3/tokenasset/adapters/store"
	"github.com/layer-3/tokenasset/adapters/tokenizer"
	"github.com/layer-3/tokenasset/internal/config"
	"github.com/layer-3/tokenasset/ports"
	"github.com/layer-3/tokenasset/service"
	httptransport "github.com/layer-3/tokenasset/transport/http"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		slog.Error("Gateway stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the gateway and serves until SIGINT/SIGTERM. Every resource it
// opens is closed by a deferred call before it returns.
func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Session state and event transport share Redis when configured
	var (
		sessionStore ports.Store
		publisher    message.Publisher
	)
	wmLogger := watermill.NewSlogLogger(logger)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("reach redis: %w", err)
		}

		publisher, err = redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			wmLogger,
		)
		if err != nil {
			return fmt.Errorf("create redis publisher: %w", err)
		}
		sessionStore = store.NewRedisStore(redisClient, store.WithKeyPrefix(cfg.RedisPrefix))
		slog.Info("Using Redis for sessions and events")
	} else {
		publisher = gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
		sessionStore = store.NewMemoryStore()
		slog.Info("REDIS_URL not set, using in-memory sessions and events")
	}
	defer publisher.Close()

	journal, err := activity.NewSQLiteStore(cfg.ActivityDBPath)
	if err != nil {
		return fmt.Errorf("open activity journal: %w", err)
	}
	defer func() {
		if closeErr := journal.Close(); closeErr != nil {
			slog.Error("Failed to close activity journal", "error", closeErr)
		}
	}()

	upstream := backend.NewHTTPClient(cfg.BackendURL, backend.WithTimeout(cfg.BackendTimeout))
	eventPub := events.NewWatermillPublisher(publisher)

	authService := service.NewAuthService(
		tokenizer.NewJWTTokenizer([]byte(cfg.SessionSecret)),
		sessionStore,
		eventPub,
		upstream,
		service.WithSessionTTL(cfg.SessionTTL),
		service.WithAuthLogger(logger),
	)
	marketService := service.NewMarketService(upstream, journal, eventPub, logger)

	router := httptransport.SetupRouter(authService, marketService, httptransport.RouterConfig{
		Cookie: httptransport.CookieConfig{
			Name:   httptransport.DefaultCookieName,
			Secure: cfg.CookieSecure,
		},
		ActionLimit: cfg.ActionLimit,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Gateway listening", "addr", srv.Addr, "backend", cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}
