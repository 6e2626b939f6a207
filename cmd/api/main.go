// Package main is the entrypoint for the PairDojo API server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pairdojo/pairdojo/internal/analytics"
	"github.com/pairdojo/pairdojo/internal/auth"
	"github.com/pairdojo/pairdojo/internal/config"
	"github.com/pairdojo/pairdojo/internal/gateway"
	"github.com/pairdojo/pairdojo/internal/handler"
	"github.com/pairdojo/pairdojo/internal/metrics"
	"github.com/pairdojo/pairdojo/internal/middleware"
	"github.com/pairdojo/pairdojo/internal/server"
	"github.com/pairdojo/pairdojo/internal/service"
	"github.com/pairdojo/pairdojo/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// In-memory state. Everything here is lost on restart.
	directory := store.NewDirectory()
	registry := store.NewRegistry()
	ledger := store.NewLedger()

	// Analytics sink: Redis Streams when configured, log-only otherwise.
	var sink analytics.Sink
	var streamSink *analytics.StreamSink
	if cfg.AnalyticsEnabled() {
		streamSink, err = analytics.NewStreamSink(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect analytics sink", "error", err)
			os.Exit(1)
		}
		sink = streamSink
		logger.Info("analytics stream sink connected")
	} else {
		sink = analytics.NewLogSink(logger)
		logger.Info("analytics disabled, events logged only")
	}

	metricsRecorder := metrics.NewInMemory()
	publisher := analytics.NewPublisher(sink, logger, metricsRecorder)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	accountService := service.NewAccountService(directory, tokens, metricsRecorder, logger)
	roomService := service.NewRoomService(registry, ledger, publisher, metricsRecorder, logger, cfg.KickDuration, cfg.QuickJoinThreshold)

	collabClient := gateway.NewCollabClient(cfg.CollabAPIURL, cfg.CollabSecretKey, logger)
	voiceClient := gateway.NewVoiceClient(cfg.VoiceAPIURL, cfg.VoiceAPIKey, cfg.VoiceDomain, logger)

	healthHandler := handler.NewHealthHandler(sink)
	authHandler := handler.NewAuthHandler(accountService, logger)
	roomHandler := handler.NewRoomHandler(roomService, logger)
	moderationHandler := handler.NewModerationHandler(roomService, logger)
	providerHandler := handler.NewProviderHandler(roomService, collabClient, voiceClient, logger)

	r := setupRouter(routerDeps{
		cfg:        cfg,
		logger:     logger,
		tokens:     tokens,
		directory:  directory,
		health:     healthHandler,
		auth:       authHandler,
		room:       roomHandler,
		moderation: moderationHandler,
		provider:   providerHandler,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Background sweep of expired bans.
	sweeper := store.NewSweeper(ledger, cfg.BanSweepInterval, logger)
	go sweeper.Run(ctx)
	srv.OnShutdown("ban sweeper", sweeper.Shutdown)

	if streamSink != nil {
		srv.OnShutdown("analytics sink", func(ctx context.Context) error {
			return streamSink.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"analytics", cfg.AnalyticsEnabled(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// routerDeps bundles what setupRouter needs.
type routerDeps struct {
	cfg        *config.Config
	logger     *slog.Logger
	tokens     *auth.TokenManager
	directory  *store.Directory
	health     *handler.HealthHandler
	auth       *handler.AuthHandler
	room       *handler.RoomHandler
	moderation *handler.ModerationHandler
	provider   *handler.ProviderHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      deps.cfg.IsDevelopment(),
		MaxRequestBodySize: deps.cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = []string{deps.cfg.FrontendURL}
	corsCfg.AllowCredentials = true
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	authCfg := middleware.AuthConfig{
		Logger:    deps.logger,
		Tokens:    deps.tokens,
		Directory: deps.directory,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/signup", deps.auth.Signup)
		r.Post("/auth/login", deps.auth.Login)

		// Everything else requires a session token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Get("/auth/me", deps.auth.Me)

			r.Route("/rooms", func(r chi.Router) {
				r.Post("/", deps.room.Create)
				r.Get("/", deps.room.List)
				r.Get("/quick-join/find", deps.room.QuickJoin)
				r.Get("/{roomID}", deps.room.Get)
				r.Post("/{roomID}/join", deps.room.Join)
				r.Post("/{roomID}/leave", deps.room.Leave)
			})

			r.Post("/moderation/kick", deps.moderation.Kick)
			r.Post("/moderation/report", deps.moderation.Report)
			r.Post("/events/log", deps.moderation.LogEvent)

			r.Post("/collab/auth", deps.provider.CollabAuth)
			r.Post("/voice/token", deps.provider.VoiceToken)
		})
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
