// Package main provides the entrypoint for the VoltGo API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Shashankvwali/VoltGo/internal/api"
	"github.com/Shashankvwali/VoltGo/internal/api/middleware"
	"github.com/Shashankvwali/VoltGo/internal/auth"
	"github.com/Shashankvwali/VoltGo/internal/catalog"
	"github.com/Shashankvwali/VoltGo/internal/database"
	"github.com/Shashankvwali/VoltGo/internal/session"
	"github.com/Shashankvwali/VoltGo/internal/station"
	"github.com/Shashankvwali/VoltGo/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const serviceName = "voltgo-api"

func main() {
	// A missing .env is normal outside local development.
	envErr := godotenv.Load()

	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	if envErr == nil {
		log.Info().Msg("loaded environment from .env")
	}

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(log zerolog.Logger) error {
	log.Info().
		Str("build_time", BuildTime).
		Msg("starting VoltGo API")

	port := getEnvOrDefault("APP_PORT", "8080")
	env := getEnvOrDefault("APP_ENV", "development")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := telemetry.ConfigFromEnv(serviceName, Version, env)
	tp, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()
	if telemetryCfg.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryCfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		return fmt.Errorf("initialize http metrics: %w", err)
	}
	sessionMetrics, err := session.NewMetrics()
	if err != nil {
		return fmt.Errorf("initialize session metrics: %w", err)
	}

	// Load the station catalog once; it is immutable for the process lifetime.
	cat, err := loadCatalog(ctx, catalog.ConfigFromEnv(), log)
	if err != nil {
		return err
	}

	// Sessions and their idle sweeper
	sessionCfg := session.ConfigFromEnv()
	sessions := session.NewService(session.ServiceConfig{
		Repository: session.NewInMemoryRepository(),
		Catalog:    cat,
		Logger:     log,
		Metrics:    sessionMetrics,
		IdleTTL:    sessionCfg.IdleTTL,
	})

	sweeper, err := session.NewSweeper(sessions, sessionCfg.SweepSchedule, log)
	if err != nil {
		return err
	}
	sweeper.Start()
	log.Info().
		Dur("idle_ttl", sessionCfg.IdleTTL).
		Str("sweep_schedule", sessionCfg.SweepSchedule).
		Msg("session sweeper started")

	// Session tokens
	signingKey := os.Getenv("SESSION_SIGNING_KEY")
	if signingKey == "" {
		if env == "production" {
			return errors.New("SESSION_SIGNING_KEY must be set in production")
		}
		signingKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default session signing key - not secure for production")
	}
	tokenTTL, err := time.ParseDuration(os.Getenv("SESSION_TOKEN_TTL"))
	if err != nil || tokenTTL <= 0 {
		tokenTTL = auth.DefaultTokenTTL
	}
	tokens := auth.NewTokenService(auth.TokenConfig{
		SigningKey: signingKey,
		Issuer:     "https://api.voltgo.in",
		Audience:   serviceName,
		TTL:        tokenTTL,
	})

	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        httpMetrics,
		Sessions:       sessions,
		Tokens:         tokens,
		RequireTLS:     os.Getenv("REQUIRE_TLS") == "true",
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	})

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	sweeper.Stop(shutdownCtx)

	log.Info().Msg("server stopped")
	return nil
}

// loadCatalog builds the catalog from the configured source. A database
// pool opened for the postgres source is closed once the catalog is loaded.
func loadCatalog(ctx context.Context, cfg catalog.Config, log zerolog.Logger) (*station.Catalog, error) {
	loadCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	var src catalog.Source
	switch cfg.Kind {
	case catalog.KindStatic:
		src = catalog.NewStaticSource(nil)

	case catalog.KindPostgres:
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(loadCtx, dbConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
		src = catalog.NewPostgresSource(pool)

	case catalog.KindFeed:
		feed, err := catalog.NewFeedSource(catalog.FeedConfig{
			URL:     cfg.FeedURL,
			Timeout: cfg.FeedTimeout,
			Logger:  log,
		})
		if err != nil {
			return nil, err
		}
		src = feed

	default:
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownKind, cfg.Kind)
	}

	cat, err := catalog.Load(loadCtx, src)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", src.Name()).
		Int("stations", cat.Len()).
		Msg("station catalog loaded")

	return cat, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
