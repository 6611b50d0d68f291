//go:build !integration

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitbucket.org/crgw/cover-quote/internal/logger"
	"bitbucket.org/crgw/cover-quote/internal/pricing"
	"bitbucket.org/crgw/cover-quote/internal/quote"
	"bitbucket.org/crgw/cover-quote/internal/settings"
	"bitbucket.org/crgw/cover-quote/internal/tools/caching"
	"bitbucket.org/crgw/cover-quote/internal/tools/pgfactory"
	"bitbucket.org/crgw/cover-quote/internal/tools/redisfactory"
	"bitbucket.org/crgw/cover-quote/internal/web"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func serverApp(httpServer *http.Server, logger *zerolog.Logger, stop chan os.Signal) int {
	done := make(chan error, 1)
	go func() {
		logger.
			Info().
			Msg("Listening on address " + httpServer.Addr)
		done <- httpServer.ListenAndServe()
	}()
	go func() {
		// Wait for stop
		<-stop
		logger.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}()

	err := <-done
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	}
	return 0
}

func settingsProvider(ctx context.Context, log *zerolog.Logger) settings.Provider {
	var provider settings.Provider = settings.NewMemoryStore()

	pool, err := pgfactory.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed connecting to database")
	}

	if pool != nil {
		store := settings.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed migrating settings table")
		}
		provider = store
	} else {
		log.Warn().Msg("DATABASE_URL not set, settings are kept in memory")
	}

	redisClient := redisfactory.New().SettingsCacheClient()
	if redisClient == nil {
		return provider
	}

	ttl := settings.DefaultCacheTTL
	if raw := os.Getenv("SETTINGS_CACHE_TTL"); raw != "" {
		ttl, err = time.ParseDuration(raw)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid SETTINGS_CACHE_TTL")
		}
	}

	return settings.NewCachedStore(provider, caching.NewRedisCache(redisClient), ttl, log)
}

func main() {
	_ = godotenv.Load(".env")
	log := logger.New(os.Getenv("LOG_LEVEL"))

	defaultPolicy, err := pricing.ParseUnmatchedPolicy(os.Getenv("DEFAULT_UNMATCHED_POLICY"))
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid DEFAULT_UNMATCHED_POLICY")
	}

	appRouter := web.SetupRouter(log, settingsProvider(context.Background(), log), web.Options{
		Quote: quote.Options{
			DefaultPolicy: defaultPolicy,
			SlowThreshold: 50 * time.Millisecond,
		},
		Validation: os.Getenv("OPENAPI_VALIDATION") != "false",
	})

	var host string
	if os.Getenv("TEST") == "true" {
		host = "localhost"
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", host, os.Getenv("PORT")),
		Handler: appRouter,
	}

	// Notify stop channel if SIGINT or SIGTERM is received
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	os.Exit(serverApp(httpServer, log, stop))
}
