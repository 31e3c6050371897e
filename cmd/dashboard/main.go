package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ifds/dashboard/internal/api"
	"github.com/ifds/dashboard/internal/core/ports"
	"github.com/ifds/dashboard/internal/infrastructure/config"
	redisdb "github.com/ifds/dashboard/internal/infrastructure/db/redis"
	"github.com/ifds/dashboard/internal/infrastructure/session"
	"github.com/ifds/dashboard/internal/infrastructure/upstream"
	"github.com/ifds/dashboard/pkg/logger"
)

func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.Session.Secret == "" {
		log.Fatal().Msg("SESSION_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	secure := cfg.Env != "development"
	if cfg.Session.Secure {
		secure = true
	}

	var sessions ports.SessionStore
	switch cfg.Session.Backend {
	case "redis":
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		sessions = session.NewRedisStore(client, cfg.Session.TTL, secure, log)
	case "cookie":
		sessions = session.NewCookieStore(cfg.Session.Secret, cfg.Session.TTL, secure, log)
	default:
		log.Fatal().Str("backend", cfg.Session.Backend).Msg("unknown session backend")
	}

	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)

	e, err := api.NewRouter(api.Dependencies{
		Sessions:     sessions,
		Auth:         client,
		Inventory:    client,
		Transactions: client,
		Fraud:        client,
		Reports:      client,
		Log:          log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("upstream", cfg.Upstream.BaseURL).
			Str("session_backend", cfg.Session.Backend).
			Msg("starting dashboard")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("dashboard stopped")
}
