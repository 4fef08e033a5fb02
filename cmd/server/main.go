// Command server starts the storefront backend: Telegram widget login,
// orders, and support tickets over one snapshot store.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aurorastore/shop-backend/internal/api"
	"github.com/aurorastore/shop-backend/internal/core/ports"
	"github.com/aurorastore/shop-backend/internal/core/service"
	"github.com/aurorastore/shop-backend/internal/infrastructure/config"
	filestore "github.com/aurorastore/shop-backend/internal/infrastructure/db/file"
	mongostore "github.com/aurorastore/shop-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/aurorastore/shop-backend/internal/infrastructure/db/redis"
	"github.com/aurorastore/shop-backend/internal/infrastructure/notify"
	"github.com/aurorastore/shop-backend/internal/infrastructure/queue"
	"github.com/aurorastore/shop-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.BotToken == "" {
		log.Fatal().Msg("BOT_TOKEN environment variable is required")
	}
	if cfg.SessionSecret == "" {
		log.Fatal().Msg("SESSION_SECRET environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Snapshot store ---
	var store ports.Store
	switch cfg.Store.Driver {
	case "mongo":
		ms, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo store init failed")
		}
		defer func() { _ = ms.Close(context.Background()) }()
		store = ms
	case "file":
		fs, err := filestore.Open(cfg.Store.Path, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("file store init failed")
		}
		store = fs
	default:
		log.Fatal().Str("driver", cfg.Store.Driver).Msg("unknown store driver")
	}

	// --- Login replay guard (optional) ---
	var guard service.ReplayGuard
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis init failed")
		}
		defer func() { _ = client.Close() }()
		rdb = client
		guard = redisdb.NewLoginGuard(client)
	}

	// --- Bot notifications (optional) ---
	var notifier ports.Notifier
	if cfg.NotifyEnabled {
		sender, err := notify.NewTelegramSender(cfg.BotToken, log)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram notifier init failed")
		}
		dispatcher := queue.NewDispatcher(0, sender, log)
		dispatcher.Start(ctx)
		notifier = dispatcher
	}

	e := api.NewRouter(cfg, store, guard, notifier, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
