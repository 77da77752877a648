// @title        Mentorship Marketplace API
// @version      1.0
// @description  Mentor discovery, bookings, payments, and the community blog.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/mentorhub/mentorship-api/docs"
	"github.com/mentorhub/mentorship-api/internal/api"
	"github.com/mentorhub/mentorship-api/internal/core/service"
	"github.com/mentorhub/mentorship-api/internal/infrastructure/config"
	mongodb "github.com/mentorhub/mentorship-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mentorhub/mentorship-api/internal/infrastructure/db/redis"
	"github.com/mentorhub/mentorship-api/internal/infrastructure/gateway/cashfree"
	"github.com/mentorhub/mentorship-api/internal/infrastructure/queue"
	"github.com/mentorhub/mentorship-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Local development convenience; the file is absent in production.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	gateway := cashfree.NewClient(cashfree.Config{
		BaseURL:      cfg.Gateway.BaseURL,
		ClientID:     cfg.Gateway.ClientID,
		ClientSecret: cfg.Gateway.ClientSecret,
		Timeout:      cfg.Gateway.Timeout,
	}, log)

	notificationService := service.NewNotificationService(mongodb.NewNotificationRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notificationService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, gateway, dispatcher, notificationService, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
