package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"statement-ledger/internal/config"
	"statement-ledger/internal/db"
	"statement-ledger/internal/events"
	"statement-ledger/internal/events/kafka"
	redisevents "statement-ledger/internal/events/redis"
	"statement-ledger/internal/logger"
	"statement-ledger/internal/router"
	"statement-ledger/internal/store/memory"
	"statement-ledger/internal/store/mysql"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.LogLevel)
	log.Info().Msg("Starting statement ledger")

	if cfg.UsesDefaultSecret() {
		log.Warn().Msg("JWT_SECRET not set, using default key")
	}

	deps := router.Dependencies{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,

		AllowedOrigins: cfg.AllowedOrigins,
		SlowRequest:    cfg.SlowRequest,
	}

	if cfg.DBUrl != "" {
		database, err := db.InitDB(cfg.DBUrl)
		if err != nil {
			log.Fatal().Err(err).Msg("Database connection failed")
		}
		defer database.Close()

		if err := db.RunMigrations(database, log); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
		deps.Users = mysql.NewUserDirectory(database)
		deps.Statements = mysql.NewStatementStore(database)
		log.Info().Msg("Using MySQL ledger store")
	} else {
		deps.Users = memory.NewUserDirectory()
		deps.Statements = memory.NewStatementStore()
		log.Warn().Msg("DB_URL not set, using in-memory ledger store")
	}

	publisher := newPublisher(cfg, log)
	defer publisher.Close()
	deps.Publisher = publisher

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.SetupRouter(deps, log),
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}

func newPublisher(cfg config.Config, log zerolog.Logger) events.Publisher {
	switch cfg.EventsBackend {
	case "kafka":
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("Publishing events to Kafka")
		return kafka.NewPublisher(cfg.KafkaBrokers, cfg.EventsPrefix)
	case "redis":
		log.Info().Str("addr", cfg.RedisAddr).Msg("Publishing events to Redis")
		return redisevents.NewPublisher(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.EventsPrefix)
	case "", "none":
		return events.Noop{}
	}
	log.Warn().Str("backend", cfg.EventsBackend).Msg("Unknown events backend, events disabled")
	return events.Noop{}
}
