package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/milkwise/mother-care-service/internal/adapters/messaging"
	"github.com/milkwise/mother-care-service/internal/adapters/outbox"
	"github.com/milkwise/mother-care-service/internal/config"
	"github.com/milkwise/mother-care-service/internal/platform/logger"
)

func main() {
	log := logger.New("mother-care-relay")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("MOTHERCARE_DATABASE_URL is required")
	}
	if cfg.RabbitMQURL == "" {
		log.Fatal().Msg("MOTHERCARE_RABBITMQ_URL is required")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.MailQueueName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer broker.Close()

	relay := outbox.NewRelay(db, cfg.DatabaseURL, broker, log)

	// Health probes for the relay pod.
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		if relay.IsHealthy() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		if relay.IsReady() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := relay.Start(ctx); err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("relay stopped")
	}
}
