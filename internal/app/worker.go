package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-orgkit/internal/events"
	"go-orgkit/internal/messaging/kafka"
	"go-orgkit/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker menjalankan outbox relay: membaca event pending dari Postgres
// dan mem-publish-nya ke Kafka sampai menerima sinyal berhenti.
func RunWorker() error {

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	defer sqlDB.Close()

	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	writer, err := connection.ConnectKafkaWithRetry(broker, 5)
	if err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}

	publisher := kafka.NewPublisher(writer)
	defer publisher.Close()

	relay := events.NewRelay(events.NewRepository(gormDB), publisher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go relay.Run(ctx)

	zap.L().Info("Outbox worker running", zap.String("broker", broker))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	zap.L().Info("Worker shutting down", zap.String("signal", sig.String()))
	cancel()

	return nil
}
