package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/dlaird/pocketbank/pkg/config"
	"github.com/dlaird/pocketbank/pkg/events"
	"github.com/dlaird/pocketbank/pkg/handlers"
	"github.com/dlaird/pocketbank/pkg/ledger"
	"github.com/dlaird/pocketbank/pkg/logging"
	"github.com/dlaird/pocketbank/pkg/storage"
	"github.com/dlaird/pocketbank/pkg/storage/dynamodb"
	"github.com/dlaird/pocketbank/pkg/storage/memory"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store storage.Storage
	switch cfg.Storage.Backend {
	case config.StorageDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			logger.Error("unable to load AWS SDK config", "error", err)
			os.Exit(1)
		}
		store = dynamodb.New(awsdynamodb.NewFromConfig(awsCfg), cfg.Storage.AccountsTable, cfg.Storage.TransactionsTable)
	default:
		store = memory.New()
	}
	logger.Info("storage backend ready", "backend", cfg.Storage.Backend)

	var publisher events.Publisher = &events.NoOpPublisher{}
	switch cfg.Events.Backend {
	case config.EventsKafka:
		kafkaPublisher := events.NewKafkaPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	case config.EventsSQS:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			logger.Error("unable to load AWS SDK config", "error", err)
			os.Exit(1)
		}
		publisher = events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.Events.SQSQueueURL)
	}
	logger.Info("events backend ready", "backend", cfg.Events.Backend)

	service := ledger.New(store, publisher, logger)
	router := handlers.NewRouter(logger, service)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErrs := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", server.Addr)
		serverErrs <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
