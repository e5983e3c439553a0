package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/config"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/logger"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/notifier"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/queue/sqs"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store/firestore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting notifier service",
		zap.String("environment", cfg.Service.Environment))

	ctx := context.Background()

	// Initialize Firestore client
	firestoreClient, err := firestore.NewClient(ctx, &cfg.Firestore, log)
	if err != nil {
		log.Fatal("Failed to create Firestore client", zap.Error(err))
	}
	defer func() {
		if err := firestoreClient.Close(); err != nil {
			log.Error("Failed to close Firestore client", zap.Error(err))
		}
	}()

	// Initialize document store
	documentStore := firestore.NewStore(firestoreClient, log)

	// Initialize SQS client
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	// Initialize notifier
	n := notifier.New(cfg, sqsClient, documentStore, log)

	// Start health check endpoint
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Notifier.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	// Start notifier
	notifierCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Notifier starting")

	go func() {
		if err := n.Start(notifierCtx); err != nil {
			log.Fatal("Notifier error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down notifier gracefully")
	cancel()
}
