package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Jish22/ActivityFinderAPpReboot/docs"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/config"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/feed"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/handler"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/logger"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/queue/sqs"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/service"
	"github.com/Jish22/ActivityFinderAPpReboot/internal/store/firestore"
)

// @title Campus Events API
// @version 1.0
// @description Multi-source event feed with organizations, friends, and RSVP tracking
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
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

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx := context.Background()

	// Initialize SQS client
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	// Initialize Firestore client
	firestoreClient, err := firestore.NewClient(ctx, &cfg.Firestore, log)
	if err != nil {
		log.Fatal("Failed to create Firestore client", zap.Error(err))
	}
	defer func(firestoreClient *firestore.Client) {
		if err := firestoreClient.Close(); err != nil {
			log.Error("Failed to close Firestore client", zap.Error(err))
		}
	}(firestoreClient)

	// Initialize document store
	documentStore := firestore.NewStore(firestoreClient, log)

	// Initialize feed engine and services
	assembler := feed.NewAssembler(documentStore, log)
	feedService := service.NewFeedService(documentStore, assembler, log)
	eventService := service.NewEventService(documentStore, sqsClient, log)
	orgService := service.NewOrganizationService(documentStore, sqsClient, log)
	friendService := service.NewFriendService(documentStore, log)
	userService := service.NewUserService(documentStore, log)

	// Initialize handler
	h := handler.NewHandler(feedService, eventService, orgService, friendService, userService, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
