package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eda-booking-service/internal/domain/repository"
	"eda-booking-service/internal/infrastructure/config"
	"eda-booking-service/internal/infrastructure/persistence"
	mongoRepo "eda-booking-service/internal/interface/repository"
	"eda-booking-service/internal/interface/rest"
	"eda-booking-service/internal/usecase"
	"eda-booking-service/pkg/logger"
	"eda-booking-service/pkg/metrics"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting EDA Booking Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up record store repositories
	presentationRepo := mongoRepo.NewMongoPresentationRepository(db)
	enlistmentRepo := mongoRepo.NewMongoEnlistmentRepository(db)
	showcaseRepo := mongoRepo.NewMongoShowcaseRepository(db)

	// Audit trail lives in PostgreSQL; the service runs without it when no
	// DSN is configured.
	var actionLogRepo repository.ActionLogRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		actionLogRepo = mongoRepo.NewGormActionLogRepository(gormDB)
	} else {
		log.Warn("POSTGRES_DSN not set, workflow audit trail disabled")
	}

	// Set up notifier and metrics
	notifier := mongoRepo.NewDiscordNotifier(cfg.DiscordWebhookURL, log)
	m := metrics.NewMetrics("eda_booking")

	// Set up workflow engine
	workflow := usecase.NewWorkflow(presentationRepo, enlistmentRepo, notifier, actionLogRepo, m, log)

	// Set up HTTP server
	router := rest.NewRouter(rest.RouterConfig{
		Workflow:      workflow,
		Presentations: presentationRepo,
		Enlistments:   enlistmentRepo,
		Showcase:      showcaseRepo,
		AdminToken:    cfg.AdminToken,
		Logger:        log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all subscriptions

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("EDA Booking Service stopped")
}
