package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	api "servigo-backend/internal/api/http"
	"servigo-backend/internal/config"
	"servigo-backend/internal/jobs"
	"servigo-backend/internal/logger"
	"servigo-backend/internal/repository/postgres"
	"servigo-backend/internal/scheduler"
	"servigo-backend/internal/security"
	"servigo-backend/internal/service"
	"servigo-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ServiGo backend...", "log_level", cfg.Log.Level)

	// Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	// Blob storage
	ctx := context.Background()
	var (
		blobs     storage.Interface
		mockStore *storage.MockStorage
	)
	switch cfg.Storage.Type {
	case "gcs":
		blobs, err = storage.NewGCSStorage(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize GCS storage: %v", err)
		}
		logger.Info("Using GCS document storage", "bucket", cfg.Storage.Bucket)
	default:
		mockStore, err = storage.NewMockStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		blobs = mockStore
		logger.Info("Using mock document storage", "dir", cfg.Storage.UploadDir)
	}

	// Services
	tokens := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.Users, tokens)
	verifySvc := service.NewVerificationService(store.Repos, store, blobs, cfg.Storage.MaxFileSizeMB*1024*1024)
	offerSvc := service.NewOfferService(store.Repos, store)
	noteSvc := service.NewNotificationService(store.Notifications, store.Users, emailSvc, cfg.Review.DispatchBatchSize, cfg.Review.MaxDispatchAttempts)

	// Scheduled jobs run inside the server process.
	jobRunner := jobs.NewJobRunner(store, &jobs.Services{
		Email:        emailSvc,
		Notification: noteSvc,
	}, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// HTTP API
	handlers := api.Handlers{
		Auth:         api.NewAuthHandler(authSvc),
		User:         api.NewUserHandler(verifySvc),
		Document:     api.NewDocumentHandler(verifySvc, cfg.Storage.MaxFileSizeMB*1024*1024),
		Admin:        api.NewAdminHandler(verifySvc),
		Offer:        api.NewOfferHandler(offerSvc),
		Notification: api.NewNotificationHandler(noteSvc),
		TokenManager: tokens,
	}
	if mockStore != nil {
		handlers.MockStorage = api.NewStorageHandler(mockStore)
	}
	router := api.NewRouter(handlers)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
