package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-candidate-backend/config"
	_ "go-candidate-backend/docs" // Important for Swagger
	"go-candidate-backend/internal/app"
	v1 "go-candidate-backend/internal/delivery/http/v1"
	"go-candidate-backend/internal/usecase"
	"go-candidate-backend/pkg/audit"
	"go-candidate-backend/pkg/logger"
	"go-candidate-backend/pkg/redis"

	"github.com/gin-gonic/gin"
)

// @title           Candidate Backend API
// @version         1.0
// @description     CRUD backend for candidates and their resumes.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting candidate backend", "port", cfg.Port, "storage", cfg.StorageDriver)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Setup Storage
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	storage, err := app.OpenStorage(startCtx, cfg, cfg.AutoMigrate)
	cancelStart()
	if err != nil {
		logger.Log.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	// 4. Setup Redis (optional)
	healthChecks := []usecase.HealthCheck{
		{Name: "database", Check: storage.Store.Ping, Critical: true},
	}
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		if errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Info("Redis not configured, rate limiting uses in-memory counters")
		} else {
			logger.Log.Warn("Redis unavailable, rate limiting uses in-memory counters", "error", err)
		}
	} else {
		defer redis.Close()
		healthChecks = append(healthChecks, usecase.HealthCheck{Name: "redis", Check: redis.HealthCheck})
	}

	// 5. Setup Audit Trail
	var recorder audit.Recorder = audit.Nop()
	if cfg.AuditLogEnabled {
		auditLogger := audit.NewLogger("candidate-api", cfg.AppEnv)
		defer auditLogger.Sync()
		recorder = auditLogger
	}

	// 6. Setup UseCases
	uc := app.NewUsecases(storage.Store, recorder)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: uc.Candidates,
		ResumeUC:    uc.Resumes,
		ExportUC:    uc.Export,
		HealthUC:    usecase.NewHealthUsecase(healthChecks...),
		Config:      cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
