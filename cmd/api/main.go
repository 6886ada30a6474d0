package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bazil852/aiinfluencerbackend/internal/api"
	"github.com/bazil852/aiinfluencerbackend/internal/config"
	"github.com/bazil852/aiinfluencerbackend/internal/database"
	"github.com/bazil852/aiinfluencerbackend/internal/repository"
	"github.com/bazil852/aiinfluencerbackend/internal/video"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting AI Influencer backend",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("provider", cfg.ProviderType),
	)

	// Connect to database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	cancel()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	healthCtx, healthCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = database.HealthCheck(healthCtx, pool)
	healthCancel()
	if err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	// Video provider
	videoProvider, err := video.NewVideoProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create video provider: %w", err)
	}

	// Setup router
	deps := &api.Dependencies{
		RegistrationRepo: repository.NewRegistrationRepository(pool),
		ContentRepo:      repository.NewContentRepository(pool),
		InfluencerRepo:   repository.NewInfluencerRepository(pool),
		CredentialRepo:   repository.NewCredentialRepository(pool),
		AccountRepo:      repository.NewAccountRepository(pool),
		VideoProvider:    videoProvider,
		Config:           cfg,
		DB:               pool,
	}
	router := api.NewRouter(logger, deps)
	router.Setup()

	// Graceful shutdown
	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-signalCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
