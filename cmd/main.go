package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/lateraugment/server/adapters"
	"github.com/lateraugment/server/adapters/mongo"
	"github.com/lateraugment/server/adapters/storage"
	"github.com/lateraugment/server/adapters/tts"
	"github.com/lateraugment/server/domain/repositories"
	"github.com/lateraugment/server/internal/api"
	"github.com/lateraugment/server/internal/config"
	"github.com/lateraugment/server/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize the synthesis provider client once; it is reused by every request.
	ctx := context.Background()
	synthesizer, err := tts.NewGoogleTextToSpeech(ctx, tts.GoogleConfig{
		DefaultLanguageCode: cfg.DefaultLanguageCode,
		DefaultSpeakingRate: cfg.DefaultSpeakingRate,
		DefaultPitch:        cfg.DefaultPitch,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create text-to-speech client", zap.Error(err))
	}
	defer synthesizer.Close()

	// Initialize the speech record store
	var speechRepo repositories.SpeechRepository
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.NewClient(cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			mongoClient.Close(closeCtx)
		}()
		speechRepo = mongo.NewSpeechRepository(mongoClient.Database)
	} else {
		logger.Info("MONGODB_URI not set, using in-memory speech repository")
		speechRepo = adapters.NewMemorySpeechRepository()
	}

	audioStore, err := storage.NewFileStore(cfg.AudioDir, logger)
	if err != nil {
		logger.Fatal("Failed to create audio store", zap.Error(err))
	}

	// Initialize usecase service and API routes
	speechService := usecase.NewSpeechService(synthesizer, speechRepo, audioStore, logger)
	handler := api.NewHandler(speechService, cfg.PreviewText, logger)
	api.InitRoutes(e, handler, audioStore.Dir(), "web")

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
