// backend-go/cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/appsmart/inventario/backend-go/internal/api"
	"github.com/appsmart/inventario/backend-go/internal/cache"
	"github.com/appsmart/inventario/backend-go/internal/catalog"
	"github.com/appsmart/inventario/backend-go/internal/config"
	"github.com/appsmart/inventario/backend-go/internal/prediction"
	"github.com/appsmart/inventario/backend-go/internal/service"
	"github.com/appsmart/inventario/backend-go/internal/storage"
	"github.com/appsmart/inventario/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.App.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	repo, closer, err := catalog.Open(ctx, catalog.FromConfig(cfg))
	if err != nil {
		logger.Log.Fatal().Err(err).Str("source", cfg.Catalog.Source).Msg("Failed to open product catalog")
	}
	defer closer.Close()

	predictionCache, err := cache.NewPredictionCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Prediction cache unavailable, continuing without it")
		predictionCache = cache.NewNoopPredictionCache()
	}

	archive, err := storage.New(ctx, cfg.Storage, cfg.App.DataDir)
	if err != nil {
		logger.Log.Warn().Err(err).Str("driver", cfg.Storage.Driver).Msg("Report archive unavailable")
		archive = nil
	}

	generator := prediction.NewGenerator(prediction.Config{
		LearningRate: cfg.Prediction.LearningRate,
		Epochs:       cfg.Prediction.Epochs,
	})
	predictionService := service.NewPredictionService(repo, generator, predictionCache, archive, cfg.Storage.Prefix)

	router := api.NewRouter(&api.Services{PredictionService: predictionService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Str("catalog", cfg.Catalog.Source).
			Str("storage", cfg.Storage.Driver).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// in-flight requests get 5 seconds to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
