package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gastonauta/internal/api"
	"gastonauta/internal/api/handlers"
	"gastonauta/internal/categorizer"
	"gastonauta/internal/repository"
	"gastonauta/internal/service"
	"gastonauta/pkg/config"
	"gastonauta/pkg/logger"
	"gastonauta/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Gastonauta ingestion service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	txRepo := repository.NewTransactionRepository(db, appLogger)
	catRepo := repository.NewCategoryRepository(db, appLogger)

	llmService := service.NewLLMService(&cfg.OpenRouter, appLogger)
	notifier := service.NewNotifier(&cfg.Resend, appLogger)
	if !notifier.Enabled() {
		appLogger.Warn("Notification credentials missing, outbound notifications disabled")
	}

	matcher := categorizer.NewDefaultKeywordMatcher()
	categorizationService := service.NewCategorizationService(
		txRepo, catRepo, matcher, llmService, cfg.Categorizer.BatchLimit, appLogger,
	)
	ingestionService := service.NewIngestionService(txRepo, categorizationService, notifier, appLogger)

	webhookHandler := handlers.NewWebhookHandler(ingestionService, appLogger)
	categorizeHandler := handlers.NewCategorizeHandler(categorizationService, appLogger)

	app := api.SetupRouter(webhookHandler, categorizeHandler, &cfg.Webhook, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
