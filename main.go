package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"rugguard/internal/analysis"
	"rugguard/internal/bot"
	"rugguard/internal/config"
	"rugguard/internal/notifier"
	"rugguard/internal/repository"
	"rugguard/internal/server"
	"rugguard/internal/twitter"
)

func main() {
	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Analysis history store
	repo, err := repository.NewAnalysisRepository(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to create analysis repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}
	}()

	// X API client
	xClient, err := twitter.NewClient(cfg.Twitter.BearerToken, cfg.Twitter.AccessToken, logger)
	if err != nil {
		logger.Fatal("Failed to create X client", zap.Error(err))
	}

	// Trust analyzer
	analyzer := analysis.NewAnalyzer(xClient, cfg.TrustedAccounts, logger)

	// Telegram alerts (optional)
	tgNotifier, err := notifier.NewTelegramNotifier(cfg.Alerts.TelegramBotToken, cfg.Alerts.TelegramChatID, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without alerts", zap.Error(err))
		tgNotifier = nil
	}
	var alerts bot.AlertNotifier
	if tgNotifier != nil {
		alerts = tgNotifier
	}

	// Trigger pipeline
	triggerBot := bot.NewBot(cfg, xClient, analyzer, repo, alerts, logger)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run bot loop in a goroutine
	go triggerBot.Run(ctx)

	// Run API server in a goroutine
	srv := server.NewServer(repo, analyzer, logger)
	go srv.Run(cfg.Server.Port)

	<-ctx.Done()
	logger.Info("Application stopped.")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
