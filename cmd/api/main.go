// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spending-tracker/internal/app"
	"spending-tracker/internal/bot"
	"spending-tracker/internal/config"
	"spending-tracker/internal/handler"
	"spending-tracker/internal/logger"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const blacklistPurgeInterval = time.Hour

func main() {
	cfg := config.MustLoad()
	log := logger.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat, "api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open storage", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Close()

	publisher := app.NewPublisher(cfg)
	defer publisher.Close()

	svc := app.NewServices(cfg, store, publisher)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.Deps{
		Tokens:    svc.Tokens,
		Accounts:  svc.Accounts,
		Expenses:  svc.Expenses,
		Dashboard: svc.Dashboard,
		Logger:    log,
	})

	// Telegram webhook
	if cfg.TelegramWebhookURL != "" {
		api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			slog.Error("Failed to init Telegram bot", "error", err)
			os.Exit(1)
		}
		if err := bot.SetWebhook(api, cfg.TelegramWebhookURL, cfg.TelegramWebhookSecret); err != nil {
			slog.Error("Failed to set webhook", "error", err)
			os.Exit(1)
		}
		b := bot.New(api, svc.Accounts, svc.Expenses, svc.Dashboard)
		router.POST("/telegram", b.WebhookHandler(cfg.TelegramWebhookSecret))
		slog.Info("Telegram webhook set", "url", cfg.TelegramWebhookURL)
	}

	go purgeBlacklist(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Server started", "addr", cfg.ServerPort, "backend", cfg.DataBackend, "timezone", cfg.TimezoneName)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func purgeBlacklist(ctx context.Context, svc app.Services) {
	ticker := time.NewTicker(blacklistPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.Accounts.PurgeExpiredTokens(ctx)
			if err != nil {
				slog.Error("Blacklist purge failed", "error", err)
				continue
			}
			slog.Debug("Blacklist purged", "removed", n)
		}
	}
}
