// cmd/bot/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"spending-tracker/internal/app"
	"spending-tracker/internal/bot"
	"spending-tracker/internal/config"
	"spending-tracker/internal/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg := config.MustLoad()
	logger.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat, "bot")

	if cfg.TelegramToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN not set")
		os.Exit(1)
	}
	if cfg.TelegramWebhookURL != "" {
		slog.Error("TELEGRAM_WEBHOOK_URL is set: the API process serves the bot, polling would conflict")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	publisher := app.NewPublisher(cfg)
	defer publisher.Close()

	svc := app.NewServices(cfg, store, publisher)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		slog.Error("Failed to init Telegram bot", "error", err)
		os.Exit(1)
	}
	// polling and webhooks are mutually exclusive
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		slog.Warn("Failed to delete webhook", "error", err)
	}

	bot.New(api, svc.Accounts, svc.Expenses, svc.Dashboard).Run(ctx, api)
}
