// internal/bot/run.go
package bot

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Run long-polls Telegram until ctx is cancelled.
func (b *Bot) Run(ctx context.Context, api *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	slog.Info("Bot started", "username", api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			slog.Info("Bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// SecretHeader carries the secret_token registered with setWebhook on every delivery.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// SetWebhook registers url with Telegram. Telegram echoes secret back in
// SecretHeader on each delivery.
func SetWebhook(api *tgbotapi.BotAPI, url, secret string) error {
	_, err := api.MakeRequest("setWebhook", map[string]string{
		"url":          url,
		"secret_token": secret,
	})
	return err
}

// WebhookHandler serves Telegram webhook deliveries. Requests without the
// matching secret are rejected before the update is read, so a chat id in the
// body is only trusted when Telegram sent it.
func (b *Bot) WebhookHandler(secret string) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(SecretHeader))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			slog.Warn("Rejected webhook delivery", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid webhook secret."})
			return
		}

		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			slog.Error("Failed to parse update", "error", err)
			c.Status(http.StatusBadRequest)
			return
		}
		b.HandleUpdate(c.Request.Context(), update)
		c.Status(http.StatusOK)
	}
}
