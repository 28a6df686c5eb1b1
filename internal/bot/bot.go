// internal/bot/bot.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"spending-tracker/internal/account"
	"spending-tracker/internal/dashboard"
	"spending-tracker/internal/domain"
	"spending-tracker/internal/expense"
	"spending-tracker/internal/validator"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const helpText = "💸 *Spending tracker*\n\n" +
	"Commands:\n" +
	"`/link CODE` - link this chat to your account (get a code in the app)\n" +
	"`/unlink` - forget this chat\n" +
	"`/summary` - this month at a glance\n" +
	"`/recent` - your last 5 expenses\n" +
	"`/add 12.50 groceries milk and bread` - record an expense for today\n\n" +
	"Categories: `GROCERIES`, `ENTERTAINMENT`, `UTILITIES`, `DINING_OUT`, `TRANSPORTATION`, " +
	"`HOUSING`, `HEALTHCARE`, `EDUCATION`, `OTHER`"

const notLinkedText = "🔗 This chat is not linked yet. Create a code in the app and send `/link CODE`."

// Sender is the part of tgbotapi.BotAPI the bot needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	sender    Sender
	accounts  *account.Service
	expenses  *expense.Service
	dashboard *dashboard.Service
	printer   *message.Printer
}

func New(sender Sender, accounts *account.Service, expenses *expense.Service, dash *dashboard.Service) *Bot {
	return &Bot{
		sender:    sender,
		accounts:  accounts,
		expenses:  expenses,
		dashboard: dash,
		printer:   message.NewPrinter(language.English),
	}
}

// HandleUpdate answers one incoming message.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Chat == nil {
		return
	}
	chatID := update.Message.Chat.ID
	text := sanitize(fixEncoding(update.Message.Text))
	slog.Info("Received message", "chat_id", chatID, "text", text)

	reply, err := b.Reply(ctx, chatID, text)
	if err != nil {
		slog.Error("Bot command failed", "error", err, "chat_id", chatID, "text", text)
		reply = "❌ Something went wrong, please try again later."
	}

	msg := tgbotapi.NewMessage(chatID, reply)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.sender.Send(msg); err != nil {
		slog.Error("Failed to send reply", "error", err, "chat_id", chatID)
	}
}

// Reply computes the answer to text sent from chatID. User mistakes come back
// as a reply; only unexpected failures are returned as errors.
func (b *Bot) Reply(ctx context.Context, chatID int64, text string) (string, error) {
	name, args := command(text)

	switch name {
	case "/start", "/help":
		return helpText, nil
	case "/link":
		return b.link(ctx, chatID, args)
	case "/unlink":
		if err := b.accounts.UnlinkChat(ctx, chatID); err != nil {
			return "", err
		}
		return "👋 This chat is no longer linked.", nil
	case "/summary", "/recent", "/add":
	default:
		return "Unknown command. Send /help", nil
	}

	p, err := b.accounts.ChatPrincipal(ctx, chatID)
	if errors.Is(err, domain.ErrNotFound) {
		return notLinkedText, nil
	}
	if err != nil {
		return "", err
	}

	switch name {
	case "/summary":
		return b.summary(ctx, p)
	case "/recent":
		return b.recent(ctx, p)
	default:
		return b.add(ctx, p, args)
	}
}

func (b *Bot) link(ctx context.Context, chatID int64, code string) (string, error) {
	if code == "" {
		return "❌ Usage: `/link CODE`", nil
	}
	u, err := b.accounts.LinkChat(ctx, code, chatID)
	if errors.Is(err, domain.ErrLinkCodeInvalid) {
		return "❌ That code is invalid or has expired. Create a new one in the app.", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Linked to %s. Send /help to see what I can do.", escape(u.Email)), nil
}

func (b *Bot) summary(ctx context.Context, p domain.Principal) (string, error) {
	s, err := b.dashboard.Summary(ctx, p.UserID, b.dashboard.Today())
	if err != nil {
		return "", err
	}

	lines := []string{
		"📊 *This month*",
		"Spent: " + b.money(s.CurrentMonthTotal),
		"Last month: " + b.money(s.PreviousMonthTotal),
		"Trend: " + b.printer.Sprintf("%+.2f%%", s.TrendPercentage.Round(2).InexactFloat64()),
		"This week: " + b.money(s.CurrentWeekTotal),
		"Monthly average: " + b.money(s.MonthlyAverage),
	}
	if s.TopCategory != nil {
		lines = append(lines, b.printer.Sprintf("Top category: %s (%.2f%%)",
			s.TopCategory.Label(), s.TopCategoryPercentage.Round(2).InexactFloat64()))
	}
	return strings.Join(lines, "\n"), nil
}

func (b *Bot) recent(ctx context.Context, p domain.Principal) (string, error) {
	items, err := b.expenses.Recent(ctx, p)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "📭 No expenses yet", nil
	}

	lines := []string{"🧾 *Recent expenses*"}
	for _, e := range items {
		line := fmt.Sprintf("- %s %s %s", domain.FormatDate(e.Date), b.money(e.Amount), e.Category.Label())
		if e.Description != "" {
			line += " - " + escape(e.Description)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (b *Bot) add(ctx context.Context, p domain.Principal, args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return "❌ Usage: `/add AMOUNT CATEGORY [description]`", nil
	}

	raw := strings.Replace(fields[0], ",", ".", 1)
	if !validator.ValidMoney(raw) {
		return fmt.Sprintf("❌ %q is not a valid amount", fields[0]), nil
	}
	amount := decimal.RequireFromString(raw)

	cat, err := domain.ParseCategory(fields[1])
	if err != nil {
		return fmt.Sprintf("❌ Unknown category %q. Send /help for the list.", fields[1]), nil
	}
	desc := strings.Join(fields[2:], " ")
	today := b.dashboard.Today()

	e, err := b.expenses.Create(ctx, p, expense.Changes{
		Amount:      &amount,
		Category:    &cat,
		Description: &desc,
		Date:        &today,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Saved %s in %s", b.money(e.Amount), e.Category.Label()), nil
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func (b *Bot) money(d decimal.Decimal) string {
	return b.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
