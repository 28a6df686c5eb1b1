// internal/storage/postgres/telegram.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spending-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
)

// === TelegramStorage ===

func (s *Storage) CreateLinkCode(ctx context.Context, code string, userID int64, expiresAt time.Time) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO telegram_link_codes (code, user_id, expires_at) VALUES ($1, $2, $3)
	`, code, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("insert link code: %w", err)
	}
	return nil
}

func (s *Storage) ConsumeLinkCode(ctx context.Context, code string, now time.Time) (int64, error) {
	var (
		userID    int64
		expiresAt time.Time
	)
	err := s.db.QueryRow(ctx, `
		DELETE FROM telegram_link_codes WHERE code = $1
		RETURNING user_id, expires_at
	`, code).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrLinkCodeInvalid
		}
		return 0, fmt.Errorf("consume link code: %w", err)
	}
	if !expiresAt.After(now) {
		return 0, domain.ErrLinkCodeInvalid
	}
	return userID, nil
}

func (s *Storage) LinkChat(ctx context.Context, chatID, userID int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO telegram_links (chat_id, user_id) VALUES ($1, $2)
		ON CONFLICT (chat_id) DO UPDATE SET user_id = EXCLUDED.user_id, created_at = now()
	`, chatID, userID)
	if err != nil {
		return fmt.Errorf("link chat: %w", err)
	}
	return nil
}

func (s *Storage) UnlinkChat(ctx context.Context, chatID int64) error {
	_, err := s.db.Exec(ctx, "DELETE FROM telegram_links WHERE chat_id = $1", chatID)
	if err != nil {
		return fmt.Errorf("unlink chat: %w", err)
	}
	return nil
}

func (s *Storage) UserIDByChat(ctx context.Context, chatID int64) (int64, error) {
	var userID int64
	err := s.db.QueryRow(ctx, "SELECT user_id FROM telegram_links WHERE chat_id = $1", chatID).Scan(&userID)
	if err != nil {
		return 0, notFound(err, "find chat link")
	}
	return userID, nil
}
