// internal/storage/sqlite/telegram.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spending-tracker/internal/domain"
)

func (s *Storage) CreateLinkCode(ctx context.Context, code string, userID int64, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, "INSERT INTO telegram_link_codes (code, user_id, expires_at) VALUES (?, ?, ?)",
		code, userID, expiresAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert link code: %w", err)
	}
	return nil
}

func (s *Storage) ConsumeLinkCode(ctx context.Context, code string, now time.Time) (int64, error) {
	var (
		userID  int64
		expires string
	)
	err := s.db.QueryRowContext(ctx, "DELETE FROM telegram_link_codes WHERE code = ? RETURNING user_id, expires_at", code).
		Scan(&userID, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrLinkCodeInvalid
		}
		return 0, fmt.Errorf("consume link code: %w", err)
	}
	expiresAt, err := parseTime(expires)
	if err != nil {
		return 0, fmt.Errorf("parse expires_at: %w", err)
	}
	if !expiresAt.After(now) {
		return 0, domain.ErrLinkCodeInvalid
	}
	return userID, nil
}

func (s *Storage) LinkChat(ctx context.Context, chatID, userID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO telegram_links (chat_id, user_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT (chat_id) DO UPDATE SET user_id = excluded.user_id, created_at = excluded.created_at
	`, chatID, userID, s.timestamp())
	if err != nil {
		return fmt.Errorf("link chat: %w", err)
	}
	return nil
}

func (s *Storage) UnlinkChat(ctx context.Context, chatID int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM telegram_links WHERE chat_id = ?", chatID); err != nil {
		return fmt.Errorf("unlink chat: %w", err)
	}
	return nil
}

func (s *Storage) UserIDByChat(ctx context.Context, chatID int64) (int64, error) {
	var userID int64
	err := s.db.QueryRowContext(ctx, "SELECT user_id FROM telegram_links WHERE chat_id = ?", chatID).Scan(&userID)
	if err != nil {
		return 0, notFound(err, "find chat link")
	}
	return userID, nil
}
