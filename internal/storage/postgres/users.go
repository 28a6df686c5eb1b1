// internal/storage/postgres/users.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"spending-tracker/internal/domain"
)

// === UserStorage ===

const userColumns = "id, email, username, first_name, last_name, password_hash, created_at"

func (s *Storage) CreateUser(ctx context.Context, u *domain.User) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (email, username, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Storage) getUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE "+where, arg).
		Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err, "find user")
	}
	return &u, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUser(ctx, "id = $1", id)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, "email = $1", email)
}

func (s *Storage) UpdateUserNames(ctx context.Context, id int64, firstName, lastName string) (*domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(ctx, `
		UPDATE users SET first_name = $2, last_name = $3
		WHERE id = $1
		RETURNING `+userColumns, id, firstName, lastName).
		Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err, "update user")
	}
	return &u, nil
}

func (s *Storage) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := s.db.Exec(ctx, "UPDATE users SET password_hash = $2 WHERE id = $1", id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// === TokenStorage ===

func (s *Storage) BlacklistToken(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO token_blacklist (jti, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING
	`, jti, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (s *Storage) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE jti = $1)", jti).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return exists, nil
}

func (s *Storage) PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM token_blacklist WHERE expires_at <= $1", now)
	if err != nil {
		return 0, fmt.Errorf("purge blacklist: %w", err)
	}
	return tag.RowsAffected(), nil
}
