// internal/storage/sqlite/users.go
package sqlite

import (
	"context"
	"fmt"
	"time"

	"spending-tracker/internal/domain"
)

const userColumns = "id, email, username, first_name, last_name, password_hash, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u       domain.User
		created string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	u.CreatedAt = t
	return &u, nil
}

func (s *Storage) CreateUser(ctx context.Context, u *domain.User) error {
	created := s.timestamp()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, username, first_name, last_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, created)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	u.ID = id
	u.CreatedAt, _ = parseTime(created)
	return nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err, "find user")
	}
	return u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email))
	if err != nil {
		return nil, notFound(err, "find user")
	}
	return u, nil
}

func (s *Storage) UpdateUserNames(ctx context.Context, id int64, firstName, lastName string) (*domain.User, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET first_name = ?, last_name = ? WHERE id = ?", firstName, lastName, id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return s.GetUserByID(ctx, id)
}

func (s *Storage) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// === TokenStorage ===

func (s *Storage) BlacklistToken(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO token_blacklist (jti, user_id, expires_at) VALUES (?, ?, ?)
		ON CONFLICT (jti) DO NOTHING
	`, jti, userID, expiresAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (s *Storage) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE jti = ?)", jti).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return exists, nil
}

func (s *Storage) PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM token_blacklist WHERE expires_at <= ?", now.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("purge blacklist: %w", err)
	}
	return res.RowsAffected()
}
