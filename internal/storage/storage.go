// internal/storage/storage.go
package storage

import (
	"context"
	"time"

	"spending-tracker/internal/domain"
)

type UserStorage interface {
	// CreateUser fills u.ID and u.CreatedAt. Returns domain.ErrEmailTaken on a duplicate email.
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUserNames(ctx context.Context, id int64, firstName, lastName string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type TokenStorage interface {
	BlacklistToken(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// ExpenseStorage methods are always scoped to an owner; a row owned by someone
// else behaves exactly like a missing row (domain.ErrNotFound).
type ExpenseStorage interface {
	CreateExpense(ctx context.Context, e *domain.Expense) error
	GetExpense(ctx context.Context, ownerID, id int64) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, e *domain.Expense) error
	DeleteExpense(ctx context.Context, ownerID, id int64) error
	// ListExpenses returns at most limit rows in newest-first order, and whether
	// more rows exist past the page in the cursor's direction.
	ListExpenses(ctx context.Context, ownerID int64, f domain.ExpenseFilter, cur *domain.Cursor, limit int) ([]domain.Expense, bool, error)
	RecentExpenses(ctx context.Context, ownerID int64, limit int) ([]domain.Expense, error)
}

type TelegramStorage interface {
	CreateLinkCode(ctx context.Context, code string, userID int64, expiresAt time.Time) error
	// ConsumeLinkCode deletes the code and returns its user, or domain.ErrLinkCodeInvalid.
	ConsumeLinkCode(ctx context.Context, code string, now time.Time) (int64, error)
	LinkChat(ctx context.Context, chatID, userID int64) error
	UnlinkChat(ctx context.Context, chatID int64) error
	UserIDByChat(ctx context.Context, chatID int64) (int64, error)
}

// Store is everything a backend provides.
type Store interface {
	UserStorage
	TokenStorage
	ExpenseStorage
	AggregateStorage
	TelegramStorage
	Close() error
}
