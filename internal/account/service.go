// internal/account/service.go
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"spending-tracker/internal/auth"
	"spending-tracker/internal/domain"
	"spending-tracker/internal/storage"

	"github.com/google/uuid"
)

type Store interface {
	storage.UserStorage
	storage.TokenStorage
	storage.TelegramStorage
}

type Service struct {
	store       Store
	tokens      *auth.TokenService
	linkCodeTTL time.Duration
	now         func() time.Time
}

func NewService(store Store, tokens *auth.TokenService, linkCodeTTL time.Duration) *Service {
	return &Service{store: store, tokens: tokens, linkCodeTTL: linkCodeTTL, now: time.Now}
}

type RegisterInput struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// Session is a user together with a freshly issued token pair.
type Session struct {
	User   *domain.User
	Tokens auth.TokenPair
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newUsername is an opaque 30 character handle; users log in by email.
func newUsername() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:30]
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := NormalizeEmail(in.Email)

	verr := domain.NewValidationError()
	for _, msg := range auth.ValidatePassword(in.Password, email, in.FirstName, in.LastName) {
		verr.Add("password", msg)
	}
	if in.Password != in.ConfirmPassword {
		verr.Add("password", "Passwords do not match.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:        email,
		Username:     newUsername(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.FieldError("email", "user with this email already exists.")
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	pair, err := s.tokens.GeneratePair(u.ID)
	if err != nil {
		return nil, err
	}
	slog.Info("User registered", "user_id", u.ID)
	return &Session{User: u, Tokens: pair}, nil
}

// Login verifies email and password. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		slog.Warn("Login failed", "user_id", u.ID)
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.GeneratePair(u.ID)
	if err != nil {
		return nil, err
	}
	slog.Info("User logged in", "user_id", u.ID)
	return &Session{User: u, Tokens: pair}, nil
}

// Refresh exchanges a valid, non-blacklisted refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.tokens.Parse(refresh, auth.TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	blacklisted, err := s.store.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if blacklisted {
		return "", domain.ErrTokenBlacklisted
	}
	return s.tokens.GenerateAccessToken(claims.UserID)
}

// Logout blacklists the caller's refresh token until it expires.
func (s *Service) Logout(ctx context.Context, p domain.Principal, refresh string) error {
	claims, err := s.tokens.Parse(refresh, auth.TokenTypeRefresh)
	if err != nil {
		return err
	}
	if claims.UserID != p.UserID {
		return domain.ErrInvalidToken
	}
	if err := s.store.BlacklistToken(ctx, claims.ID, claims.UserID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	slog.Info("User logged out", "user_id", p.UserID)
	return nil
}

func (s *Service) Profile(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.store.GetUserByID(ctx, p.UserID)
}

// UpdateProfile changes the names that are not nil. The email is read-only.
func (s *Service) UpdateProfile(ctx context.Context, p domain.Principal, firstName, lastName *string) (*domain.User, error) {
	u, err := s.store.GetUserByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	first, last := u.FirstName, u.LastName
	if firstName != nil {
		first = strings.TrimSpace(*firstName)
	}
	if lastName != nil {
		last = strings.TrimSpace(*lastName)
	}
	return s.store.UpdateUserNames(ctx, p.UserID, first, last)
}

func (s *Service) ChangePassword(ctx context.Context, p domain.Principal, oldPassword, newPassword, confirm string) error {
	u, err := s.store.GetUserByID(ctx, p.UserID)
	if err != nil {
		return err
	}

	verr := domain.NewValidationError()
	if !auth.CheckPassword(u.PasswordHash, oldPassword) {
		verr.Add("old_password", "Old password is incorrect.")
	}
	for _, msg := range auth.ValidatePassword(newPassword, u.Email, u.FirstName, u.LastName) {
		verr.Add("new_password", msg)
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	if newPassword != confirm {
		return domain.FieldError("confirm_password", "Password confirmation does not match.")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePassword(ctx, p.UserID, hash); err != nil {
		return err
	}
	slog.Info("Password changed", "user_id", p.UserID)
	return nil
}

// CreateLinkCode issues a one-time code the caller sends to the Telegram bot.
func (s *Service) CreateLinkCode(ctx context.Context, p domain.Principal) (string, time.Time, error) {
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	expiresAt := s.now().Add(s.linkCodeTTL).UTC()
	if err := s.store.CreateLinkCode(ctx, code, p.UserID, expiresAt); err != nil {
		return "", time.Time{}, err
	}
	return code, expiresAt, nil
}

// LinkChat redeems a link code and binds chatID to its user.
func (s *Service) LinkChat(ctx context.Context, code string, chatID int64) (*domain.User, error) {
	userID, err := s.store.ConsumeLinkCode(ctx, strings.ToUpper(strings.TrimSpace(code)), s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.LinkChat(ctx, chatID, userID); err != nil {
		return nil, err
	}
	slog.Info("Telegram chat linked", "user_id", userID, "chat_id", chatID)
	return s.store.GetUserByID(ctx, userID)
}

func (s *Service) UnlinkChat(ctx context.Context, chatID int64) error {
	return s.store.UnlinkChat(ctx, chatID)
}

// ChatPrincipal resolves the user bound to a Telegram chat.
func (s *Service) ChatPrincipal(ctx context.Context, chatID int64) (domain.Principal, error) {
	userID, err := s.store.UserIDByChat(ctx, chatID)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.Principal{UserID: userID}, nil
}

// PurgeExpiredTokens drops blacklist rows whose tokens have expired anyway.
func (s *Service) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.store.PurgeExpiredTokens(ctx, s.now())
}
