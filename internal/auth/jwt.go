// internal/auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spending-tracker/internal/config"
	"spending-tracker/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type TokenService struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		secretKey:  []byte(cfg.JWTSecret),
		accessTTL:  cfg.JWTAccessTTL,
		refreshTTL: cfg.JWTRefreshTTL,
		now:        time.Now,
	}
}

func (s *TokenService) generate(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	slog.Debug("JWT generated", "user_id", userID, "type", tokenType, "expires_at", now.Add(ttl).Format(time.DateTime))
	return tokenStr, nil
}

// GenerateAccessToken issues a short-lived access token.
func (s *TokenService) GenerateAccessToken(userID int64) (string, error) {
	return s.generate(userID, TokenTypeAccess, s.accessTTL)
}

// GeneratePair issues an access + refresh token pair.
func (s *TokenService) GeneratePair(userID int64) (TokenPair, error) {
	access, err := s.GenerateAccessToken(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.generate(userID, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Parse validates signature, expiry and the expected token type.
// Every failure is reported as domain.ErrInvalidToken.
func (s *TokenService) Parse(tokenStr, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		slog.Debug("JWT rejected", "error", err)
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != wantType || claims.UserID <= 0 || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// ParseAccessToken returns the user id of a valid access token.
func (s *TokenService) ParseAccessToken(tokenStr string) (int64, error) {
	claims, err := s.Parse(tokenStr, TokenTypeAccess)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
