// internal/app/app_test.go
package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"spending-tracker/internal/account"
	"spending-tracker/internal/config"
	"spending-tracker/internal/domain"
	"spending-tracker/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "expenses.db")
	cfg := config.Config{DataBackend: config.BackendSQLite, SQLitePath: path}

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.CreateUser(context.Background(), &domain.User{Email: "a@b.c", Username: "u", PasswordHash: "x"}))
	assert.FileExists(t, path)
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	_, err := OpenStore(context.Background(), config.Config{DataBackend: "mongo"})
	assert.Error(t, err)
}

func TestNewPublisherWithoutBroker(t *testing.T) {
	assert.IsType(t, events.Nop{}, NewPublisher(config.Config{}))
}

func TestNewServices(t *testing.T) {
	cfg := config.Config{
		DataBackend:   config.BackendSQLite,
		SQLitePath:    ":memory:",
		JWTSecret:     "services-test-secret",
		JWTAccessTTL:  time.Minute,
		JWTRefreshTTL: time.Hour,
		LinkCodeTTL:   time.Minute,
		Location:      time.UTC,
	}
	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	svc := NewServices(cfg, store, events.Nop{})
	sess, err := svc.Accounts.Register(context.Background(), accountInput())
	require.NoError(t, err)

	userID, err := svc.Tokens.ParseAccessToken(sess.Tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, userID)
}

func accountInput() account.RegisterInput {
	return account.RegisterInput{
		Email:           "svc@example.com",
		Password:        "Correct-Horse-42",
		ConfirmPassword: "Correct-Horse-42",
	}
}
