// internal/app/app.go

// Package app assembles storage, services and publishers from the config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spending-tracker/internal/account"
	"spending-tracker/internal/auth"
	"spending-tracker/internal/config"
	"spending-tracker/internal/dashboard"
	"spending-tracker/internal/events"
	"spending-tracker/internal/expense"
	"spending-tracker/internal/storage"
	"spending-tracker/internal/storage/postgres"
	"spending-tracker/internal/storage/sqlite"
)

// OpenStore connects the backend selected by DATA_BACKEND.
func OpenStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case config.BackendPostgres:
		store, err := postgres.Connect(ctx, cfg.DBConn)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendSQLite:
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
}

// NewPublisher returns an AMQP publisher, or a no-op one when AMQP_URL is unset
// or the broker is unreachable.
func NewPublisher(cfg config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.Nop{}
	}
	p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		slog.Warn("Expense events disabled", "error", err)
		return events.Nop{}
	}
	return p
}

type Services struct {
	Tokens    *auth.TokenService
	Accounts  *account.Service
	Expenses  *expense.Service
	Dashboard *dashboard.Service
}

func NewServices(cfg config.Config, store storage.Store, pub events.Publisher) Services {
	tokens := auth.NewTokenService(cfg)
	return Services{
		Tokens:    tokens,
		Accounts:  account.NewService(store, tokens, cfg.LinkCodeTTL),
		Expenses:  expense.NewService(store, pub),
		Dashboard: dashboard.NewService(store, cfg.Location),
	}
}
