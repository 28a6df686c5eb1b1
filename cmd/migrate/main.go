// cmd/migrate/main.go
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	"spending-tracker/internal/config"
	"spending-tracker/internal/logger"
	"spending-tracker/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	cmd := flag.String("cmd", "up", "goose command: up, down, status, version, reset")
	flag.Parse()

	cfg := config.Load()
	logger.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat, "migrate")

	db, err := sql.Open("pgx", cfg.DBConn)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Failed to set dialect", "error", err)
		os.Exit(1)
	}

	slog.Info("Running migrations", "command", *cmd)
	if err := goose.RunContext(context.Background(), *cmd, db, "postgres", flag.Args()...); err != nil {
		slog.Error("Migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Migrations done", "command", *cmd)
}
