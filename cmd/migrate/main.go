package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var errUsage = errors.New("usage")

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	loadEnvFiles()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(context.Background(), *command, *name, logger); err != nil {
		logger.Error("migrate failed", "command", *command, "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command, name string, logger *slog.Logger) error {
	dir := migrationsDir()

	if command == "create" {
		if name == "" {
			return fmt.Errorf("%w: -name is required for 'create'", errUsage)
		}
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		logger.Info("migration created", "name", name, "dir", dir)
		return nil
	}

	pool, err := pgxpool.New(ctx, databaseDSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrate(db, command, dir); err != nil {
		return err
	}
	logger.Info("migrations done", "command", command, "dir", dir)
	return nil
}

func migrate(db *sql.DB, command, dir string) error {
	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("rollback migrations: %w", err)
		}
	case "status":
		if err := goose.Status(db, dir); err != nil {
			return fmt.Errorf("check migration status: %w", err)
		}
	default:
		return fmt.Errorf("%w: unknown command %q, use up, down, status or create", errUsage, command)
	}
	return nil
}
