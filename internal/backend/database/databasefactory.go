package database

import (
	"context"
	"fmt"
	"log/slog"
)

// NewDatabase opens the configured driver and ensures the color table exists.
func NewDatabase(ctx context.Context, cfg Config) (database DatabaseService, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	var store *SQLDatabase
	switch cfg.Type {
	case TypeMySQL:
		store, err = NewMySQLDatabase(cfg)
	case TypePostgres:
		store, err = NewPostgresDatabase(cfg)
	case TypeSQLite:
		store, err = NewSQLiteDatabase(cfg.ConnectionString, cfg.TableName)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	if err = store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to reach %s database: %w", cfg.Type, err)
	}

	// Idempotent, so concurrent starts against the same table are safe
	slog.Info("initializing database schema (ensuring tables exist)", "type", cfg.Type, "table", cfg.TableName)
	if err = store.CreateTable(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", cfg.TableName, err)
	}

	return store, nil
}
