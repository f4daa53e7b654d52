package database

import (
	"context"

	"github.com/jo-hoe/colorstash/internal/common"
)

type DatabaseService interface {
	// InsertColor appends one row; inserted_at is filled in by the database.
	InsertColor(ctx context.Context, color common.Color) error
	CountByColor(ctx context.Context, color common.Color) (int, error)
	Ping(ctx context.Context) error
	Close() error
}
