package documentstore

import (
	"context"
	"fmt"
	"log/slog"
)

func NewDocumentStore(ctx context.Context, cfg Config) (DocumentService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document store configuration: %w", err)
	}

	var (
		store DocumentService
		err   error
	)
	switch cfg.Type {
	case TypeDynamoDB:
		store, err = NewDynamoDBStore(ctx, cfg)
	case TypeRedis:
		store, err = NewRedisStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported document store: %s", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("document store initialized", "type", cfg.Type, "table", cfg.TableName)
	return store, nil
}
