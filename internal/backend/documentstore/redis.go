package documentstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jo-hoe/colorstash/internal/common"
)

const defaultDialTimeout = 5 * time.Second

// RedisStore keeps each item as a hash under "<table>:<timestamp>:<uuid>" and
// indexes item keys per color in a set, so counting does not need a scan.
type RedisStore struct {
	client    *redis.Client
	tableName string
	now       func() time.Time
}

func NewRedisStore(ctx context.Context, cfg Config) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: defaultDialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, defaultDialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return newRedisStore(rdb, cfg.TableName), nil
}

func newRedisStore(client *redis.Client, tableName string) *RedisStore {
	return &RedisStore{
		client:    client,
		tableName: tableName,
		now:       time.Now,
	}
}

func (s *RedisStore) InsertColor(ctx context.Context, color common.Color) error {
	item := newItem(color, s.now())
	key := fmt.Sprintf("%s:%s:%s", s.tableName, item.Timestamp, uuid.NewString())

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, item)
		pipe.SAdd(ctx, s.colorIndexKey(color), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store %s in %s: %w", color, s.tableName, err)
	}
	return nil
}

func (s *RedisStore) CountByColor(ctx context.Context, color common.Color) (int, error) {
	n, err := s.client.SCard(ctx, s.colorIndexKey(color)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s in %s: %w", color, s.tableName, err)
	}
	return int(n), nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) colorIndexKey(color common.Color) string {
	return fmt.Sprintf("%s:color:%d:%d:%d", s.tableName, color.R, color.G, color.B)
}
