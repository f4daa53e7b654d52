package documentstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jo-hoe/colorstash/internal/common"
)

const (
	TypeDynamoDB = "dynamodb"
	TypeRedis    = "redis"
)

type DocumentService interface {
	InsertColor(ctx context.Context, color common.Color) error
	CountByColor(ctx context.Context, color common.Color) (int, error)
	Close() error
}

type Config struct {
	Type      string `yaml:"type"`
	TableName string `yaml:"tableName"`

	// dynamodb
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`

	// redis
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
}

func (c *Config) Validate() error {
	if c.TableName == "" {
		return fmt.Errorf("document store requires a table name")
	}
	switch c.Type {
	case TypeDynamoDB:
	case TypeRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis document store requires redisAddr")
		}
	default:
		return fmt.Errorf("unsupported document store: %s", c.Type)
	}
	return nil
}

// Item is the stored document. Both backends use the same attribute names.
type Item struct {
	Timestamp string `dynamodbav:"timestamp" redis:"timestamp"`
	R         int    `dynamodbav:"r" redis:"r"`
	G         int    `dynamodbav:"g" redis:"g"`
	B         int    `dynamodbav:"b" redis:"b"`
}

func newItem(color common.Color, now time.Time) Item {
	return Item{
		Timestamp: strconv.FormatInt(now.UnixMilli(), 10),
		R:         int(color.R),
		G:         int(color.G),
		B:         int(color.B),
	}
}
