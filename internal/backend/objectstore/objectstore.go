package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	defaultEndpoint = "s3.amazonaws.com"
	defaultRegion   = "us-east-1"

	// MaxExpiration is the longest presigned URL lifetime S3 accepts.
	MaxExpiration = 7 * 24 * time.Hour
)

type Config struct {
	Endpoint      string `yaml:"endpoint"`
	Region        string `yaml:"region"`
	BucketName    string `yaml:"bucketName"`
	ExpirationSec int    `yaml:"expirationSec"`
	UseSSL        *bool  `yaml:"useSSL"`
	AccessKey     string `yaml:"accessKey"`
	SecretKey     string `yaml:"secretKey"`
}

func (c *Config) Validate() error {
	if c.BucketName == "" {
		return fmt.Errorf("storage requires a bucket name")
	}
	expiration := c.Expiration()
	if expiration <= 0 || expiration > MaxExpiration {
		return fmt.Errorf("expirationSec must be between 1 and %d, got %d", int(MaxExpiration.Seconds()), c.ExpirationSec)
	}
	return nil
}

func (c *Config) Expiration() time.Duration {
	return time.Duration(c.ExpirationSec) * time.Second
}

func (c *Config) endpoint() string {
	if c.Endpoint == "" {
		return defaultEndpoint
	}
	return c.Endpoint
}

func (c *Config) region() string {
	if c.Region == "" {
		return defaultRegion
	}
	return c.Region
}

func (c *Config) secure() bool {
	if c.UseSSL == nil {
		return true
	}
	return *c.UseSSL
}

// credentials uses static keys when both are configured, otherwise the usual
// AWS chain: environment, shared credentials file, instance role.
func (c *Config) credentials() *credentials.Credentials {
	if c.AccessKey != "" && c.SecretKey != "" {
		return credentials.NewStaticV4(c.AccessKey, c.SecretKey, "")
	}
	return credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
		&credentials.IAM{},
	})
}

// S3Store uploads objects to one bucket of an S3-compatible service and
// issues presigned GET links for them.
type S3Store struct {
	client *minio.Client
	bucket string
}

func New(cfg Config) (*S3Store, error) {
	client, err := minio.New(cfg.endpoint(), &minio.Options{
		Creds:  cfg.credentials(),
		Secure: cfg.secure(),
		Region: cfg.region(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	return &S3Store{
		client: client,
		bucket: cfg.BucketName,
	}, nil
}

// Upload stores data under name. Existing objects are overwritten.
func (s *S3Store) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	info, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", name, s.bucket, err)
	}
	slog.Debug("uploaded object", "bucket", s.bucket, "key", name, "size_bytes", info.Size)
	return nil
}

func (s *S3Store) Presign(ctx context.Context, name string, expires time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, name, expires, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL for %s: %w", name, err)
	}
	return u.String(), nil
}

// CheckBucket fails when the bucket is missing or unreachable.
func (s *S3Store) CheckBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}
