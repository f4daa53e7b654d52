package archiver

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/jo-hoe/colorstash/internal/backend/objectstore"
	"github.com/jo-hoe/colorstash/internal/common"
)

const envPrefix = "ARCHIVER"

// Config is read from ARCHIVER_* environment variables.
type Config struct {
	BucketName string `envconfig:"BUCKET_NAME" default:"bucket-test-001-a"`
	Region     string `envconfig:"REGION" default:"us-east-1"`
	Endpoint   string `envconfig:"ENDPOINT"`
	UseSSL     bool   `envconfig:"USE_SSL" default:"true"`
	AccessKey  string `envconfig:"ACCESS_KEY"`
	SecretKey  string `envconfig:"SECRET_KEY"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"json"`
}

// LoadConfig loads the given .env files, if present, and then the
// environment. Variables already set in the environment win over .env values.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, common.E(common.KindConfig, "load env file", fmt.Errorf("failed to load %s: %w", file, err))
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, common.E(common.KindConfig, "load env", err)
	}
	if cfg.BucketName == "" {
		return Config{}, common.E(common.KindConfig, "load env", errors.New("bucket name must not be empty"))
	}
	return cfg, nil
}

func (c Config) Storage() objectstore.Config {
	useSSL := c.UseSSL
	return objectstore.Config{
		Endpoint:   c.Endpoint,
		Region:     c.Region,
		BucketName: c.BucketName,
		UseSSL:     &useSSL,
		AccessKey:  c.AccessKey,
		SecretKey:  c.SecretKey,
	}
}

func (c Config) Log() common.LogConfig {
	return common.LogConfig{Level: c.LogLevel, Encoding: c.LogFormat}
}
