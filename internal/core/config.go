package core

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jo-hoe/colorstash/internal/backend/database"
	"github.com/jo-hoe/colorstash/internal/backend/documentstore"
	"github.com/jo-hoe/colorstash/internal/backend/objectstore"
	"github.com/jo-hoe/colorstash/internal/common"
)

type ServiceConfig struct {
	Port              int                  `yaml:"port"`
	ImgWidth          int                  `yaml:"imgWidth"`
	ImgHeight         int                  `yaml:"imgHeight"`
	RequestTimeoutSec int                  `yaml:"requestTimeoutSec"`
	Log               common.LogConfig     `yaml:"log"`
	Storage           objectstore.Config   `yaml:"storage"`
	Database          database.Config      `yaml:"database"`
	DocumentStore     documentstore.Config `yaml:"documentStore"`
}

// LoadConfig loads configuration from the specified YAML file. JSON is valid
// YAML, so a JSON config file loads the same way.
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, common.E(common.KindConfig, "load config", fmt.Errorf("failed to read config file %s: %w", configPath, err))
	}

	// Parse YAML
	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, common.E(common.KindConfig, "load config", fmt.Errorf("failed to parse config file %s: %w", configPath, err))
	}

	if err := config.Validate(); err != nil {
		return nil, common.E(common.KindConfig, "load config", fmt.Errorf("invalid configuration in %s: %w", configPath, err))
	}

	return &config, nil
}

func (c *ServiceConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.ImgWidth <= 0 || c.ImgHeight <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.ImgWidth, c.ImgHeight)
	}
	if c.RequestTimeoutSec < 0 {
		return fmt.Errorf("requestTimeoutSec must not be negative, got %d", c.RequestTimeoutSec)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.DocumentStore.Validate(); err != nil {
		return fmt.Errorf("documentStore: %w", err)
	}
	return nil
}

// RequestTimeout is zero when requests run without a deadline.
func (c *ServiceConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}
