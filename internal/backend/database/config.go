package database

import (
	"fmt"
	"regexp"
)

const (
	TypeMySQL    = "mysql"
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"

	defaultMaxOpenConns = 10
	defaultTableName    = "colors"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

type Config struct {
	Type             string `yaml:"type"`
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	User             string `yaml:"user"`
	Password         string `yaml:"password"`
	DatabaseName     string `yaml:"databaseName"`
	TableName        string `yaml:"tableName"`
	ConnectionString string `yaml:"connectionString"`
	MaxOpenConns     int    `yaml:"maxOpenConns"`
}

// Validate checks the fields the selected driver needs. The table name ends up
// inside DDL, so it must be a plain identifier.
func (c *Config) Validate() error {
	if c.TableName == "" {
		c.TableName = defaultTableName
	}
	if !identifierPattern.MatchString(c.TableName) {
		return fmt.Errorf("invalid table name %q", c.TableName)
	}
	if c.MaxOpenConns < 0 {
		return fmt.Errorf("maxOpenConns must not be negative, got %d", c.MaxOpenConns)
	}

	switch c.Type {
	case TypeMySQL, TypePostgres:
		if c.ConnectionString != "" {
			return nil
		}
		if c.Host == "" {
			return fmt.Errorf("%s database requires a host", c.Type)
		}
		if c.Port <= 0 {
			return fmt.Errorf("%s database requires a positive port, got %d", c.Type, c.Port)
		}
		if c.DatabaseName == "" {
			return fmt.Errorf("%s database requires a database name", c.Type)
		}
	case TypeSQLite:
		if c.ConnectionString == "" {
			return fmt.Errorf("sqlite database requires a connection string")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Type)
	}
	return nil
}

func (c *Config) maxOpenConns() int {
	if c.MaxOpenConns == 0 {
		return defaultMaxOpenConns
	}
	return c.MaxOpenConns
}
