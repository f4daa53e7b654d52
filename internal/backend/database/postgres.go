package database

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const connMaxLifetime = 5 * time.Minute

// toPgConnection builds a postgres:// URL so that credentials containing
// spaces, quotes or backslashes survive parsing.
func (c *Config) toPgConnection() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.DatabaseName,
		RawQuery: url.Values{"sslmode": []string{"disable"}}.Encode(),
	}
	return u.String()
}

func NewPostgresDatabase(cfg Config) (*SQLDatabase, error) {
	connectionConfig, err := pgx.ParseConfig(cfg.toPgConnection())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	db := sqlx.NewDb(stdlib.OpenDB(*connectionConfig), "pgx")
	db.SetMaxOpenConns(cfg.maxOpenConns())
	db.SetConnMaxLifetime(connMaxLifetime)

	return newSQLDatabase(db, cfg.TableName), nil
}
