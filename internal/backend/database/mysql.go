package database

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

func (c *Config) toMySQLConnection() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.DatabaseName
	mc.ParseTime = true
	return mc.FormatDSN()
}

func NewMySQLDatabase(cfg Config) (*SQLDatabase, error) {
	db, err := sqlx.Open("mysql", cfg.toMySQLConnection())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(cfg.maxOpenConns())
	db.SetConnMaxLifetime(connMaxLifetime)

	return newSQLDatabase(db, cfg.TableName), nil
}
