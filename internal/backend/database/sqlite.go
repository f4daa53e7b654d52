package database

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func NewSQLiteDatabase(connectionString, tableName string) (*SQLDatabase, error) {
	db, err := sqlx.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}
	// SQLite has a single writer, and every connection to ":memory:" is a
	// separate database.
	db.SetMaxOpenConns(1)

	return newSQLDatabase(db, tableName), nil
}
