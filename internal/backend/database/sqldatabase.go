package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jo-hoe/colorstash/internal/common"
)

// SQLDatabase implements DatabaseService for every supported driver. The
// statements are portable; only placeholders differ and sqlx rebinds them.
type SQLDatabase struct {
	db        *sqlx.DB
	tableName string
}

func newSQLDatabase(db *sqlx.DB, tableName string) *SQLDatabase {
	return &SQLDatabase{
		db:        db,
		tableName: tableName,
	}
}

func (s *SQLDatabase) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		r           int       not null,
		g           int       not null,
		b           int       not null,
		inserted_at timestamp not null default current_timestamp
	)`, s.tableName))
	return err
}

func (s *SQLDatabase) InsertColor(ctx context.Context, color common.Color) error {
	query := s.db.Rebind(fmt.Sprintf("INSERT INTO %s (r, g, b) VALUES (?, ?, ?)", s.tableName))
	if _, err := s.db.ExecContext(ctx, query, int(color.R), int(color.G), int(color.B)); err != nil {
		return fmt.Errorf("failed to insert %s into %s: %w", color, s.tableName, err)
	}
	return nil
}

func (s *SQLDatabase) CountByColor(ctx context.Context, color common.Color) (int, error) {
	query := s.db.Rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE r = ? AND g = ? AND b = ?", s.tableName))
	var count int
	if err := s.db.GetContext(ctx, &count, query, int(color.R), int(color.G), int(color.B)); err != nil {
		return 0, fmt.Errorf("failed to count %s in %s: %w", color, s.tableName, err)
	}
	return count, nil
}

func (s *SQLDatabase) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
