// Package mysql implements a MySQL-backed storage.Repository using
// database/sql with the go-sql-driver. Bulk inserts use a multi-row INSERT
// per batch, MySQL's practical equivalent of COPY for moderate volumes.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Config holds MySQL repository configuration.
type Config struct {
	DSN     string   // go-sql-driver DSN, e.g. "user:pass@tcp(host:3306)/db"
	Table   string   // target table name
	Columns []string // ordered destination columns
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a MySQL connection pool and returns a Repository plus
// a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("mysql: DSN must not be empty")
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// CopyFrom inserts the given rows using one multi-row INSERT statement.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("mysql: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	single := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"
	groups := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("mysql: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		groups[i] = single
		args = append(args, row...)
	}

	stmt := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		r.cfg.Table,
		strings.Join(columns, ", "),
		strings.Join(groups, ", "),
	)
	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("mysql: insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return int64(len(rows)), nil
	}
	return n, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("mysql: exec: %w", err)
	}
	return nil
}

// EnsureTable creates the destination table when it does not exist, with
// TEXT columns throughout.
func (r *Repository) EnsureTable(ctx context.Context, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("mysql: EnsureTable: columns must not be empty")
	}
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = c + " TEXT"
	}
	return r.Exec(ctx, fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s)", r.cfg.Table, strings.Join(defs, ", "),
	))
}
