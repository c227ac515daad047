package sqlite

import (
	"context"
	"errors"
	"testing"

	"crimeflow/internal/storage"
)

// TestFactoryWiring verifies that the "sqlite" kind is registered and that
// the factory passes storage.Config fields through to the backend config,
// using the newRepository test hook to avoid touching a real database.
func TestFactoryWiring(t *testing.T) {
	orig := newRepository
	defer func() { newRepository = orig }()

	var got Config
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func(), error) {
		got = cfg
		return nil, func() {}, errors.New("stop before EnsureTable")
	}

	_, err := storage.New(context.Background(), storage.Config{
		Kind:    "sqlite",
		DSN:     "crime.db",
		Table:   "violent",
		Columns: []string{"case_number", "primary_type"},
	})
	if err == nil {
		t.Fatal("expected sentinel error from test hook")
	}
	if got.DSN != "crime.db" || got.Table != "violent" || len(got.Columns) != 2 {
		t.Fatalf("config not passed through: %+v", got)
	}
}

// TestEndToEndInsert exercises the real driver against a temp database:
// open, create table, batch insert, count back.
func TestEndToEndInsert(t *testing.T) {
	ctx := context.Background()
	dsn := t.TempDir() + "/crime.db"

	repo, closeFn, err := NewRepository(ctx, Config{DSN: dsn, Table: "violent"})
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	defer closeFn()

	cols := []string{"case_number", "primary_type", "hour"}
	if err := repo.EnsureTable(ctx, cols); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}

	rows := [][]any{
		{"HZ100", "BATTERY", 14},
		{"HZ101", "ASSAULT", nil},
	}
	n, err := repo.CopyFrom(ctx, cols, rows)
	if err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted = %d, want 2", n)
	}

	var count int
	if err := repo.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM violent").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestCopyFromRowWidthMismatch(t *testing.T) {
	ctx := context.Background()
	repo, closeFn, err := NewRepository(ctx, Config{DSN: t.TempDir() + "/w.db", Table: "t"})
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	if err := repo.EnsureTable(ctx, []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CopyFrom(ctx, []string{"a", "b"}, [][]any{{1}}); err == nil {
		t.Fatal("expected width mismatch error")
	}
}
