package storage

import (
	"context"
	"errors"
	"testing"
)

// fakeRepo is a minimal Repository implementation for tests.
type fakeRepo struct {
	copies [][]any
	closed bool
	fail   error
}

func (f *fakeRepo) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	f.copies = append(f.copies, rows...)
	return int64(len(rows)), nil
}
func (f *fakeRepo) Exec(ctx context.Context, sql string) error { return nil }
func (f *fakeRepo) Close()                                     { f.closed = true }

// TestRegisterAndNew_Success verifies that registering a backend enables
// New() to return the corresponding repository.
func TestRegisterAndNew_Success(t *testing.T) {
	kind := "fake"
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		return &fakeRepo{}, nil
	})

	repo, err := New(context.Background(), Config{Kind: kind})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if repo == nil {
		t.Fatalf("New returned nil repo")
	}

	found := false
	for _, k := range ListKinds() {
		if k == kind {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("registered kind %q not present in ListKinds: %v", kind, ListKinds())
	}
}

// TestNew_Unsupported verifies that unsupported kinds return a helpful error.
func TestNew_Unsupported(t *testing.T) {
	_, err := New(context.Background(), Config{Kind: "no-such-backend"})
	if err == nil {
		t.Fatal("expected error for unsupported kind")
	}
}

// TestRegister_Override verifies that re-registering a kind overrides the
// previous factory (useful for tests and dynamic wiring).
func TestRegister_Override(t *testing.T) {
	kind := "override-me"
	calls := 0
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		calls += 1
		return &fakeRepo{}, nil
	})
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		calls += 10
		return &fakeRepo{}, nil
	})
	if _, err := New(context.Background(), Config{Kind: kind}); err != nil {
		t.Fatal(err)
	}
	if calls != 10 { // only the second factory should have been used
		t.Fatalf("factory call count = %d, want 10", calls)
	}
}

func TestLoad_Batches(t *testing.T) {
	repo := &fakeRepo{}
	rows := make([][]any, 7)
	for i := range rows {
		rows[i] = []any{i}
	}
	total, err := Load(context.Background(), repo, []string{"n"}, rows, 3)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
	if len(repo.copies) != 7 {
		t.Fatalf("copied rows = %d, want 7", len(repo.copies))
	}
}

func TestLoad_EmptyAndErrors(t *testing.T) {
	total, err := Load(context.Background(), &fakeRepo{}, []string{"n"}, nil, 0)
	if err != nil || total != 0 {
		t.Fatalf("empty load: total=%d err=%v", total, err)
	}

	boom := errors.New("boom")
	if _, err := Load(context.Background(), &fakeRepo{fail: boom}, []string{"n"}, [][]any{{1}}, 1); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}
