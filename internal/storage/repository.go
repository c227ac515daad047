// Package storage contains storage-agnostic contracts for persisting
// filtered incident records. Concrete backends (sqlite, postgres, mysql)
// live in subpackages and register themselves with the factory here, so the
// pipeline stays fully backend-agnostic: it builds a storage.Config from
// the dataset config and talks only to the Repository interface.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository is the minimal sink contract the pipeline needs.
type Repository interface {
	// CopyFrom bulk-inserts rows aligned to the columns order and returns
	// the number of rows inserted.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Exec executes an arbitrary SQL statement (typically DDL).
	Exec(ctx context.Context, sql string) error

	// Close releases the backend's resources.
	Close()
}

// Config carries backend-agnostic connection settings. Each backend maps it
// onto its own options.
type Config struct {
	Kind    string   // registered backend kind, e.g. "sqlite"
	DSN     string   // backend connection string
	Table   string   // destination table
	Columns []string // ordered destination columns
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a backend kind.
// Backends call this from init; tests may override kinds freely.
func Register(kind string, fn Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = fn
}

// New opens a Repository of the configured kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	fn, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unsupported kind %q (registered: %v)", cfg.Kind, ListKinds())
	}
	return fn(ctx, cfg)
}

// ListKinds returns the registered backend kinds, sorted.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
