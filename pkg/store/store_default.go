//go:build !wasm

package store

import "fmt"

// New creates a Store for cfg: the in-memory store for an empty or
// ":memory:" path, SQLite otherwise.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" || cfg.Path == MemoryPath {
		return NewMemory(), nil
	}

	s, err := NewSQLite(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.Path, err)
	}
	return s, nil
}
