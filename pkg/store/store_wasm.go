//go:build wasm

package store

// New creates an in-memory store for WASM builds.
// cfg.Path is ignored since WASM has no SQLite driver.
func New(cfg Config) (Store, error) {
	return NewMemory(), nil
}
