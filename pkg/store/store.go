package store

import "github.com/praetorian-inc/balance/pkg/types"

// MemoryPath selects the in-memory store.
const MemoryPath = ":memory:"

// Store persists scan reports.
type Store interface {
	// AddBlob records scanned content by hash.
	AddBlob(id types.ContentHash, size int64) error

	// BlobExists checks if content with this hash has already been scanned.
	BlobExists(id types.ContentHash) (bool, error)

	// AddResult stores a report, replacing any earlier report for the same
	// path. Each path has at most one report: the one for its latest content.
	AddResult(r *types.FileReport) error

	// GetResultByContent returns the most recent report for content with this
	// hash, or nil if there is none.
	GetResultByContent(id types.ContentHash) (*types.FileReport, error)

	// GetResults returns all reports ordered by path.
	GetResults() ([]*types.FileReport, error)

	// Close releases the store.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path. Empty or ":memory:" selects the
	// in-memory store.
	Path string
}
