package store

import (
	"sort"
	"sync"

	"github.com/praetorian-inc/balance/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu      sync.RWMutex
	blobs   map[string]int64 // size keyed by ContentHash.Hex()
	results map[string]*types.FileReport // keyed by path
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		blobs:   make(map[string]int64),
		results: make(map[string]*types.FileReport),
	}
}

// AddBlob records scanned content by hash.
func (m *MemoryStore) AddBlob(id types.ContentHash, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.blobs[id.Hex()]; !exists {
		m.blobs[id.Hex()] = size
	}
	return nil
}

// BlobExists checks if content with this hash has already been scanned.
func (m *MemoryStore) BlobExists(id types.ContentHash) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.blobs[id.Hex()]
	return exists, nil
}

// AddResult stores a copy of the report, replacing the previous report for
// its path.
func (m *MemoryStore) AddResult(r *types.FileReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *r
	m.results[r.Path] = &stored
	return nil
}

// GetResultByContent returns the most recent report for the hash, or nil.
func (m *MemoryStore) GetResultByContent(id types.ContentHash) (*types.FileReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *types.FileReport
	for _, r := range m.results {
		if r.ContentID != id {
			continue
		}
		if latest == nil || r.ScannedAt.After(latest.ScannedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}

// GetResults returns all reports ordered by path.
func (m *MemoryStore) GetResults() ([]*types.FileReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reports := make([]*types.FileReport, 0, len(m.results))
	for _, r := range m.results {
		out := *r
		reports = append(reports, &out)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })
	return reports, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
