package scanner

import "github.com/praetorian-inc/balance/pkg/types"

// ContentItem is one text to check.
type ContentItem struct {
	Source  string `json:"source"`  // file path or caller-chosen label
	Content []byte `json:"content"` // raw bytes, decoded as UTF-8
}

// ScanResult is the outcome for one item of a batch.
// Exactly one of Report and Error is set.
type ScanResult struct {
	Source string            `json:"source"`
	Report *types.FileReport `json:"report,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// BatchScanResult holds per-item results in input order.
type BatchScanResult struct {
	Results []ScanResult  `json:"results"`
	Summary types.Summary `json:"summary"`
}

// DebugLogger receives diagnostic messages.
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger discards everything.
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}
