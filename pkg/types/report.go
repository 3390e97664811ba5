package types

import "time"

// FileReport ties a scan result to the content it was computed from.
type FileReport struct {
	Path      string      `json:"path"`
	ContentID ContentHash `json:"content_id"`
	Size      int64       `json:"size"`
	Result    Result      `json:"result"`
	ScannedAt time.Time   `json:"scanned_at"`
}

// Summary counts reports by outcome.
type Summary struct {
	Files            int `json:"files"`
	Balanced         int `json:"balanced"`
	Unclosed         int `json:"unclosed"`
	UnexpectedCloser int `json:"unexpected_closer"`
	Mismatched       int `json:"mismatched"`
	InputErrors      int `json:"input_errors"`
	Skipped          int `json:"skipped,omitempty"`
}

// Add counts one result.
func (s *Summary) Add(r Result) {
	s.Files++
	switch r.Status {
	case StatusBalanced:
		s.Balanced++
	case StatusUnclosed:
		s.Unclosed++
	case StatusUnexpectedCloser:
		s.UnexpectedCloser++
	case StatusMismatched:
		s.Mismatched++
	}
}

// Failed returns the number of files with any bracket error.
func (s Summary) Failed() int {
	return s.Unclosed + s.UnexpectedCloser + s.Mismatched
}
