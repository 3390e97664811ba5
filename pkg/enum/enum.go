package enum

import (
	"context"

	"github.com/praetorian-inc/balance/pkg/types"
)

// Callback receives one file's content, its content hash and its path.
type Callback func(content []byte, id types.ContentHash, path string) error

// Enumerator discovers files to check.
type Enumerator interface {
	// Enumerate yields files from the source. The callback may be invoked
	// from several goroutines at once.
	Enumerate(ctx context.Context, callback Callback) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks checks files reached through symbolic links. Links to
	// directories are never followed.
	FollowSymlinks bool

	// Extensions restricts enumeration to files with these extensions,
	// e.g. ".go" or "ts". Empty means every text file.
	Extensions []string

	// Workers is the number of parallel file readers (0 = NumCPU).
	Workers int

	// OnReadError, if set, receives files that were listed but could not be
	// read, and enumeration continues. Otherwise the first read error stops it.
	OnReadError func(err *types.InputError)
}
