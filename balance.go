// Package balance checks that (), [] and {} are balanced in source text.
//
// Brackets inside // line comments and /* */ block comments are ignored.
// A check stops at the first closing bracket that has no opener or closes
// the wrong kind; otherwise every bracket still open at the end is listed.
//
// # Basic Usage
//
//	res := balance.Check("func main() { fmt.Println(\"hi\" }")
//	if !res.OK() {
//	    fmt.Println(res) // mismatched closing } at line 1 col 32, ...
//	}
//
// # Files and Batches
//
// CheckFile reads and decodes a file; read and decode failures are returned
// as *InputError rather than as a Result:
//
//	res, err := balance.CheckFile("main.c")
//
// A Checker records results in a store and checks many texts in parallel:
//
//	checker := balance.NewChecker()
//	defer checker.Close()
//
//	batch, err := checker.CheckBatch(ctx, []balance.Item{
//	    {Source: "a.go", Content: a},
//	    {Source: "b.go", Content: b},
//	})
package balance

import (
	"context"

	"github.com/praetorian-inc/balance/pkg/enum"
	"github.com/praetorian-inc/balance/pkg/scanner"
	"github.com/praetorian-inc/balance/pkg/store"
	"github.com/praetorian-inc/balance/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/balance" without subpackages.
type (
	// Result is the outcome of checking one text.
	Result = types.Result

	// Status tags which variant a Result is.
	Status = types.Status

	// Position locates a character by rune offset, line and column.
	Position = types.Position

	// OpenBracket is an opening bracket and where it was found.
	OpenBracket = types.OpenBracket

	// BracketKind is paren, square or curly.
	BracketKind = types.BracketKind

	// InputError reports a file that could not be read or decoded.
	InputError = types.InputError

	// FileReport ties a Result to the content it came from.
	FileReport = types.FileReport

	// Item is one text for CheckBatch.
	Item = scanner.ContentItem

	// BatchResult holds CheckBatch results in input order.
	BatchResult = scanner.BatchScanResult
)

// Re-export result status constants.
const (
	StatusBalanced         = types.StatusBalanced
	StatusUnclosed         = types.StatusUnclosed
	StatusUnexpectedCloser = types.StatusUnexpectedCloser
	StatusMismatched       = types.StatusMismatched
)

// Check scans text and returns its result.
func Check(text string) Result {
	return scanner.Scan(text)
}

// CheckFile reads path as UTF-8 and checks it.
func CheckFile(path string) (Result, error) {
	content, err := enum.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	res, err := scanner.ScanBytes(content)
	if err != nil {
		return Result{}, &types.InputError{Path: path, Err: err}
	}
	return res, nil
}

// Checker checks many texts and records the reports.
type Checker struct {
	core *scanner.Core
}

type checkerConfig struct {
	store  store.Store
	logger scanner.DebugLogger
}

// Option configures a Checker.
type Option func(*checkerConfig)

// WithStore records reports in s instead of an in-memory store.
// The Checker takes ownership and closes s on Close.
func WithStore(s store.Store) Option {
	return func(c *checkerConfig) {
		c.store = s
	}
}

// WithLogger sends diagnostic messages to l.
func WithLogger(l scanner.DebugLogger) Option {
	return func(c *checkerConfig) {
		c.logger = l
	}
}

// NewChecker creates a Checker with the given options.
func NewChecker(opts ...Option) *Checker {
	config := &checkerConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return &Checker{core: scanner.NewCore(config.store, config.logger)}
}

// CheckBytes checks one item and records its report.
func (c *Checker) CheckBytes(source string, content []byte) (*FileReport, error) {
	return c.core.Scan(scanner.ContentItem{Source: source, Content: content})
}

// CheckBatch checks items in parallel. Undecodable items are reported per
// item; only store failures and cancellation fail the whole batch.
func (c *Checker) CheckBatch(ctx context.Context, items []Item) (*BatchResult, error) {
	return c.core.ScanBatch(ctx, items)
}

// Reports returns every recorded report ordered by path.
func (c *Checker) Reports() ([]*FileReport, error) {
	return c.core.Store().GetResults()
}

// Close releases the store.
// Always call Close when done with the checker.
func (c *Checker) Close() error {
	return c.core.Close()
}
