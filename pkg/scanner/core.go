package scanner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/praetorian-inc/balance/pkg/store"
	"github.com/praetorian-inc/balance/pkg/types"
)

// Core scans content and records every report in a store.
type Core struct {
	store  store.Store
	logger DebugLogger
	now    func() time.Time
}

// NewCore creates a Core that records into s. A nil store gets an in-memory
// one. Core takes ownership of the store and closes it in Close.
func NewCore(s store.Store, logger DebugLogger) *Core {
	if logger == nil {
		logger = NoopLogger{}
	}
	if s == nil {
		s = store.NewMemory()
	}
	return &Core{
		store:  s,
		logger: logger,
		now:    time.Now,
	}
}

// Store returns the store reports are recorded in.
func (c *Core) Store() store.Store {
	return c.store
}

// Scan checks one item and stores the report.
// Undecodable content returns a *types.InputError and stores nothing.
func (c *Core) Scan(item ContentItem) (*types.FileReport, error) {
	text, err := decode(item.Content)
	if err != nil {
		c.logger.Log("skipping %s: %v", item.Source, err)
		return nil, &types.InputError{Path: item.Source, Err: err}
	}
	result, comment := scan(text)
	if comment != nil {
		c.logger.Log("%s: block comment opened at %s is never closed", item.Source, *comment)
	}

	report := &types.FileReport{
		Path:      item.Source,
		ContentID: types.HashContent(item.Content),
		Size:      int64(len(item.Content)),
		Result:    result,
		ScannedAt: c.now().UTC(),
	}
	if err := c.Record(report); err != nil {
		return nil, err
	}

	c.logger.Log("%s: %s", item.Source, result)
	return report, nil
}

// Record stores a report computed elsewhere, such as one reused from an
// earlier run.
func (c *Core) Record(report *types.FileReport) error {
	if err := c.store.AddBlob(report.ContentID, report.Size); err != nil {
		return fmt.Errorf("storing blob: %w", err)
	}
	if err := c.store.AddResult(report); err != nil {
		return fmt.Errorf("storing result: %w", err)
	}
	return nil
}

// ScanBatch checks items concurrently and returns results in input order.
// Input errors are reported per item; store failures abort the batch.
func (c *Core) ScanBatch(ctx context.Context, items []ContentItem) (*BatchScanResult, error) {
	results := make([]ScanResult, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].Source = item.Source

			report, err := c.Scan(item)
			if err != nil {
				if types.IsInputError(err) {
					results[i].Error = err.Error()
					return nil
				}
				return err
			}
			results[i].Report = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchScanResult{Results: results}
	for _, r := range results {
		if r.Report == nil {
			batch.Summary.InputErrors++
			continue
		}
		batch.Summary.Add(r.Report.Result)
	}
	return batch, nil
}

// Close releases the store.
func (c *Core) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
