//go:build !wasm

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/praetorian-inc/balance/pkg/types"
	_ "modernc.org/sqlite"
)

// driverName is the database/sql name registered by modernc.org/sqlite.
const driverName = "sqlite"

// timestampLayout is fixed width so scanned_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Serialize writers; Core records from several goroutines.
	db.SetMaxOpenConns(1)

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddBlob records scanned content by hash.
func (s *SQLiteStore) AddBlob(id types.ContentHash, size int64) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO blobs (id, size) VALUES (?, ?)", id.Hex(), size)
	if err != nil {
		return fmt.Errorf("inserting blob: %w", err)
	}
	return nil
}

// BlobExists checks if content with this hash has already been scanned.
func (s *SQLiteStore) BlobExists(id types.ContentHash) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM blobs WHERE id = ?", id.Hex()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("querying blob: %w", err)
	}
	return count > 0, nil
}

// AddResult stores a report, replacing the previous report for its path.
func (s *SQLiteStore) AddResult(r *types.FileReport) error {
	resultJSON, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO results (blob_id, path, status, result_json, scanned_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		r.ContentID.Hex(),
		r.Path,
		string(r.Result.Status),
		string(resultJSON),
		r.ScannedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

// GetResultByContent returns the most recent report for the hash, or nil.
func (s *SQLiteStore) GetResultByContent(id types.ContentHash) (*types.FileReport, error) {
	row := s.db.QueryRow(`
		SELECT r.blob_id, b.size, r.path, r.result_json, r.scanned_at
		FROM results r JOIN blobs b ON b.id = r.blob_id
		WHERE r.blob_id = ?
		ORDER BY r.scanned_at DESC
		LIMIT 1
	`, id.Hex())

	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying result: %w", err)
	}
	return report, nil
}

// GetResults returns all reports ordered by path.
func (s *SQLiteStore) GetResults() ([]*types.FileReport, error) {
	rows, err := s.db.Query(`
		SELECT r.blob_id, b.size, r.path, r.result_json, r.scanned_at
		FROM results r JOIN blobs b ON b.id = r.blob_id
		ORDER BY r.path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var reports []*types.FileReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*types.FileReport, error) {
	var (
		blobHex    string
		resultJSON string
		scannedAt  string
		report     types.FileReport
	)
	if err := row.Scan(&blobHex, &report.Size, &report.Path, &resultJSON, &scannedAt); err != nil {
		return nil, err
	}

	id, err := types.ParseContentHash(blobHex)
	if err != nil {
		return nil, err
	}
	report.ContentID = id

	if err := json.Unmarshal([]byte(resultJSON), &report.Result); err != nil {
		return nil, fmt.Errorf("unmarshaling result: %w", err)
	}

	report.ScannedAt, err = time.Parse(timestampLayout, scannedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing scanned_at: %w", err)
	}
	return &report, nil
}
