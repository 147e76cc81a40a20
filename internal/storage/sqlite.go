// Package storage provides a local SQLite cache of fetched vendor statements,
// so reviews can be re-run without hitting the accounting API. Review results
// themselves are never persisted.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/steinunnb/vendorwatch/internal/common"
	"github.com/steinunnb/vendorwatch/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS statements (
	vendor_id  TEXT NOT NULL,
	date_from  TEXT NOT NULL,
	date_to    TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL,
	payload    TEXT NOT NULL,
	PRIMARY KEY (vendor_id, date_from, date_to)
);
CREATE TABLE IF NOT EXISTS vendors (
	id         TEXT PRIMARY KEY,
	ssn        TEXT,
	name       TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);`

// StatementCache stores raw statement lines keyed by vendor and date range.
type StatementCache struct {
	db     *sql.DB
	dbPath string
	ttl    time.Duration
}

// NewStatementCache opens (or creates) the cache database at dbPath. Entries
// older than ttl count as stale; a zero ttl disables expiry.
func NewStatementCache(dbPath string, ttl time.Duration) (*StatementCache, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: cache path is empty", common.ErrInvalidConfig)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &StatementCache{db: db, dbPath: dbPath, ttl: ttl}, nil
}

// Close closes the database connection.
func (s *StatementCache) Close() error {
	return s.db.Close()
}

// SaveStatement stores raw statement lines for one vendor and date range,
// replacing any previous entry.
func (s *StatementCache) SaveStatement(ctx context.Context, vendorID, dateFrom, dateTo string, lines []model.StatementLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode statement: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO statements (vendor_id, date_from, date_to, fetched_at, payload)
		 VALUES (?, ?, ?, ?, ?)`,
		vendorID, dateFrom, dateTo, time.Now().UTC(), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save statement: %w", err)
	}
	return nil
}

// LoadStatement returns the cached lines for one vendor and date range.
// Returns ErrCacheMiss when nothing is stored and ErrCacheStale when the
// entry has outlived the TTL.
func (s *StatementCache) LoadStatement(ctx context.Context, vendorID, dateFrom, dateTo string) ([]model.StatementLine, error) {
	var fetchedAt time.Time
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at, payload FROM statements
		 WHERE vendor_id = ? AND date_from = ? AND date_to = ?`,
		vendorID, dateFrom, dateTo).Scan(&fetchedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load statement: %w", err)
	}

	if s.ttl > 0 && time.Since(fetchedAt) > s.ttl {
		return nil, common.ErrCacheStale
	}

	var lines []model.StatementLine
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cached statement: %w", err)
	}
	return lines, nil
}

// SaveVendors replaces the cached vendor directory.
func (s *StatementCache) SaveVendors(ctx context.Context, vendors []model.Vendor) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vendors`); err != nil {
		return fmt.Errorf("failed to clear vendors: %w", err)
	}
	now := time.Now().UTC()
	for _, v := range vendors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO vendors (id, ssn, name, fetched_at) VALUES (?, ?, ?, ?)`,
			v.ID, v.SSN, v.Name, now); err != nil {
			return fmt.Errorf("failed to save vendor %s: %w", v.ID, err)
		}
	}
	return tx.Commit()
}

// LoadVendors returns the cached vendor directory, ordered by name.
func (s *StatementCache) LoadVendors(ctx context.Context) ([]model.Vendor, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, ssn, name FROM vendors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var vendors []model.Vendor
	for rows.Next() {
		var v model.Vendor
		var ssn sql.NullString
		if err := rows.Scan(&v.ID, &ssn, &v.Name); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		v.SSN = ssn.String
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vendors: %w", err)
	}
	if len(vendors) == 0 {
		return nil, common.ErrCacheMiss
	}
	return vendors, nil
}
