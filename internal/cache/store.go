// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists fetched PubMed records in a local SQLite
// database so repeated queries skip efetch calls.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pharma-papers/pkg/types"
)

const dbFile = "records.db"

// Store is a PMID-keyed cache of fetched records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at dir/records.db, creating
// the schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS records (
		pmid TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// Get returns the cached record for pmid, or found=false on a miss.
func (s *Store) Get(ctx context.Context, pmid string) (rec *types.Record, found bool, err error) {
	var data string
	err = s.db.QueryRowContext(ctx,
		`SELECT data FROM records WHERE pmid = ?`, pmid,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache for %s: %w", pmid, err)
	}

	var r types.Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		// A corrupt row behaves like a miss; the caller refetches and
		// overwrites it.
		return nil, false, nil
	}
	return &r, true, nil
}

// Put upserts a record into the cache.
func (s *Store) Put(ctx context.Context, rec *types.Record) error {
	if rec == nil || rec.PMID == "" {
		return fmt.Errorf("record has no PMID")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record %s: %w", rec.PMID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (pmid, data, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(pmid) DO UPDATE SET data=excluded.data, fetched_at=excluded.fetched_at`,
		rec.PMID, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache for %s: %w", rec.PMID, err)
	}
	return nil
}
