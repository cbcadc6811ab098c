// Package duckdb exports extracted VCF content to a DuckDB database.
// Each imported file replaces any earlier import of the same path.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding extracted files.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS vcf_files (
			path VARCHAR,
			size BIGINT,
			mod_time_ns BIGINT,
			imported_at TIMESTAMP,
			column_header VARCHAR,
			column_header_lines BIGINT,
			record_count BIGINT,
			malformed_count BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS meta_lines (
			path VARCHAR,
			line BIGINT,
			kind VARCHAR,
			raw_text VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS variant_records (
			path VARCHAR,
			line BIGINT,
			chrom VARCHAR,
			pos VARCHAR,
			id VARCHAR,
			ref VARCHAR,
			alt VARCHAR,
			qual VARCHAR,
			filter VARCHAR,
			info VARCHAR
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
