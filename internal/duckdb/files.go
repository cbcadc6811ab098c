package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vcfsplit/internal/vcf"
)

// WriteFile stores the meta lines, column header and records of f under
// fp.Path, replacing any rows from an earlier import of that path.
//
// All statements run in one transaction. The vcf_files row carrying the
// fingerprint is inserted last, so a failed write never marks the file as
// imported.
func (s *Store) WriteFile(f *vcf.File, fp FileFingerprint) (err error) {
	ctx := context.Background()
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN TRANSACTION"); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			conn.ExecContext(ctx, "ROLLBACK")
		}
	}()

	for _, table := range fileTables {
		if _, err := conn.ExecContext(ctx, "DELETE FROM "+table+" WHERE path=?", fp.Path); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}

	if err := appendRows(conn, "meta_lines", func(a *goduckdb.Appender) error {
		for _, ml := range f.Meta.All() {
			if err := a.AppendRow(fp.Path, int64(ml.Line), ml.Kind.String(), ml.RawText); err != nil {
				return fmt.Errorf("append meta line: %w", err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := appendRows(conn, "variant_records", func(a *goduckdb.Appender) error {
		for _, r := range f.Records {
			if err := a.AppendRow(fp.Path, int64(r.Line),
				r.Chrom, r.Pos, r.ID, r.Ref, r.Alt, r.Qual, r.Filter, r.Info,
			); err != nil {
				return fmt.Errorf("append record: %w", err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	var header string
	if f.Header != nil {
		header = strings.Join(f.Header.FieldNames, "\t")
	}
	if _, err := conn.ExecContext(ctx, `INSERT INTO vcf_files VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fp.Path, fp.Size, fp.ModTime.UnixNano(), time.Now().UTC(), header,
		int64(f.ColumnHeaderLines), int64(len(f.Records)), int64(len(f.Malformed)),
	); err != nil {
		return fmt.Errorf("insert file: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// appendRows runs fill against an Appender on table and flushes it.
func appendRows(conn *sql.Conn, table string, fill func(*goduckdb.Appender) error) error {
	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	if err := fill(appender); err != nil {
		return err
	}
	if err := appender.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", table, err)
	}
	return nil
}

var fileTables = []string{"vcf_files", "meta_lines", "variant_records"}

// DeleteFile removes every row stored for path.
func (s *Store) DeleteFile(path string) error {
	for _, table := range fileTables {
		if _, err := s.db.Exec("DELETE FROM "+table+" WHERE path=?", path); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return nil
}

// Fingerprint returns the fingerprint recorded for path at import time.
// ok is false when the path has not been imported.
func (s *Store) Fingerprint(path string) (fp FileFingerprint, ok bool, err error) {
	var size, modNs int64
	err = s.db.QueryRow(`SELECT size, mod_time_ns FROM vcf_files WHERE path=?`, path).Scan(&size, &modNs)
	if errors.Is(err, sql.ErrNoRows) {
		return FileFingerprint{}, false, nil
	}
	if err != nil {
		return FileFingerprint{}, false, fmt.Errorf("query file: %w", err)
	}
	return FileFingerprint{Path: path, Size: size, ModTime: time.Unix(0, modNs)}, true, nil
}

// Imported reports whether fp matches the stored fingerprint for its path.
func (s *Store) Imported(fp FileFingerprint) (bool, error) {
	stored, ok, err := s.Fingerprint(fp.Path)
	if err != nil || !ok {
		return false, err
	}
	return stored.Same(fp), nil
}

// Records returns the stored records for path in line order.
func (s *Store) Records(path string) ([]vcf.Record, error) {
	rows, err := s.db.Query(`SELECT
		line, chrom, pos, id, ref, alt, qual, filter, info
		FROM variant_records
		WHERE path=?
		ORDER BY line`, path)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []vcf.Record
	for rows.Next() {
		var r vcf.Record
		var line int64
		if err := rows.Scan(&line, &r.Chrom, &r.Pos, &r.ID, &r.Ref, &r.Alt, &r.Qual, &r.Filter, &r.Info); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Line = int(line)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// MetaLines returns the stored meta lines for path in line order.
func (s *Store) MetaLines(path string) ([]vcf.MetaLine, error) {
	rows, err := s.db.Query(`SELECT line, kind, raw_text
		FROM meta_lines
		WHERE path=?
		ORDER BY line`, path)
	if err != nil {
		return nil, fmt.Errorf("query meta lines: %w", err)
	}
	defer rows.Close()

	var lines []vcf.MetaLine
	for rows.Next() {
		var line int64
		var kind, raw string
		if err := rows.Scan(&line, &kind, &raw); err != nil {
			return nil, fmt.Errorf("scan meta line: %w", err)
		}
		lines = append(lines, vcf.MetaLine{Line: int(line), Kind: vcf.ParseMetaKind(kind), RawText: raw})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meta lines: %w", err)
	}
	return lines, nil
}

// FileCount returns the number of imported files.
func (s *Store) FileCount() (int, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT count(*) FROM vcf_files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return int(n), nil
}
