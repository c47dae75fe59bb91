package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pressarchive/newspaper-ocr/constants"
	"github.com/pressarchive/newspaper-ocr/internal/common"
)

// SQLitePages archives pages in a local sqlite file, used by the CLI when
// no postgres archive is configured.
type SQLitePages struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLitePages, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	s := &SQLitePages{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLitePages) Close() error { return s.db.Close() }

func (s *SQLitePages) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
  id              TEXT PRIMARY KEY,
  scan_path       TEXT NOT NULL,
  section_letter  TEXT NOT NULL,
  section_number  INTEGER NOT NULL,
  section_title   TEXT NOT NULL,
  published_date  TEXT NOT NULL,
  published_on    TEXT,
  author          TEXT NOT NULL DEFAULT '',
  photographer    TEXT NOT NULL DEFAULT '',
  content         TEXT NOT NULL,
  tables_json     TEXT NOT NULL DEFAULT '[]',
  images_json     TEXT NOT NULL DEFAULT '[]',
  status          TEXT NOT NULL,
  confidence      REAL NOT NULL DEFAULT 0,
  raw_json        BLOB,
  created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pages_published_on ON pages(published_on);
CREATE INDEX IF NOT EXISTS idx_pages_status ON pages(status);
`)
	return err
}

const sqliteDateLayout = "2006-01-02"

func (s *SQLitePages) SavePage(ctx context.Context, rec *PageRecord) error {
	var publishedOn any
	if rec.PublishedOn != nil {
		publishedOn = rec.PublishedOn.Format(sqliteDateLayout)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO pages (
  id, scan_path, section_letter, section_number, section_title,
  published_date, published_on, author, photographer, content,
  tables_json, images_json, status, confidence, raw_json, created_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID.String(), rec.ScanPath, rec.SectionLetter, rec.SectionNumber, rec.SectionTitle,
		rec.PublishedDate, publishedOn, rec.Author, rec.Photographer, rec.Content,
		string(rec.TablesJSON), string(rec.ImagesJSON), string(rec.Status),
		rec.ModelConfidence, rec.RawResponse, rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert page: %w", err)
	}
	return nil
}

func (s *SQLitePages) GetPage(ctx context.Context, id uuid.UUID) (*PageRecord, error) {
	row := s.db.QueryRowContext(ctx, sqliteSelectPages+` WHERE id = ?`, id.String())
	rec, err := scanSQLitePage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return rec, err
}

func (s *SQLitePages) ListPages(ctx context.Context, from, to *time.Time) ([]*PageRecord, error) {
	query := sqliteSelectPages
	var args []any
	switch {
	case from != nil && to != nil:
		query += ` WHERE published_on BETWEEN ? AND ? ORDER BY published_on, section_letter, section_number`
		args = []any{from.Format(sqliteDateLayout), to.Format(sqliteDateLayout)}
	case from != nil:
		query += ` WHERE published_on >= ? ORDER BY published_on, section_letter, section_number`
		args = []any{from.Format(sqliteDateLayout)}
	case to != nil:
		query += ` WHERE published_on <= ? ORDER BY published_on, section_letter, section_number`
		args = []any{to.Format(sqliteDateLayout)}
	default:
		query += ` ORDER BY created_at`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	var out []*PageRecord
	for rows.Next() {
		rec, err := scanSQLitePage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLitePages) MarkReviewed(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE pages SET status = ? WHERE id = ?`, string(constants.PageStatusReviewed), id.String())
	if err != nil {
		return fmt.Errorf("mark reviewed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

const sqliteSelectPages = `
SELECT id, scan_path, section_letter, section_number, section_title,
       published_date, published_on, author, photographer, content,
       tables_json, images_json, status, confidence, raw_json, created_at
FROM pages`

func scanSQLitePage(row rowScanner) (*PageRecord, error) {
	var (
		rec         PageRecord
		id          string
		publishedOn sql.NullString
		tables      string
		images      string
		status      string
		createdAt   string
	)
	if err := row.Scan(
		&id, &rec.ScanPath, &rec.SectionLetter, &rec.SectionNumber, &rec.SectionTitle,
		&rec.PublishedDate, &publishedOn, &rec.Author, &rec.Photographer, &rec.Content,
		&tables, &images, &status, &rec.ModelConfidence, &rec.RawResponse, &createdAt,
	); err != nil {
		return nil, fmt.Errorf("scan page: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse page id %q: %w", id, err)
	}
	rec.ID = parsed
	rec.TablesJSON = []byte(tables)
	rec.ImagesJSON = []byte(images)
	rec.Status = constants.PageStatus(status)
	if publishedOn.Valid {
		d, err := time.Parse(sqliteDateLayout, publishedOn.String)
		if err != nil {
			return nil, fmt.Errorf("parse published_on %q: %w", publishedOn.String, err)
		}
		rec.PublishedOn = &d
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}

var _ PageRepository = (*SQLitePages)(nil)
