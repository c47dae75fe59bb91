package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pressarchive/newspaper-ocr/constants"
	"github.com/pressarchive/newspaper-ocr/internal/common"
)

// PostgresPages archives pages in the daemon's postgres database.
type PostgresPages struct {
	pool *pgxpool.Pool
}

func NewPostgresPages(pool *pgxpool.Pool) *PostgresPages {
	return &PostgresPages{pool: pool}
}

// Migrate creates the pages table if needed. The daemon calls this once on
// startup; production deployments may manage the schema externally.
func (r *PostgresPages) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS pages (
  id              UUID PRIMARY KEY,
  scan_path       TEXT NOT NULL,
  section_letter  TEXT NOT NULL,
  section_number  INT  NOT NULL,
  section_title   TEXT NOT NULL,
  published_date  TEXT NOT NULL,
  published_on    DATE,
  author          TEXT NOT NULL DEFAULT '',
  photographer    TEXT NOT NULL DEFAULT '',
  content         TEXT NOT NULL,
  tables_json     JSONB NOT NULL DEFAULT '[]',
  images_json     JSONB NOT NULL DEFAULT '[]',
  status          TEXT NOT NULL,
  confidence      REAL NOT NULL DEFAULT 0,
  raw_json        BYTEA,
  created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pages_published_on ON pages(published_on);
CREATE INDEX IF NOT EXISTS idx_pages_status ON pages(status);
`)
	if err != nil {
		return common.WrapError(err, "migrate pages")
	}
	return nil
}

func (r *PostgresPages) SavePage(ctx context.Context, rec *PageRecord) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO pages (
  id, scan_path, section_letter, section_number, section_title,
  published_date, published_on, author, photographer, content,
  tables_json, images_json, status, confidence, raw_json, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		rec.ID, rec.ScanPath, rec.SectionLetter, rec.SectionNumber, rec.SectionTitle,
		rec.PublishedDate, rec.PublishedOn, rec.Author, rec.Photographer, rec.Content,
		rec.TablesJSON, rec.ImagesJSON, rec.Status, rec.ModelConfidence, rec.RawResponse, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert page: %w", err)
	}
	return nil
}

func (r *PostgresPages) GetPage(ctx context.Context, id uuid.UUID) (*PageRecord, error) {
	row := r.pool.QueryRow(ctx, selectPages+` WHERE id = $1`, id)
	rec, err := scanPage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return rec, err
}

func (r *PostgresPages) ListPages(ctx context.Context, from, to *time.Time) ([]*PageRecord, error) {
	query := selectPages
	var args []any
	switch {
	case from != nil && to != nil:
		query += ` WHERE published_on BETWEEN $1 AND $2 ORDER BY published_on, section_letter, section_number`
		args = []any{*from, *to}
	case from != nil:
		query += ` WHERE published_on >= $1 ORDER BY published_on, section_letter, section_number`
		args = []any{*from}
	case to != nil:
		query += ` WHERE published_on <= $1 ORDER BY published_on, section_letter, section_number`
		args = []any{*to}
	default:
		query += ` ORDER BY created_at`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	var out []*PageRecord
	for rows.Next() {
		rec, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresPages) MarkReviewed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pages SET status = $1 WHERE id = $2`, constants.PageStatusReviewed, id)
	if err != nil {
		return fmt.Errorf("mark reviewed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

const selectPages = `
SELECT id, scan_path, section_letter, section_number, section_title,
       published_date, published_on, author, photographer, content,
       tables_json, images_json, status, confidence, raw_json, created_at
FROM pages`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (*PageRecord, error) {
	var rec PageRecord
	if err := row.Scan(
		&rec.ID, &rec.ScanPath, &rec.SectionLetter, &rec.SectionNumber, &rec.SectionTitle,
		&rec.PublishedDate, &rec.PublishedOn, &rec.Author, &rec.Photographer, &rec.Content,
		&rec.TablesJSON, &rec.ImagesJSON, &rec.Status, &rec.ModelConfidence, &rec.RawResponse, &rec.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan page: %w", err)
	}
	return &rec, nil
}

var _ PageRepository = (*PostgresPages)(nil)
