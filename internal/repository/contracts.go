package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pressarchive/newspaper-ocr/constants"
	"github.com/pressarchive/newspaper-ocr/internal/page"
)

// PageRecord is the archived form of a normalized page. Tables and images
// are stored as JSON documents; the publication date keeps both the display
// string (ISO or raw passthrough) and, when parsed, a real date column for
// range queries.
type PageRecord struct {
	ID              uuid.UUID
	ScanPath        string
	SectionLetter   string
	SectionNumber   int
	SectionTitle    string
	PublishedDate   string     // ISO-8601 when parsed, raw string otherwise
	PublishedOn     *time.Time // nil when the date stayed raw
	Author          string
	Photographer    string
	Content         string
	TablesJSON      []byte
	ImagesJSON      []byte
	Status          constants.PageStatus
	ModelConfidence float32
	RawResponse     []byte // original model JSON, kept for audit
	CreatedAt       time.Time
}

// NewPageRecord flattens a normalized page for storage.
func NewPageRecord(p *page.NewspaperPage, scanPath string, confidence float32, raw []byte, needsReview bool) (*PageRecord, error) {
	tables, err := json.Marshal(p.Tables)
	if err != nil {
		return nil, fmt.Errorf("marshal tables: %w", err)
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return nil, fmt.Errorf("marshal images: %w", err)
	}

	rec := &PageRecord{
		ID:              uuid.New(),
		ScanPath:        scanPath,
		SectionLetter:   p.SectionLetter,
		SectionNumber:   p.SectionNumber,
		SectionTitle:    p.SectionTitle,
		PublishedDate:   p.PublishedDate.String(),
		Author:          p.Author,
		Photographer:    p.Photographer,
		Content:         p.Content,
		TablesJSON:      tables,
		ImagesJSON:      images,
		Status:          constants.PageStatusExtracted,
		ModelConfidence: confidence,
		RawResponse:     raw,
		CreatedAt:       time.Now().UTC(),
	}
	if d, ok := p.PublishedDate.Date(); ok {
		rec.PublishedOn = &d
	}
	if needsReview {
		rec.Status = constants.PageStatusReview
	}
	return rec, nil
}

// PageRepository is the archive interface the pipeline and exporter depend
// on. Implementations: postgres (daemon) and sqlite (local CLI archive).
type PageRepository interface {
	SavePage(ctx context.Context, rec *PageRecord) error
	GetPage(ctx context.Context, id uuid.UUID) (*PageRecord, error)
	// ListPages returns pages published inside [from, to]; nil bounds are
	// open. Pages whose date stayed raw are only returned when both bounds
	// are nil.
	ListPages(ctx context.Context, from, to *time.Time) ([]*PageRecord, error)
	MarkReviewed(ctx context.Context, id uuid.UUID) error
}
