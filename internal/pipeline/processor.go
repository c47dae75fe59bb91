// Package pipeline coordinates one page's journey: model extraction,
// normalization into a page record, validation and archiving.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pressarchive/newspaper-ocr/constants"
	"github.com/pressarchive/newspaper-ocr/internal/llm"
	"github.com/pressarchive/newspaper-ocr/internal/page"
	"github.com/pressarchive/newspaper-ocr/internal/repository"
	"github.com/pressarchive/newspaper-ocr/internal/script"
)

// Config holds thresholds and behavior flags for the processor.
type Config struct {
	MinConfidence float32 // default constants.MinModelConfidence
}

type Processor struct {
	Logger    *slog.Logger
	Cfg       Config
	Repo      repository.PageRepository
	Extractor llm.PageExtractor
	Builder   *page.Builder
}

func NewProcessor(logger *slog.Logger, cfg Config, repo repository.PageRepository, ex llm.PageExtractor, sc script.Transform) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = constants.MinModelConfidence
	}
	return &Processor{
		Logger:    logger,
		Cfg:       cfg,
		Repo:      repo,
		Extractor: ex,
		Builder:   &page.Builder{Script: sc},
	}
}

// ProcessPage extracts, normalizes and archives one scanned page.
// Normalization never fails the page: an unparseable date survives as its
// raw string and only flags the record for review.
func (p *Processor) ProcessPage(ctx context.Context, scanPath string) (uuid.UUID, error) {
	start := time.Now()
	p.Logger.Info("pagefields.start", "scan", scanPath)

	fields, raw, err := p.Extractor.ExtractPage(ctx, llm.ExtractRequest{ScanPath: scanPath})
	if err != nil {
		return uuid.Nil, fmt.Errorf("extract page: %w", err)
	}

	pg := p.Builder.Build(fields)
	if err := pg.Validate(); err != nil {
		return uuid.Nil, fmt.Errorf("validate page: %w", err)
	}

	needsReview := pg.NeedsReview(fields.ModelConfidence, p.Cfg.MinConfidence)
	if needsReview {
		p.Logger.Warn("pagefields.needs_review",
			"scan", scanPath,
			"date_parsed", pg.PublishedDate.IsCalendar(),
			"confidence", fields.ModelConfidence,
		)
	}

	rec, err := repository.NewPageRecord(pg, scanPath, fields.ModelConfidence, raw, needsReview)
	if err != nil {
		return uuid.Nil, fmt.Errorf("build record: %w", err)
	}
	if err := p.Repo.SavePage(ctx, rec); err != nil {
		return uuid.Nil, fmt.Errorf("save page: %w", err)
	}

	p.Logger.Info("pagefields.ok",
		"page_id", rec.ID,
		"section", pg.SectionLetter, "section_number", pg.SectionNumber,
		"date", pg.PublishedDate.String(),
		"needs_review", needsReview,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec.ID, nil
}
