package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pressarchive/newspaper-ocr/constants"
	"github.com/pressarchive/newspaper-ocr/internal/common"
	"github.com/pressarchive/newspaper-ocr/internal/normalize"
	"github.com/pressarchive/newspaper-ocr/internal/page"
)

func openTestStore(t *testing.T) *SQLitePages {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testPage(day int) *page.NewspaperPage {
	return &page.NewspaperPage{
		NewspaperText: page.NewspaperText{
			SectionLetter: "A",
			SectionNumber: 1,
			SectionTitle:  "要聞",
			PublishedDate: normalize.CalendarDate(2023, time.May, day),
			Content:       "內容。",
			Tables:        []page.TableContent{{CSVString: "a,b", Caption: "cap"}},
		},
		Images: []page.ImageContent{{Description: "街景"}},
	}
}

func TestSQLiteSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec, err := NewPageRecord(testPage(10), "/scans/a1.png", 0.92, []byte(`{"ok":true}`), false)
	if err != nil {
		t.Fatalf("NewPageRecord: %v", err)
	}
	if err := s.SavePage(ctx, rec); err != nil {
		t.Fatalf("SavePage: %v", err)
	}

	got, err := s.GetPage(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if got.SectionLetter != "A" || got.SectionTitle != "要聞" || got.Content != "內容。" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.PublishedDate != "2023-05-10" {
		t.Errorf("PublishedDate = %q", got.PublishedDate)
	}
	if got.PublishedOn == nil || got.PublishedOn.Day() != 10 {
		t.Errorf("PublishedOn = %v", got.PublishedOn)
	}
	if got.Status != constants.PageStatusExtracted {
		t.Errorf("Status = %s", got.Status)
	}
	if string(got.TablesJSON) != string(rec.TablesJSON) {
		t.Errorf("TablesJSON = %s", got.TablesJSON)
	}
}

func TestSQLiteRawDateStoredWithoutWindow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := testPage(10)
	p.PublishedDate = normalize.RawString("unknown date")
	rec, err := NewPageRecord(p, "/scans/a2.png", 0, nil, true)
	if err != nil {
		t.Fatalf("NewPageRecord: %v", err)
	}
	if rec.Status != constants.PageStatusReview {
		t.Fatalf("needs-review record status = %s", rec.Status)
	}
	if rec.PublishedOn != nil {
		t.Fatal("raw date must not produce a PublishedOn value")
	}
	if err := s.SavePage(ctx, rec); err != nil {
		t.Fatalf("SavePage: %v", err)
	}

	got, err := s.GetPage(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if got.PublishedDate != "unknown date" {
		t.Errorf("raw date not preserved: %q", got.PublishedDate)
	}
	if got.PublishedOn != nil {
		t.Errorf("PublishedOn = %v, want nil", got.PublishedOn)
	}
}

func TestSQLiteListPagesWindow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, day := range []int{5, 10, 20} {
		rec, err := NewPageRecord(testPage(day), "/scans/x.png", 0, nil, false)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.SavePage(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}
	raw := testPage(1)
	raw.PublishedDate = normalize.RawString("日期不明")
	rec, err := NewPageRecord(raw, "/scans/raw.png", 0, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SavePage(ctx, rec); err != nil {
		t.Fatal(err)
	}

	from := time.Date(2023, time.May, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, time.May, 15, 0, 0, 0, 0, time.UTC)
	got, err := s.ListPages(ctx, &from, &to)
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}
	if len(got) != 1 || got[0].PublishedDate != "2023-05-10" {
		t.Errorf("windowed ListPages = %d records, want the May 10 page", len(got))
	}

	all, err := s.ListPages(ctx, nil, nil)
	if err != nil {
		t.Fatalf("ListPages all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("unbounded ListPages = %d records, want 4 incl. raw date", len(all))
	}
}

func TestSQLiteMarkReviewed(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec, err := NewPageRecord(testPage(10), "/scans/x.png", 0, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SavePage(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkReviewed(ctx, rec.ID); err != nil {
		t.Fatalf("MarkReviewed: %v", err)
	}
	got, err := s.GetPage(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != constants.PageStatusReviewed {
		t.Errorf("Status = %s, want REVIEWED", got.Status)
	}

	if err := s.MarkReviewed(ctx, uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("MarkReviewed(unknown) = %v, want ErrNotFound", err)
	}
}

func TestSQLiteGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetPage(context.Background(), uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetPage(unknown) = %v, want ErrNotFound", err)
	}
}
