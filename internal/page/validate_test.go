package page

import (
	"strings"
	"testing"
	"time"

	"github.com/pressarchive/newspaper-ocr/internal/normalize"
)

func validPage() *NewspaperPage {
	return &NewspaperPage{
		NewspaperText: NewspaperText{
			SectionLetter: "A",
			SectionNumber: 12,
			SectionTitle:  "要聞",
			PublishedDate: normalize.CalendarDate(2023, time.May, 10),
			Content:       "政府昨日公布新措施。",
		},
	}
}

func TestValidateOK(t *testing.T) {
	t.Parallel()

	if err := validPage().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*NewspaperPage)
		wantMsg string
	}{
		{name: "bad letter", mutate: func(p *NewspaperPage) { p.SectionLetter = "F" }, wantMsg: "section_letter"},
		{name: "number too large", mutate: func(p *NewspaperPage) { p.SectionNumber = 101 }, wantMsg: "section_number"},
		{name: "number negative", mutate: func(p *NewspaperPage) { p.SectionNumber = -1 }, wantMsg: "section_number"},
		{name: "missing title", mutate: func(p *NewspaperPage) { p.SectionTitle = "" }, wantMsg: "section_title"},
		{name: "missing content", mutate: func(p *NewspaperPage) { p.Content = " " }, wantMsg: "content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validPage()
			tt.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateRawDateIsNotAnError(t *testing.T) {
	t.Parallel()

	p := validPage()
	p.PublishedDate = normalize.RawString("unknown date")
	if err := p.Validate(); err != nil {
		t.Fatalf("raw date must not fail validation: %v", err)
	}
	if !p.NeedsReview(0, 0) {
		t.Error("raw date must flag the page for review")
	}
}

func TestNeedsReviewConfidence(t *testing.T) {
	t.Parallel()

	p := validPage()
	if p.NeedsReview(0.9, 0.6) {
		t.Error("confident page with parsed date should not need review")
	}
	if !p.NeedsReview(0.3, 0.6) {
		t.Error("low-confidence page should need review")
	}
	if p.NeedsReview(0, 0.6) {
		t.Error("absent confidence should not trigger review on its own")
	}
}
