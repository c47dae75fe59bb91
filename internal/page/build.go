package page

import (
	"github.com/pressarchive/newspaper-ocr/internal/llm"
	"github.com/pressarchive/newspaper-ocr/internal/normalize"
	"github.com/pressarchive/newspaper-ocr/internal/script"
)

// Builder turns raw extracted fields into a normalized NewspaperPage.
type Builder struct {
	// Script converts free-text fields to the target script variant. It
	// runs after reflow: the reflow heuristics must see the punctuation
	// of the original extracted text. Nil means no conversion.
	Script script.Transform
}

func (b *Builder) transform(s string) string {
	if b.Script == nil || s == "" {
		return s
	}
	return b.Script(s)
}

// Build constructs the page record. Content goes through whitespace
// cleanup, sentence reflow and then script conversion; the published date
// goes through the date normalizer and degrades to its raw string form when
// unparseable. Build is total and deterministic.
func (b *Builder) Build(f llm.PageFields) *NewspaperPage {
	p := &NewspaperPage{
		NewspaperText: NewspaperText{
			SectionLetter: f.SectionLetter,
			SectionNumber: f.SectionNumber,
			SectionTitle:  b.transform(f.SectionTitle),
			PublishedDate: normalize.NormalizeDate(f.PublishedDate),
			Author:        b.transform(f.Author),
			Photographer:  b.transform(f.Photographer),
			Content:       b.transform(normalize.Reflow(normalize.CleanText(f.Content))),
		},
	}
	for _, t := range f.Tables {
		p.Tables = append(p.Tables, TableContent{
			CSVString: b.transform(t.CSVString),
			Caption:   b.transform(t.Caption),
		})
	}
	for _, img := range f.Images {
		p.Images = append(p.Images, ImageContent{
			Description: b.transform(img.Description),
			Caption:     b.transform(img.Caption),
		})
	}
	return p
}
