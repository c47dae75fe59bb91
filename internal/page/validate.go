package page

import (
	"github.com/pressarchive/newspaper-ocr/constants"
	"github.com/pressarchive/newspaper-ocr/internal/common"
)

// Validate checks the record's structural invariants: section letter in the
// allowed set, section number in range, required title and content. An
// unparsed publication date is NOT a validation error — it is valid data
// that only flags the page for review.
func (p *NewspaperPage) Validate() error {
	v := common.NewValidator().
		Field("section_letter", p.SectionLetter, common.OneOf(constants.SectionLetters())).
		Field("section_number", p.SectionNumber, common.IntRange(constants.MinSectionNumber, constants.MaxSectionNumber)).
		Field("section_title", p.SectionTitle, common.Required).
		Field("content", p.Content, common.Required)
	return v.Error()
}

// NeedsReview reports whether the page should be queued for manual review:
// the publication date failed to parse, or the model's own confidence fell
// below minConfidence (0 disables the confidence check).
func (p *NewspaperPage) NeedsReview(modelConfidence, minConfidence float32) bool {
	if !p.PublishedDate.IsCalendar() {
		return true
	}
	if modelConfidence > 0 && minConfidence > 0 && modelConfidence < minConfidence {
		return true
	}
	return false
}
