package page

import "testing"

func TestCriteriaClamp(t *testing.T) {
	t.Parallel()

	c := &Criteria{SectionLetter: 15, PublishedDate: -3, TextHeaders: 10}
	c.Clamp()
	if c.SectionLetter != 10 {
		t.Errorf("SectionLetter = %d, want clamped to 10", c.SectionLetter)
	}
	if c.PublishedDate != 0 {
		t.Errorf("PublishedDate = %d, want clamped to 0", c.PublishedDate)
	}
	if c.TextHeaders != 10 {
		t.Errorf("TextHeaders = %d, want unchanged", c.TextHeaders)
	}
}

func TestCriteriaAverage(t *testing.T) {
	t.Parallel()

	c := &Criteria{}
	if got := c.Average(); got != 0 {
		t.Errorf("zero criteria Average = %v, want 0", got)
	}

	c = &Criteria{
		SectionLetter: 10, SectionNumber: 10, SectionTitle: 10,
		PublishedDate: 10,
		TextHeaders:   10, TextContentCompleteness: 10, TextContentAccuracy: 10,
		TextContentFlow: 10, TextFormatting: 10,
		TablesIncluded: 10, TablesStructure: 10, TablesCSVFormat: 10,
		TablesCaption: 10, TablesNoExtra: 10,
		ImagesIncluded: 10, ImagesCaption: 10, ImagesDescription: 10, ImagesNoExtra: 10,
	}
	if got := c.Average(); got != 10 {
		t.Errorf("full-score Average = %v, want 10", got)
	}
}

func TestCriteriaFieldsCoverEveryCriterion(t *testing.T) {
	t.Parallel()

	if len(CriteriaFields) != 20 {
		t.Errorf("CriteriaFields has %d entries, want 20", len(CriteriaFields))
	}
	for name, fields := range CriteriaFields {
		if len(fields) == 0 {
			t.Errorf("criterion %s maps to no fields", name)
		}
	}
	for _, name := range []string{"author", "photographer"} {
		if _, ok := CriteriaFields[name]; !ok {
			t.Errorf("CriteriaFields missing attribution entry %s", name)
		}
	}
}
