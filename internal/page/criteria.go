package page

// Criteria holds 0..10 review scores for one extracted page. Scores are
// assigned by external review tooling over the normalized record; nothing
// in this pipeline produces or stores them.
type Criteria struct {
	// page metadata
	SectionLetter int `json:"page_section_letter"`
	SectionNumber int `json:"page_section_number"`
	SectionTitle  int `json:"page_section_title"`

	// date
	PublishedDate int `json:"published_date"`

	// text content
	TextHeaders             int `json:"text_headers"`
	TextContentCompleteness int `json:"text_content_completeness"`
	TextContentAccuracy     int `json:"text_content_accuracy"`
	TextContentFlow         int `json:"text_content_flow"`
	TextFormatting          int `json:"text_formatting"`

	// tables
	TablesIncluded  int `json:"tables_included"`
	TablesStructure int `json:"tables_structure"`
	TablesCSVFormat int `json:"tables_csv_format"`
	TablesCaption   int `json:"tables_caption"`
	TablesNoExtra   int `json:"tables_no_extra"`

	// images
	ImagesIncluded    int `json:"images_included"`
	ImagesCaption     int `json:"images_caption"`
	ImagesDescription int `json:"images_description"`
	ImagesNoExtra     int `json:"images_no_extra"`

	// detailed reasons for any criterion not met
	Reasons string `json:"reasons"`
}

const maxCriterionScore = 10

// CriteriaFields maps each criterion to the record fields it judges, so
// review tooling can jump from a low score to the offending data.
var CriteriaFields = map[string][]string{
	"page_section_letter":       {"section_letter"},
	"page_section_number":       {"section_number"},
	"page_section_title":        {"section_title"},
	"published_date":            {"published_date"},
	// attribution has no score field yet; the map still names it so review
	// tooling can surface the columns
	"author":       {"author"},
	"photographer": {"photographer"},
	"text_headers":              {"content"},
	"text_content_completeness": {"content"},
	"text_content_accuracy":     {"content"},
	"text_content_flow":         {"content"},
	"text_formatting":           {"content"},
	"tables_included":           {"tables"},
	"tables_structure":          {"tables"},
	"tables_csv_format":         {"tables"},
	"tables_caption":            {"tables"},
	"tables_no_extra":           {"tables"},
	"images_included":           {"images"},
	"images_caption":            {"images"},
	"images_description":        {"images"},
	"images_no_extra":           {"images"},
}

func (c *Criteria) scores() []*int {
	return []*int{
		&c.SectionLetter, &c.SectionNumber, &c.SectionTitle,
		&c.PublishedDate,
		&c.TextHeaders, &c.TextContentCompleteness, &c.TextContentAccuracy,
		&c.TextContentFlow, &c.TextFormatting,
		&c.TablesIncluded, &c.TablesStructure, &c.TablesCSVFormat,
		&c.TablesCaption, &c.TablesNoExtra,
		&c.ImagesIncluded, &c.ImagesCaption, &c.ImagesDescription, &c.ImagesNoExtra,
	}
}

// Clamp forces every score into [0, 10].
func (c *Criteria) Clamp() {
	for _, s := range c.scores() {
		if *s < 0 {
			*s = 0
		}
		if *s > maxCriterionScore {
			*s = maxCriterionScore
		}
	}
}

// Average returns the mean score across all criteria.
func (c *Criteria) Average() float64 {
	ss := c.scores()
	total := 0
	for _, s := range ss {
		total += *s
	}
	return float64(total) / float64(len(ss))
}
