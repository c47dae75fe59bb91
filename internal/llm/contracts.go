package llm

import "context"

// TableField is a table extracted from the page, already rendered as CSV.
type TableField struct {
	CSVString string `json:"csv_string"`
	Caption   string `json:"caption,omitempty"`
}

// ImageField is a described image found on the page.
type ImageField struct {
	Description string `json:"description"`
	Caption     string `json:"caption,omitempty"`
}

// PageFields is the normalized shape we want from the LLM for one scanned
// newspaper page. Free-text values arrive as the model emitted them; date
// parsing, reflow and script conversion happen downstream.
type PageFields struct {
	SectionLetter   string       `json:"section_letter"`          // A..E
	SectionNumber   int          `json:"section_number"`          // 0..100
	SectionTitle    string       `json:"section_title"`
	PublishedDate   string       `json:"published_date"`          // free-form; normalized later
	Author          string       `json:"author,omitempty"`
	Photographer    string       `json:"photographer,omitempty"`
	Content         string       `json:"content"`                 // line-fragmented body text
	Tables          []TableField `json:"tables,omitempty"`
	Images          []ImageField `json:"images,omitempty"`
	ModelConfidence float32      `json:"confidence,omitempty"`    // optional (0..1)
}

// ExtractRequest describes one page-extraction call.
type ExtractRequest struct {
	ScanPath     string // path to the scanned page image
	FilenameHint string // filename signal for the date/section
	EditionHint  string // optional, e.g. "morning edition"
}

// PageExtractor is the interface the pipeline depends on.
type PageExtractor interface {
	ExtractPage(ctx context.Context, req ExtractRequest) (PageFields, []byte /*rawJSON*/, error)
}
