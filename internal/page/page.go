// Package page holds the normalized newspaper page record and its
// construction from raw extracted fields.
package page

import (
	"github.com/pressarchive/newspaper-ocr/internal/normalize"
)

// TableContent is a table found on the page, rendered as CSV.
type TableContent struct {
	CSVString string `json:"csv_string"`
	Caption   string `json:"caption,omitempty"`
}

// ImageContent is a described image found on the page.
type ImageContent struct {
	Description string `json:"description"`
	Caption     string `json:"caption,omitempty"`
}

// NewspaperText is the normalized text record for one page: metadata plus
// reflowed body content and tables.
type NewspaperText struct {
	SectionLetter string              `json:"section_letter"`
	SectionNumber int                 `json:"section_number"`
	SectionTitle  string              `json:"section_title"`
	PublishedDate normalize.DateValue `json:"-"`
	Author        string              `json:"author,omitempty"`
	Photographer  string              `json:"photographer,omitempty"`
	Content       string              `json:"content"`
	Tables        []TableContent      `json:"tables,omitempty"`
}

// NewspaperPage is the full page record: the text record plus images. A
// plain aggregate, not a behavioral specialization.
type NewspaperPage struct {
	NewspaperText
	Images []ImageContent `json:"images,omitempty"`
}
