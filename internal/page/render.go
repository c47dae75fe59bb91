package page

import (
	"fmt"
	"strings"
)

// Render aggregates the page into a single plain-text report, the shape
// review tooling and full-text indexing consume.
func (p *NewspaperPage) Render() string {
	output := []string{
		"=====METADATA=====",
		fmt.Sprintf("Page Section Letter: %s", p.SectionLetter),
		fmt.Sprintf("Page Section Number: %d", p.SectionNumber),
		fmt.Sprintf("Page Section Title: %s", p.SectionTitle),
		fmt.Sprintf("Published Date: %s", p.PublishedDate.String()),
		fmt.Sprintf("Author: %s", p.Author),
		fmt.Sprintf("Photographer: %s", p.Photographer),
		"",
		"=====CONTENT=====",
		fmt.Sprintf("Content: %s", p.Content),
	}

	output = append(output, "", "=====TABLES=====")
	for i, table := range p.Tables {
		output = append(output, fmt.Sprintf("Table %d Content:\n%s", i+1, table.CSVString))
		output = append(output, fmt.Sprintf("Table %d Caption: %s", i+1, table.Caption))
	}

	output = append(output, "", "=====IMAGES=====")
	for i, image := range p.Images {
		output = append(output, fmt.Sprintf("Image %d Description: %s", i+1, image.Description))
		output = append(output, fmt.Sprintf("Image %d Caption: %s", i+1, image.Caption))
	}

	return strings.Join(output, "\n")
}
