package llm

import (
	"strings"

	"github.com/pressarchive/newspaper-ocr/constants"
)

// BuildSystemPrompt composes the system message with the extraction rules
// for a scanned newspaper page.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a newspaper page transcriber. Return ONLY JSON that matches the provided JSON Schema.",
		"The page section letter (" + strings.Join(constants.SectionLetters(), ", ") + "), number and title are printed on the top left corner.",
		"For 'published_date', copy the printed publication date exactly as it appears; do not reformat it.",
		"For 'content', transcribe every line of body text in reading order, one printed line per output line.",
		"Mark titles and headers by wrapping them in double asterisks, e.g. **Title**, each on its own line.",
		"Separate paragraphs and columns with a single blank line.",
		"Exclude the page metadata (section corner, page number, masthead) from 'content'.",
		"Render each table as CSV in 'csv_string' with its printed caption if any.",
		"Describe each photo or illustration in 'images' using the surrounding context; never invent images.",

		// formatting hygiene:
		"Never output null. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages filename/edition hints alongside the attached
// page scan.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if filename := strings.TrimSpace(req.FilenameHint); filename != "" {
		b.WriteString("Filename: ")
		b.WriteString(filename)
		b.WriteString("\n")
	}
	if edition := strings.TrimSpace(req.EditionHint); edition != "" {
		b.WriteString("Edition: ")
		b.WriteString(edition)
		b.WriteString("\n")
	}
	b.WriteString("\nA scan of the newspaper page is attached. Transcribe it into the schema.")
	return b.String()
}
