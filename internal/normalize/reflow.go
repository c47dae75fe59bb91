package normalize

import (
	"strings"
	"unicode/utf8"
)

// endingSymbols are the characters that close a sentence or a quoted or
// parenthetical span. Covers Western and East-Asian terminal punctuation
// plus the bold-markup star so closed headings terminate too.
var endingSymbols = map[rune]struct{}{
	'.': {}, '。': {}, '!': {}, '?': {}, ':': {}, ';': {},
	'」': {}, '』': {}, '）': {}, ')': {}, '》': {}, '"': {}, '\'': {}, '*': {},
}

// headingMarker starts a bolded title line that must never be merged into
// the preceding body text.
const headingMarker = "**"

// Reflow recombines OCR-fragmented lines into logical sentences. Extraction
// mirrors the visual line breaks of the scanned page, so one sentence often
// arrives split across several lines; Reflow concatenates lines until the
// accumulated text ends in terminal punctuation or the next line is a
// heading. Blank lines flush the accumulator and are preserved as paragraph
// breaks. Total: every input, including empty text, yields a defined output.
func Reflow(content string) string {
	// a trailing newline closes the last line, it does not open a new one
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return ""
	}

	var out []string
	var current string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			if current != "" {
				out = append(out, current)
				current = ""
			}
			out = append(out, "")
			continue
		}
		switch {
		case current == "":
			current = line
		case endsSentence(current) || strings.HasPrefix(line, headingMarker):
			out = append(out, current)
			current = line
		default:
			// no separator: rejoin a sentence the OCR split mid-way
			current += line
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return strings.Join(out, "\n")
}

func endsSentence(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	_, ok := endingSymbols[r]
	return ok
}
