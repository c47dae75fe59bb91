package constants

import "strings"

// SectionLetter identifies the newspaper section a page belongs to,
// printed on the top left corner of the page.
type SectionLetter string

const (
	SectionA SectionLetter = "A"
	SectionB SectionLetter = "B"
	SectionC SectionLetter = "C"
	SectionD SectionLetter = "D"
	SectionE SectionLetter = "E"
)

var allSectionLetters = []SectionLetter{SectionA, SectionB, SectionC, SectionD, SectionE}

// Section number printed after the letter, e.g. A12.
const (
	MinSectionNumber = 0
	MaxSectionNumber = 100
)

// SectionLetters returns the allowed letters as strings, for schema enums
// and validation.
func SectionLetters() []string {
	result := make([]string, len(allSectionLetters))
	for i, l := range allSectionLetters {
		result[i] = string(l)
	}
	return result
}

// CanonicalizeSectionLetter uppercases and trims the input and reports
// whether it is an allowed letter.
func CanonicalizeSectionLetter(input string) (SectionLetter, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	for _, l := range allSectionLetters {
		if normalized == string(l) {
			return l, true
		}
	}
	return "", false
}
