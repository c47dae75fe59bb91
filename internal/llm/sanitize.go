package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pressarchive/newspaper-ocr/constants"
)

// knownKeys is the strict top-level shape; anything else is removed so the
// document can pass additionalProperties=false validation.
var knownKeys = map[string]struct{}{
	"section_letter": {}, "section_number": {}, "section_title": {},
	"published_date": {}, "author": {}, "photographer": {},
	"content": {}, "tables": {}, "images": {}, "confidence": {},
}

// synonyms maps key spellings models like to emit onto our schema.
var synonyms = map[string]string{
	"page_section_letter": "section_letter",
	"page_section_number": "section_number",
	"page_section_title":  "section_title",
	"date":                "published_date",
	"publication_date":    "published_date",
	"photos":              "images",
}

// SanitizeFields normalizes a raw model response so it can validate against
// the page schema:
//   - renames known key synonyms
//   - drops null/empty optionals
//   - coerces numeric-looking section numbers to integers
//   - uppercases the section letter
//   - drops table/image entries missing their required field
//   - removes unknown keys
//
// It returns the cleaned document plus the list of adjustments made.
func SanitizeFields(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	changed := make([]string, 0, 8)

	for from, to := range synonyms {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			changed = append(changed, from+"->"+to)
		}
	}

	if v, ok := m["section_letter"].(string); ok {
		if l, valid := constants.CanonicalizeSectionLetter(v); valid {
			m["section_letter"] = string(l)
		} else {
			// leave the trimmed form for the validator to report
			m["section_letter"] = strings.ToUpper(strings.TrimSpace(v))
		}
	}

	if v, ok := m["section_number"]; ok {
		switch t := v.(type) {
		case float64:
			if t != math.Trunc(t) {
				delete(m, "section_number")
				changed = append(changed, "section_number(non-integer)")
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				m["section_number"] = n
				changed = append(changed, "section_number(string->int)")
			} else {
				delete(m, "section_number")
				changed = append(changed, "section_number(unparseable)")
			}
		}
	}

	// optionals: null or blank means absent
	for _, k := range []string{"author", "photographer"} {
		v, present := m[k]
		if !present {
			continue
		}
		switch t := v.(type) {
		case nil:
			delete(m, k)
			changed = append(changed, k+"(null)")
		case string:
			if strings.TrimSpace(t) == "" {
				delete(m, k)
				changed = append(changed, k+"(empty)")
			}
		}
	}

	if dropped := sanitizeEntries(m, "tables", "csv_string"); dropped > 0 {
		changed = append(changed, fmt.Sprintf("tables(dropped %d)", dropped))
	}
	if dropped := sanitizeEntries(m, "images", "description"); dropped > 0 {
		changed = append(changed, fmt.Sprintf("images(dropped %d)", dropped))
	}

	if v, ok := m["confidence"]; ok {
		if _, isNum := v.(float64); !isNum {
			delete(m, "confidence")
			changed = append(changed, "confidence(non-number)")
		}
	}

	for k := range m {
		if _, ok := knownKeys[k]; !ok {
			delete(m, k)
			changed = append(changed, k+"(unknown)")
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}
	return b, changed, nil
}

// sanitizeEntries filters an object array in place, keeping entries whose
// required string field is non-blank and pruning null/blank captions.
// Returns the number of dropped entries.
func sanitizeEntries(m map[string]any, key, requiredField string) int {
	arr, ok := m[key].([]any)
	if !ok {
		if _, present := m[key]; present {
			delete(m, key)
			return 0
		}
		return 0
	}

	kept := make([]any, 0, len(arr))
	dropped := 0
	for _, e := range arr {
		obj, ok := e.(map[string]any)
		if !ok {
			dropped++
			continue
		}
		s, ok := obj[requiredField].(string)
		if !ok || strings.TrimSpace(s) == "" {
			dropped++
			continue
		}
		if c, ok := obj["caption"]; ok {
			if cs, isStr := c.(string); !isStr || strings.TrimSpace(cs) == "" {
				delete(obj, "caption")
			}
		}
		// strict schema: strip anything beyond the two known fields
		for k := range obj {
			if k != requiredField && k != "caption" {
				delete(obj, k)
			}
		}
		kept = append(kept, obj)
	}

	if len(kept) == 0 {
		delete(m, key)
		return dropped
	}
	m[key] = kept
	return dropped
}
