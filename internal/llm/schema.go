package llm

import "github.com/pressarchive/newspaper-ocr/constants"

// BuildPageJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass this to the model as a structured output constraint
// and also use it locally to validate the response.
func BuildPageJSONSchema() map[string]any {
	props := map[string]any{
		"section_letter": map[string]any{
			"type": "string",
			"enum": constants.SectionLetters(),
		},
		"section_number": map[string]any{
			"type":    "integer",
			"minimum": constants.MinSectionNumber,
			"maximum": constants.MaxSectionNumber,
		},
		"section_title": map[string]any{"type": "string", "minLength": 1},
		// free-form on purpose: the date normalizer handles the format zoo
		"published_date": map[string]any{"type": "string", "minLength": 1},
		"author":         map[string]any{"type": "string"},
		"photographer":   map[string]any{"type": "string"},
		"content":        map[string]any{"type": "string"},
		"tables": map[string]any{
			"type":  "array",
			"items": tableProp(),
		},
		"images": map[string]any{
			"type":  "array",
			"items": imageProp(),
		},
		"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
	}
	required := []string{"section_letter", "section_number", "section_title", "published_date", "content"}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func tableProp() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"csv_string": map[string]any{"type": "string", "minLength": 1},
			"caption":    map[string]any{"type": "string"},
		},
		"required": []string{"csv_string"},
	}
}

func imageProp() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"description": map[string]any{"type": "string", "minLength": 1},
			"caption":     map[string]any{"type": "string"},
		},
		"required": []string{"description"},
	}
}
