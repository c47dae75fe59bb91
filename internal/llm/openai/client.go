package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pressarchive/newspaper-ocr/internal/llm"
)

// ExtractPage implements llm.PageExtractor over chat/completions with the
// page scan attached as an image part. The model response is validated
// strictly against the page schema first; when Lenient is set a sanitize
// pass is tried before giving up.
func (c *Client) ExtractPage(ctx context.Context, req llm.ExtractRequest) (llm.PageFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	dataURL, mimeType, err := llm.ScanDataURL(req.ScanPath)
	if err != nil {
		return llm.PageFields{}, nil, fmt.Errorf("attach scan: %w", err)
	}

	if req.FilenameHint == "" {
		req.FilenameHint = filepath.Base(req.ScanPath)
	}

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"scan", req.ScanPath,
		"mime", mimeType,
	)

	schema := llm.BuildPageJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": llm.BuildUserPrompt(req)},
					{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
				},
			},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, err := llm.PostJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.PageFields{}, nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return llm.PageFields{}, raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return llm.PageFields{}, raw, fmt.Errorf("no choices in openai response")
	}
	rawContent := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	if err := llm.ValidateJSONAgainstSchema(schema, rawContent); err != nil {
		if !c.cfg.Lenient {
			c.log.Error("llm.extract.schema_validation_failed",
				"req_id", rid, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return llm.PageFields{}, rawContent, fmt.Errorf("schema validation failed: %w", err)
		}
		cleaned, adjustments, sErr := llm.SanitizeFields(rawContent)
		if sErr != nil {
			c.log.Error("llm.extract.sanitize_failed", "req_id", rid, "error", sErr)
			return llm.PageFields{}, rawContent, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := llm.ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			c.log.Error("llm.extract.schema_validation_failed",
				"req_id", rid, "error", vErr, "content", string(rawContent),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return llm.PageFields{}, rawContent, fmt.Errorf("schema validation failed: %w", vErr)
		}
		c.log.Warn("llm.extract.lenient_sanitize_applied", "req_id", rid, "adjustments", adjustments)
		rawContent = cleaned
	}

	var out llm.PageFields
	if err := json.Unmarshal(rawContent, &out); err != nil {
		return llm.PageFields{}, rawContent, fmt.Errorf("unmarshal fields: %w", err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"section", out.SectionLetter,
		"section_number", out.SectionNumber,
		"date", out.PublishedDate,
		"content_bytes", len(out.Content),
		"tables", len(out.Tables),
		"images", len(out.Images),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, rawContent, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
