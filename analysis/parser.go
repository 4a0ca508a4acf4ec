package analysis

import (
	"encoding/json"
	"log/slog"
	"strings"
)

const fallbackDescriptionLimit = 500

// ParseLLMResponse extracts structured data from free-form LLM text. It
// tries, in order: a ```json fenced block, a generic ``` fenced block, the
// span from the first "{" to the last "}", and finally the whole text. The
// first applicable strategy is the only one attempted; if its content fails
// to decode, a fixed fallback map is returned instead. The function never
// fails: malformed input always yields the fallback.
//
// The decoded value is returned as-is, so a response that is valid JSON but
// not an object (an array, a bare string) comes back in that shape.
func ParseLLMResponse(logger *slog.Logger, response string) any {
	response = strings.TrimSpace(response)

	if data, ok := decodeResponse(response); ok {
		return data
	}

	logger.Warn("failed to parse LLM response as JSON",
		"preview", truncateRunes(response, fallbackDescriptionLimit))

	description := truncateRunes(response, fallbackDescriptionLimit)
	if description == "" {
		description = "No response received"
	}
	return map[string]any{
		"description":        description,
		"severity":           "low",
		"knowledge_category": "other",
		"reviewer_insights": map[string]any{
			"technical_knowledge": "",
			"experience_lessons":  "",
			"design_philosophy":   "",
		},
		"actionable_guidance": map[string]any{
			"immediate_actions": []any{
				"Review the raw LLM output manually",
				"Check the LLM output format",
			},
		},
		"reviewer_responses": []any{},
	}
}

func decodeResponse(response string) (any, bool) {
	for _, marker := range []string{"```json", "```"} {
		start := strings.Index(response, marker)
		if start < 0 {
			continue
		}
		start += len(marker)
		end := strings.Index(response[start:], "```")
		if end <= 0 {
			continue
		}
		return decodeJSON(strings.TrimSpace(response[start : start+end]))
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		return decodeJSON(response[start : end+1])
	}

	return decodeJSON(response)
}

func decodeJSON(s string) (any, bool) {
	var data any
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return nil, false
	}
	return data, true
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
