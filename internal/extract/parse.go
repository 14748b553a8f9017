package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseRecord decodes the model's response text into a raw key/value map.
// Responses arrive either as a bare JSON object or wrapped in markdown fences;
// both forms must decode identically.
func ParseRecord(text string) (map[string]any, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(cleaned), &m); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	return m, nil
}
