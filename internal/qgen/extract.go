package qgen

import (
	"encoding/json"
	"strings"
)

// ExtractJSON locates the JSON payload in a model reply. Reasoning
// models often wrap the object in a fenced code block with a language
// tag; in that case the substring between the first "```json" marker
// and the next closing "```" is returned. A reply with no marker is
// returned whole, trimmed.
func ExtractJSON(text string) json.RawMessage {
	const fence = "```"

	trimmed := strings.TrimSpace(text)

	idx := strings.Index(trimmed, fence)
	if idx < 0 {
		return json.RawMessage(trimmed)
	}

	rest := trimmed[idx+len(fence):]

	// Drop the language tag ("json", "JSON", or none) up to the first
	// newline of the fenced block.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || strings.EqualFold(tag, "json") {
			rest = rest[nl+1:]
		}
	}

	if end := strings.Index(rest, fence); end >= 0 {
		rest = rest[:end]
	}

	return json.RawMessage(strings.TrimSpace(rest))
}
