// Package parser extracts structured payloads from raw LLM responses.
//
// Models asked for JSON reply in a handful of shapes: a bare object, an
// object wrapped in a ```json fence, or an object buried in surrounding
// prose. The parser normalizes all of them into the raw JSON text so the
// schema layer can decode it.
//
//	payload, ok := parser.ExtractJSON(response)
//	if ok {
//	    err := json.Unmarshal([]byte(payload), &out)
//	}
package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// codeBlockRegex matches fenced code blocks with an optional language tag.
var codeBlockRegex = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.*?)```")

// ExtractJSON returns the first JSON object found in the response.
// Search order: fenced ```json blocks, any fenced block holding a valid
// object, then a brace-balanced object in the raw text. The returned string
// is guaranteed to be valid JSON.
func ExtractJSON(response string) (string, bool) {
	for _, block := range extractCodeBlocks(response) {
		if block.language != "json" && block.language != "" {
			continue
		}
		candidate := strings.TrimSpace(block.content)
		if isJSONObject(candidate) {
			return candidate, true
		}
	}

	if candidate, ok := extractBalancedObject(response); ok {
		return candidate, true
	}

	return "", false
}

// ExtractYAML parses the first fenced YAML block, re-encoded as JSON so
// downstream coercion has a single input format. Some models answer YAML
// even when asked for JSON.
func ExtractYAML(response string) (string, bool) {
	for _, block := range extractCodeBlocks(response) {
		if block.language != "yaml" && block.language != "yml" {
			continue
		}
		var data map[string]any
		if err := yaml.Unmarshal([]byte(block.content), &data); err != nil {
			continue
		}
		out, err := json.Marshal(data)
		if err != nil {
			continue
		}
		return string(out), true
	}
	return "", false
}

// ExtractPayload tries JSON first, then YAML.
func ExtractPayload(response string) (string, bool) {
	if payload, ok := ExtractJSON(response); ok {
		return payload, ok
	}
	return ExtractYAML(response)
}

type codeBlock struct {
	language string
	content  string
}

func extractCodeBlocks(text string) []codeBlock {
	matches := codeBlockRegex.FindAllStringSubmatch(text, -1)
	blocks := make([]codeBlock, 0, len(matches))
	for _, match := range matches {
		blocks = append(blocks, codeBlock{
			language: strings.ToLower(match[1]),
			content:  match[2],
		})
	}
	return blocks
}

// extractBalancedObject scans for the first '{' and walks to its matching
// brace, honoring strings and escapes, then validates the slice as JSON.
func extractBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
			// Skip structural characters inside strings.
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				if isJSONObject(candidate) {
					return candidate, true
				}
				return "", false
			}
		}
	}
	return "", false
}

func isJSONObject(s string) bool {
	if !strings.HasPrefix(strings.TrimSpace(s), "{") {
		return false
	}
	var data map[string]any
	return json.Unmarshal([]byte(s), &data) == nil
}
