package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// fencePattern matches a markdown code block with an optional language tag.
var fencePattern = regexp.MustCompile("(?s)```([A-Za-z]*)\\s*\\n?(.*?)```")

var errNoObject = errors.New("ai: no JSON object in reply")

// DecodeObject extracts the first JSON object from an LLM reply that may be wrapped in
// markdown fences or surrounded by prose.
func DecodeObject(reply string) (map[string]any, error) {
	for _, m := range fencePattern.FindAllStringSubmatch(reply, -1) {
		lang := strings.ToLower(m[1])
		if lang != "" && lang != "json" {
			continue
		}
		if obj, err := DecodeStrict(m[2]); err == nil {
			return obj, nil
		}
	}

	start := strings.IndexByte(reply, '{')
	for start >= 0 {
		if s := balancedObject(reply[start:]); s != "" {
			if obj, err := DecodeStrict(s); err == nil {
				return obj, nil
			}
		}
		next := strings.IndexByte(reply[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return nil, errNoObject
}

// DecodeStrict parses the whole trimmed reply as a JSON object.
func DecodeStrict(reply string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(cleanJSONString(reply)), &obj); err != nil {
		return nil, fmt.Errorf("ai: decode reply: %w", err)
	}
	if obj == nil {
		return nil, errNoObject
	}
	return obj, nil
}

// balancedObject returns the prefix of s (which starts at '{') up to its matching '}'.
func balancedObject(s string) string {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
