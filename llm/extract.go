package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject decodes the JSON object carried in model output into v.
// Models are told to answer with bare JSON but routinely wrap it in code
// fences or surround it with prose, so after a strict parse fails the text
// is scanned for the first balanced {...} span and that span is decoded.
func ExtractJSONObject(text string, v interface{}) error {
	s := stripMarkdownCodeBlock(text)
	if s == "" {
		return fmt.Errorf("empty model output")
	}

	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	candidate, ok := firstJSONObject(s)
	if !ok {
		return fmt.Errorf("no JSON object found in model output")
	}

	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return fmt.Errorf("malformed JSON object in model output: %w", err)
	}

	return nil
}

// firstJSONObject returns the first balanced top-level {...} span in s.
// Braces inside string literals do not count toward nesting.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// stripMarkdownCodeBlock removes markdown code block wrappers from text.
// Models may wrap JSON responses in ```json ... ``` blocks.
func stripMarkdownCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence (possibly with language tag)
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		// Remove closing fence
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
