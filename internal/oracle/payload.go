package oracle

import (
	"encoding/json"
	"errors"
	"strings"
)

// Payload extracts the structured span from a raw oracle response.
//
// Responses are expected to be a single JSON object or array, but models
// routinely wrap them in code fences or surround them with prose. Payload
// strips fences, locates the first balanced {...} or [...] span, and
// validates it. A response with no such span is a parse-class failure.
func Payload(response string) (json.RawMessage, error) {
	text := strings.TrimSpace(response)
	if text == "" {
		return nil, NewParseError("payload", errors.New("empty response"))
	}

	text = stripFences(text)

	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')

	start, open, close := -1, byte(0), byte(0)
	switch {
	case objStart == -1 && arrStart == -1:
		return nil, NewParseError("payload", errors.New("no JSON object or array in response"))
	case arrStart == -1 || (objStart != -1 && objStart < arrStart):
		start, open, close = objStart, '{', '}'
	default:
		start, open, close = arrStart, '[', ']'
	}

	end := balancedEnd(text, start, open, close)
	if end == -1 {
		// Fall back to the last closing character; some models truncate
		// trailing prose but keep the structure intact.
		end = strings.LastIndexByte(text, close)
	}
	if end <= start {
		return nil, NewParseError("payload", errors.New("unbalanced JSON span in response"))
	}

	span := text[start : end+1]
	if !json.Valid([]byte(span)) {
		return nil, NewParseError("payload", errors.New("JSON span is not valid structured data"))
	}
	return json.RawMessage(span), nil
}

// Decode parses the structured span of a response into v.
func Decode(response string, v any) error {
	raw, err := Payload(response)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return NewParseError("decode", err)
	}
	return nil
}

// stripFences removes a leading/trailing markdown code fence, including an
// optional language tag on the opening fence.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	inner := strings.TrimSuffix(text, "```")
	if nl := strings.IndexByte(inner, '\n'); nl != -1 {
		inner = inner[nl+1:]
	} else {
		inner = strings.TrimPrefix(inner, "```")
	}
	return strings.TrimSpace(inner)
}

// balancedEnd scans for the close matching the opener at start, ignoring
// brackets inside JSON strings.
func balancedEnd(text string, start int, open, close byte) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
