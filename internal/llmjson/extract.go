// Package llmjson pulls structured payloads out of free-form model output.
// Model text is untrusted: nothing here assumes the response is pure JSON.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxInputSize bounds the text scanned for a JSON object.
const MaxInputSize = 10 * 1024 * 1024

var ErrNoJSON = errString("no JSON object found in response")

type errString string

func (e errString) Error() string { return string(e) }

var trailingCommaRegex = regexp.MustCompile(`,(\s*[}\]])`)

// Trailing-comma repair needs the full candidate span, so it is tried on a
// few candidates only.
const maxRepairs = 4

// ExtractObject returns the first well-formed JSON object found anywhere in
// text. Objects with trailing commas are repaired before being rejected.
// The total bytes examined stay linear in len(text).
func ExtractObject(text string) (string, error) {
	if len(text) > MaxInputSize {
		return "", fmt.Errorf("response exceeds size limit (%d > %d bytes)", len(text), MaxInputSize)
	}
	budget := 4*len(text) + 4096
	repairs := 0
	for start := strings.IndexByte(text, '{'); start >= 0 && budget > 0; {
		rest := text[start:]
		raw, cost, err := decodeObject(rest)
		if err == nil {
			return raw, nil
		}
		budget -= cost
		if repairs < maxRepairs && strings.Contains(rest[:min(cost+1, len(rest))], ",") {
			repairs++
			end := matchingBrace(rest, 0)
			if end < 0 {
				budget -= len(rest)
			} else {
				budget -= end
				if cleaned := trailingCommaRegex.ReplaceAllString(rest[:end+1], "$1"); json.Valid([]byte(cleaned)) {
					return cleaned, nil
				}
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", ErrNoJSON
}

// decodeObject decodes the JSON value at the head of s. On failure cost is
// roughly how far the decoder got before giving up.
func decodeObject(s string) (raw string, cost int, err error) {
	var msg json.RawMessage
	dec := json.NewDecoder(strings.NewReader(s))
	if err := dec.Decode(&msg); err != nil {
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			return "", max(int(syn.Offset), 1), err
		}
		return "", len(s), err
	}
	return string(msg), 0, nil
}

// matchingBrace returns the index of the brace closing the one at start,
// skipping braces inside string literals, or -1 if it is never closed.
func matchingBrace(text string, start int) int {
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Preview truncates s for log lines.
func Preview(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + fmt.Sprintf("... [truncated, total_length=%d]", len(s))
}
