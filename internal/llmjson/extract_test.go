package llmjson

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "pure json", input: `{"a": 1}`, want: `{"a": 1}`},
		{
			name:  "fenced with preamble",
			input: "Here is the analysis:\n```json\n{\"a\": {\"b\": [1, 2]}}\n```\nThanks!",
			want:  `{"a": {"b": [1, 2]}}`,
		},
		{
			name:  "braces inside strings",
			input: `note {"text": "use } and { freely", "n": 2} trailing }`,
			want:  `{"text": "use } and { freely", "n": 2}`,
		},
		{
			name:  "escaped quote in string",
			input: `{"q": "say \"hi\" }"}`,
			want:  `{"q": "say \"hi\" }"}`,
		},
		{
			name:  "skips malformed candidate",
			input: `{not json} then {"ok": true}`,
			want:  `{"ok": true}`,
		},
		{
			name:  "first of two objects",
			input: `{"first": 1} {"second": 2}`,
			want:  `{"first": 1}`,
		},
		{
			name:  "repairs trailing commas",
			input: "{\"items\": [1, 2,],\n \"x\": 1,\n}",
			want:  "{\"items\": [1, 2],\n \"x\": 1\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractObject_NoJSON(t *testing.T) {
	for _, input := range []string{
		"",
		"The variants differ mainly in CTA placement.",
		"unbalanced { \"a\": 1",
		"[1, 2, 3]",
	} {
		_, err := ExtractObject(input)
		assert.ErrorIs(t, err, ErrNoJSON, "input %q", input)
	}
}

func TestExtractObject_SizeLimit(t *testing.T) {
	_, err := ExtractObject(strings.Repeat(" ", MaxInputSize+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size limit")
}

func TestExtractObject_UnmatchedBracesStayLinear(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "run of open braces", input: strings.Repeat("{", 200_000) + ` {"a":1}`, want: `{"a":1}`},
		{name: "nested unclosed objects", input: strings.Repeat(`{"a":`, 100_000)},
		{name: "unclosed objects with commas", input: strings.Repeat(`{"a":1,`, 100_000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started := time.Now()
			got, err := ExtractObject(tt.input)
			assert.Less(t, time.Since(started), 2*time.Second)
			if tt.want == "" {
				assert.ErrorIs(t, err, ErrNoJSON)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "abc... [truncated, total_length=6]", Preview("abcdef", 3))
}
