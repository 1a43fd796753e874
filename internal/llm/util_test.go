package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json untouched", `{"name": "Jane"}`, `{"name": "Jane"}`},
		{"surrounding whitespace trimmed", "\n  {\"a\": 1}  \n", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"json fence without newline", "```json{\"a\": 1}```", `{"a": 1}`},
		{"generic fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"generic fence with language id", "```javascript\n{\"a\": 1}\n```", `{"a": 1}`},
		{"unterminated json fence", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"byte order mark is stripped", "\uFEFF{\"a\": 1}", `{"a": 1}`},
		{"bom before a fence", "\uFEFF```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"brace on fence line is kept", "```{\"a\": 1}\n```", `{"a": 1}`},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.in))
		})
	}
}
