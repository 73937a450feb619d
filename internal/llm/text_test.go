package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  사과가 5개 있습니다.  ", "사과가 5개 있습니다."},
		{"fenced", "```\n사과가 5개 있습니다.\n```", "사과가 5개 있습니다."},
		{"fenced with lang", "```text\n줄 1\n줄 2\n```", "줄 1\n줄 2"},
		{"inner fence kept", "앞\n```\n코드\n```", "앞\n```\n코드\n```"},
		{"bare fence", "```", "```"},
		{
			"separate blocks kept",
			"```\n개식사 멘트\n```\n\n중간 설명\n\n```\n폐식사 멘트\n```",
			"```\n개식사 멘트\n```\n\n중간 설명\n\n```\n폐식사 멘트\n```",
		},
		{"fence lines only", "```\n```", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}
