package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0분"},
		{-3, "0분"},
		{5, "5분"},
		{60, "1시간"},
		{95, "1시간 35분"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a b", Truncate("a\n  b", 10))

	got := Truncate("국민의례 및 애국가 제창", 8)
	assert.LessOrEqual(t, lipgloss.Width(got), 8)
	assert.True(t, strings.HasSuffix(got, "…"))

	assert.Equal(t, "unbounded text", Truncate("unbounded text", 0))
}

func TestRenderBox_WithTitle(t *testing.T) {
	out := RenderBox("제목", "내용")
	assert.Contains(t, out, "제목")
	assert.Contains(t, out, "내용")
	assert.Contains(t, out, "╭")
}

func TestRenderTable_AlignsWideRunes(t *testing.T) {
	out := RenderTable([]string{"순서", "시간"}, [][]string{
		{"개회사", "5분"},
		{"a", "10분"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "개회사")
	// Second column starts at the same display offset on both data rows.
	col := func(line, cell string) int {
		return lipgloss.Width(line[:strings.Index(line, cell)])
	}
	assert.Equal(t, col(lines[2], "5분"), col(lines[3], "10분"))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderMarkdown_KeepsText(t *testing.T) {
	out := RenderMarkdown("# 입학식 시나리오\n\n사회자: 안녕하십니까.", 60)
	assert.Contains(t, out, "입학식")
	assert.Contains(t, out, "안녕하십니까")
}

func TestSpinner_StopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	s, stop := StartSpinner(&buf, "생성 중")
	s.SetMessage("1/3")
	time.Sleep(200 * time.Millisecond)
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, out, "1/3")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"))
}
